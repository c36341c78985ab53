// Package models defines the client-side types shared by the upload
// pipeline components: source files, task states, destinations, confirm
// descriptors and the stats snapshot.
package models

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// File is a source file handed to the pipeline. Bytes are read lazily
// through Open so that queued files do not pin memory.
type File struct {
	// ID is the local identifier. The engine assigns one when empty.
	ID       string
	Name     string
	Size     int64
	ModTime  time.Time
	MimeType string
	Open     func() (io.ReadCloser, error)
}

// NewMemFile wraps an in-memory byte slice as a File.
func NewMemFile(name, mimeType string, data []byte) File {
	return File{
		Name:     name,
		Size:     int64(len(data)),
		ModTime:  time.Unix(0, 0).UTC(),
		MimeType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// ReadAll reads the whole file through Open.
func (f File) ReadAll() ([]byte, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("file %q has no source", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

// Identity is the resume key of a file: name, size and modification time.
// Two different files can collide and a renamed file will not match; callers
// treat it as a hint, not as a content hash.
func (f File) Identity() string {
	return fmt.Sprintf("%s:%d:%d", f.Name, f.Size, f.ModTime.UnixNano())
}
