// Package filex turns local paths into pipeline files.
package filex

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

// EnsureSubdDir creates dirName under the working directory if needed and
// returns its absolute path. Absolute names are used as they are.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dirName) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// LoadFile stats path and sniffs its mime type. The returned file reads its
// bytes lazily.
func LoadFile(path string) (models.File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return models.File{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return models.File{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return models.File{
		Name:     filepath.Base(path),
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		MimeType: baseType(mt.String()),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Expand resolves paths into regular files. Directories are walked
// recursively; hidden entries are skipped.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !fi.IsDir() {
			out = append(out, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != p && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// LoadFiles expands paths and loads every file found.
func LoadFiles(paths []string) ([]models.File, error) {
	expanded, err := Expand(paths)
	if err != nil {
		return nil, err
	}
	files := make([]models.File, 0, len(expanded))
	for _, p := range expanded {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Identity is the heuristic resume key of f.
func Identity(f models.File) string {
	return f.Identity()
}

func baseType(mime string) string {
	t, _, _ := strings.Cut(mime, ";")
	return strings.TrimSpace(t)
}
