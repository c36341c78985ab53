package engine

import (
	"time"

	"github.com/dmitrijs2005/mediaup/internal/client/compress"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

// Progress marks for the stages around the transfer, which itself spans
// progressUploadStart..progressUploadEnd.
const (
	progressCompressing = 0.05
	progressUploadStart = 0.1
	progressUploadEnd   = 0.9
	progressConfirming  = 0.95
)

type task struct {
	id     string
	file   models.File
	status models.Status

	progress float64
	// payload is held from compression until the bytes are in storage;
	// payloadSize outlives it.
	payload     []byte
	payloadSize int64
	result      compress.Result
	// compressed is set once the compression stage is behind the task.
	compressed bool

	chunked    bool
	sessionKey string
	dest       models.DestinationSlot
	sent       int64
	// confirm is set once bytes are at the destination; a retry then goes
	// straight back to the confirm stage.
	confirm *models.ConfirmItem

	retries   int
	err       error
	updatedAt time.Time
	done      chan struct{}
}

// size is the number of bytes the transfer stage will send.
func (t *task) size() int64 {
	if t.compressed {
		return t.payloadSize
	}
	return t.file.Size
}

func (t *task) snapshot() models.TaskSnapshot {
	s := models.TaskSnapshot{
		ID:           t.id,
		Name:         t.file.Name,
		MimeType:     t.file.MimeType,
		Status:       t.status,
		Progress:     t.progress,
		OriginalSize: t.file.Size,
		StoragePath:  t.dest.StoragePath,
		Chunked:      t.chunked,
		Retries:      t.retries,
		UpdatedAt:    t.updatedAt,
	}
	if t.compressed {
		s.MimeType = t.result.MimeType
		s.CompressedSize = t.payloadSize
		s.CompressionRatio = t.result.Ratio
	}
	if t.err != nil {
		s.Error = t.err.Error()
	}
	return s
}
