package uploads

import (
	"context"
	"time"
)

// Upload is one committed object.
type Upload struct {
	StoragePath string
	UserID      string
	Filename    string
	FileSize    int64
	MimeType    string
	Width       int
	Height      int
	ConfirmedAt time.Time
}

type Repository interface {
	// Insert records u and reports whether the row is new.
	Insert(ctx context.Context, u *Upload) (bool, error)
	GetByStoragePath(ctx context.Context, path string) (*Upload, error)
}
