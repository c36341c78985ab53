package models

import (
	"context"
	"time"
)

// DestinationSlot is a signed, short-lived upload target for one file.
// A slot is single-use: it is dropped from the cache once a transfer to it
// succeeds.
type DestinationSlot struct {
	LocalID     string    `json:"local_id"`
	StoragePath string    `json:"storage_path"`
	TransferURL string    `json:"transfer_url"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	// AcceptsRanges marks a TransferURL that takes Content-Range chunk PUTs.
	AcceptsRanges bool `json:"accepts_ranges,omitempty"`
}

// FreshFor reports whether the slot stays valid for at least buffer past now.
func (d DestinationSlot) FreshFor(now time.Time, buffer time.Duration) bool {
	return d.TransferURL != "" && now.Add(buffer).Before(d.ExpiresAt)
}

// IssueRequest describes one file for which a destination is requested.
type IssueRequest struct {
	LocalID  string `json:"local_id"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	Filename string `json:"filename"`
}

// ConfirmItem is the metadata committed for one transferred file.
type ConfirmItem struct {
	StoragePath string `json:"storage_path"`
	Token       string `json:"token"`
	Filename    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	// UploadID and Parts close a multipart transfer.
	UploadID string          `json:"upload_id,omitempty"`
	Parts    []CompletedPart `json:"parts,omitempty"`
}

// CompletedPart is one stored part of a multipart transfer.
type CompletedPart struct {
	Number int32  `json:"number"`
	ETag   string `json:"etag"`
}

// PartsRequest asks for signed part URLs of a multipart transfer. An empty
// UploadID starts a new transfer; empty PartNumbers means every part.
type PartsRequest struct {
	Token       string
	UploadID    string
	TotalSize   int64
	ChunkSize   int64
	PartNumbers []int32
}

// PartTarget is the signed URL of one part.
type PartTarget struct {
	Number int32
	URL    string
}

// PartsGrant carries part URLs valid until ExpiresAt.
type PartsGrant struct {
	UploadID  string
	Parts     []PartTarget
	ExpiresAt time.Time
}

// Issuer mints destinations in batches.
type Issuer interface {
	Issue(ctx context.Context, files []IssueRequest) ([]DestinationSlot, error)
}

// Confirmer commits metadata of transferred files in batches.
type Confirmer interface {
	Confirm(ctx context.Context, uploads []ConfirmItem) error
}

// PartIssuer signs part URLs for multipart transfers.
type PartIssuer interface {
	PresignParts(ctx context.Context, req PartsRequest) (PartsGrant, error)
}
