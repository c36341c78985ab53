// Package models defines the server-side upload types the service layer
// works with. The gRPC handlers convert between these and the wire
// messages.
package models

import "time"

// FileSpec describes a file the client is about to send.
type FileSpec struct {
	LocalID  string
	MimeType string
	FileSize int64
	Filename string
}

// Slot is a signed destination for one file.
type Slot struct {
	LocalID     string
	StoragePath string
	TransferURL string
	Token       string
	ExpiresAt   time.Time
}

// PartsRequest asks for presigned URLs of a multipart upload. An empty
// UploadID starts a new one. An empty PartNumbers list means every part
// of TotalSize split into ChunkSize pieces.
type PartsRequest struct {
	Token       string
	UploadID    string
	TotalSize   int64
	ChunkSize   int64
	PartNumbers []int32
}

// PartURL is where one part gets PUT.
type PartURL struct {
	Number int32
	URL    string
}

// PartsGrant answers a PartsRequest.
type PartsGrant struct {
	UploadID  string
	Parts     []PartURL
	ExpiresAt time.Time
}

// CompletedPart is a part the client finished, with the ETag storage
// returned for it.
type CompletedPart struct {
	Number int32
	ETag   string
}

// Upload is one item of a confirm batch.
type Upload struct {
	StoragePath string
	Token       string
	Filename    string
	FileSize    int64
	MimeType    string
	Width       int
	Height      int

	// UploadID is set for multipart uploads the server still completes.
	UploadID string
	Parts    []CompletedPart
}
