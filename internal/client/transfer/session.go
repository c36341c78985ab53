package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

// Chunk is a byte range [Start, End) of the payload.
type Chunk struct {
	Index    int    `json:"index"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Uploaded bool   `json:"uploaded"`
	Retries  int    `json:"retries"`
	Checksum string `json:"checksum,omitempty"`
	// URL and ETag are set for parts of a multipart transfer.
	URL  string `json:"url,omitempty"`
	ETag string `json:"etag,omitempty"`
}

func (c Chunk) Size() int64 {
	return c.End - c.Start
}

// PartNumber is the 1-based multipart part number of the chunk.
func (c Chunk) PartNumber() int32 {
	return int32(c.Index + 1)
}

// ContentRange is the header value for the chunk, e.g. "bytes 0-99/1000".
func (c Chunk) ContentRange(total int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", c.Start, c.End-1, total)
}

// CreateChunks splits size bytes into chunkSize ranges. The last chunk may be
// shorter. A zero size yields no chunks.
func CreateChunks(size, chunkSize int64) []Chunk {
	if size <= 0 || chunkSize <= 0 {
		return nil
	}
	n := (size + chunkSize - 1) / chunkSize
	chunks := make([]Chunk, 0, n)
	for i := int64(0); i < n; i++ {
		start := i * chunkSize
		chunks = append(chunks, Chunk{
			Index: int(i),
			Start: start,
			End:   min(start+chunkSize, size),
		})
	}
	return chunks
}

// Session is the persisted state of one chunked upload.
type Session struct {
	// Key is the file identity the session is stored under.
	Key          string                 `json:"key"`
	FileName     string                 `json:"file_name"`
	FileSize     int64                  `json:"file_size"`
	TotalBytes   int64                  `json:"total_bytes"`
	ChunkSize    int64                  `json:"chunk_size"`
	Chunks       []Chunk                `json:"chunks"`
	StartedAt    time.Time              `json:"started_at"`
	LastUpdated  time.Time              `json:"last_updated"`
	Completed    bool                   `json:"completed"`
	Error        string                 `json:"error,omitempty"`
	FailedChunks []int                  `json:"failed_chunks,omitempty"`
	Destination  models.DestinationSlot `json:"destination"`
	// UploadID is set when the chunks go to a storage multipart upload.
	UploadID      string    `json:"upload_id,omitempty"`
	PartsExpireAt time.Time `json:"parts_expire_at"`
}

// Multipart reports whether the session sends parts to per-part URLs.
func (s *Session) Multipart() bool {
	return s.UploadID != ""
}

// CompletedParts lists the stored parts in order. It is empty for ranged
// sessions.
func (s *Session) CompletedParts() []models.CompletedPart {
	if !s.Multipart() {
		return nil
	}
	out := make([]models.CompletedPart, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		if c.Uploaded {
			out = append(out, models.CompletedPart{Number: c.PartNumber(), ETag: c.ETag})
		}
	}
	return out
}

// applyGrant records signed part URLs on the matching chunks.
func (s *Session) applyGrant(g models.PartsGrant) error {
	if g.UploadID != s.UploadID {
		return fmt.Errorf("%w: part grant for upload %q, session has %q", common.ErrDestination, g.UploadID, s.UploadID)
	}
	for _, p := range g.Parts {
		idx := int(p.Number) - 1
		if idx < 0 || idx >= len(s.Chunks) || p.URL == "" {
			return fmt.Errorf("%w: bad part %d in grant for %s", common.ErrDestination, p.Number, s.Key)
		}
		s.Chunks[idx].URL = p.URL
	}
	s.PartsExpireAt = g.ExpiresAt
	return nil
}

// UploadedBytes is the size of all chunks marked uploaded.
func (s *Session) UploadedBytes() int64 {
	var n int64
	for _, c := range s.Chunks {
		if c.Uploaded {
			n += c.Size()
		}
	}
	return n
}

// Pending returns the indices of chunks not uploaded yet.
func (s *Session) Pending() []int {
	var out []int
	for _, c := range s.Chunks {
		if !c.Uploaded {
			out = append(out, c.Index)
		}
	}
	return out
}

// Matches reports whether f with this payload size continues the session.
func (s *Session) Matches(f models.File, payloadSize int64) error {
	if s.FileName != f.Name || s.FileSize != f.Size || s.TotalBytes != payloadSize {
		return fmt.Errorf("%w: session %s/%d bytes, got %s/%d bytes",
			common.ErrResumeMismatch, s.FileName, s.FileSize, f.Name, f.Size)
	}
	return nil
}

// ChunkError reports chunks that exhausted their attempts.
type ChunkError struct {
	Key     string
	Indices []int
	Err     error
}

func (e *ChunkError) Error() string {
	idx := make([]string, len(e.Indices))
	for i, v := range e.Indices {
		idx[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s: chunks [%s] of %s: %v", common.ErrTransfer, strings.Join(idx, " "), e.Key, e.Err)
}

func (e *ChunkError) Unwrap() []error {
	return []error{common.ErrTransfer, e.Err}
}
