package transfer

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/netx"
)

// ChunkedUploader runs resumable chunked uploads persisted in a kv.Store.
// Chunks go either as Content-Range PUTs to a slot that accepts ranges, or
// as multipart parts signed by parts.
type ChunkedUploader struct {
	cfg   Config
	store kv.Store
	parts models.PartIssuer
}

// NewChunkedUploader returns an uploader. A nil parts limits it to slots
// that accept ranges.
func NewChunkedUploader(store kv.Store, parts models.PartIssuer, cfg Config) *ChunkedUploader {
	cfg.defaults()
	return &ChunkedUploader{cfg: cfg, store: store, parts: parts}
}

// Supports reports whether dest can take a chunked upload.
func (u *ChunkedUploader) Supports(dest models.DestinationSlot) bool {
	return dest.AcceptsRanges || u.parts != nil
}

// Resumable reports whether s can continue without a new destination. A
// completed session only needs confirming. Multipart sessions get their
// part URLs signed again; ranged ones need the stored URL to stay valid
// for buffer.
func (u *ChunkedUploader) Resumable(s *Session, buffer time.Duration) bool {
	switch {
	case s.Completed:
		return true
	case s.Multipart():
		return u.parts != nil
	default:
		return s.Destination.FreshFor(u.cfg.Now(), buffer)
	}
}

// ChunkSize is the configured chunk size.
func (u *ChunkedUploader) ChunkSize() int64 {
	return u.cfg.ChunkSize
}

// Upload starts a new session for f and sends every chunk of payload to
// dest. Any stored session under the same key is replaced.
func (u *ChunkedUploader) Upload(ctx context.Context, f models.File, payload []byte, dest models.DestinationSlot, progress func(sent int64)) (*Session, error) {
	now := u.cfg.Now()
	s := &Session{
		Key:         f.Identity(),
		FileName:    f.Name,
		FileSize:    f.Size,
		TotalBytes:  int64(len(payload)),
		ChunkSize:   u.cfg.ChunkSize,
		Chunks:      CreateChunks(int64(len(payload)), u.cfg.ChunkSize),
		StartedAt:   now,
		LastUpdated: now,
		Destination: dest,
	}
	if !dest.AcceptsRanges {
		if err := u.startParts(ctx, s); err != nil {
			return nil, err
		}
	}
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}
	return s, u.run(ctx, s, payload, progress)
}

// Resume continues s with a freshly selected file. The file name and sizes
// must match the session; only chunks not yet uploaded are sent.
func (u *ChunkedUploader) Resume(ctx context.Context, s *Session, f models.File, payload []byte, progress func(sent int64)) (*Session, error) {
	if err := s.Matches(f, int64(len(payload))); err != nil {
		return nil, err
	}
	if s.Completed {
		return s, nil
	}
	if s.Multipart() && u.parts == nil {
		return nil, fmt.Errorf("%w: multipart session %s needs a part issuer", common.ErrDestination, s.Key)
	}

	s.Error = ""
	s.FailedChunks = nil
	for i := range s.Chunks {
		if !s.Chunks[i].Uploaded {
			s.Chunks[i].Retries = 0
		}
	}
	u.cfg.Logger.Info(ctx, "resuming chunked upload", "key", s.Key,
		"uploaded", len(s.Chunks)-len(s.Pending()), "total", len(s.Chunks))
	return s, u.run(ctx, s, payload, progress)
}

// Finalize deletes the session record. Call it only after the upload has
// been confirmed.
func (u *ChunkedUploader) Finalize(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

// Load returns the stored session for key, or nil when there is none.
func (u *ChunkedUploader) Load(ctx context.Context, key string) (*Session, error) {
	raw, err := u.store.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &s, nil
}

// List returns every stored session, most recently updated first.
// Undecodable records are skipped.
func (u *ChunkedUploader) List(ctx context.Context) ([]*Session, error) {
	all, err := u.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(all))
	for key, raw := range all {
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			u.cfg.Logger.Warn(ctx, "skipping unreadable session", "key", key, "error", err)
			continue
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

// startParts opens a multipart upload for s and signs every part.
func (u *ChunkedUploader) startParts(ctx context.Context, s *Session) error {
	if u.parts == nil {
		return fmt.Errorf("%w: slot for %s takes no ranges", common.ErrDestination, s.Key)
	}
	grant, err := u.parts.PresignParts(ctx, models.PartsRequest{
		Token:     s.Destination.Token,
		TotalSize: s.TotalBytes,
		ChunkSize: s.ChunkSize,
	})
	if err != nil {
		return fmt.Errorf("%w: start multipart %s: %w", common.ErrDestination, s.Key, err)
	}
	if grant.UploadID == "" {
		return fmt.Errorf("%w: no upload id for %s", common.ErrDestination, s.Key)
	}
	s.UploadID = grant.UploadID
	if err := s.applyGrant(grant); err != nil {
		return err
	}
	for _, c := range s.Chunks {
		if c.URL == "" {
			return fmt.Errorf("%w: part %d of %s not signed", common.ErrDestination, c.PartNumber(), s.Key)
		}
	}
	return nil
}

// refreshParts signs the pending parts again when any of them lacks a URL
// or the URLs expire within ExpiryBuffer.
func (u *ChunkedUploader) refreshParts(ctx context.Context, s *Session, pending []int) error {
	stale := !u.cfg.Now().Add(u.cfg.ExpiryBuffer).Before(s.PartsExpireAt)
	numbers := make([]int32, 0, len(pending))
	for _, idx := range pending {
		if s.Chunks[idx].URL == "" {
			stale = true
		}
		numbers = append(numbers, s.Chunks[idx].PartNumber())
	}
	if !stale {
		return nil
	}

	grant, err := u.parts.PresignParts(ctx, models.PartsRequest{
		Token:       s.Destination.Token,
		UploadID:    s.UploadID,
		TotalSize:   s.TotalBytes,
		ChunkSize:   s.ChunkSize,
		PartNumbers: numbers,
	})
	if err != nil {
		return fmt.Errorf("%w: refresh parts of %s: %w", common.ErrDestination, s.Key, err)
	}
	if err := s.applyGrant(grant); err != nil {
		return err
	}
	u.cfg.Logger.Debug(ctx, "part urls refreshed", "key", s.Key, "parts", len(grant.Parts))
	return u.save(ctx, s)
}

func (u *ChunkedUploader) save(ctx context.Context, s *Session) error {
	s.LastUpdated = u.cfg.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.Key, err)
	}
	if err := u.store.Save(ctx, s.Key, raw); err != nil {
		return fmt.Errorf("persist session %s: %w", s.Key, err)
	}
	return nil
}

// run sends the pending chunks ParallelChunks at a time. A batch with a
// failed chunk ends the upload; uploaded chunks stay recorded.
func (u *ChunkedUploader) run(ctx context.Context, s *Session, payload []byte, progress func(sent int64)) error {
	var mu sync.Mutex
	sent := s.UploadedBytes()
	if progress != nil {
		progress(sent)
	}

	pending := s.Pending()
	for len(pending) > 0 {
		if s.Multipart() {
			if err := u.refreshParts(ctx, s, pending); err != nil {
				return err
			}
		}
		n := min(len(pending), u.cfg.ParallelChunks)
		batch := pending[:n]
		pending = pending[n:]

		var (
			failed  []int
			lastErr error
		)
		var g errgroup.Group
		for _, idx := range batch {
			g.Go(func() error {
				c := s.Chunks[idx]
				sum, etag, attempts, err := u.sendChunk(ctx, s, c, payload[c.Start:c.End])

				mu.Lock()
				defer mu.Unlock()

				s.Chunks[idx].Retries = max(attempts-1, 0)
				if err != nil {
					if ctx.Err() == nil {
						failed = append(failed, idx)
						lastErr = err
					}
					return nil
				}
				s.Chunks[idx].Uploaded = true
				s.Chunks[idx].Checksum = sum
				s.Chunks[idx].ETag = etag
				sent += c.Size()
				if progress != nil {
					progress(sent)
				}
				if err := u.save(ctx, s); err != nil {
					u.cfg.Logger.Warn(ctx, "chunk progress not persisted", "key", s.Key, "error", err)
				}
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return err
		}
		if len(failed) > 0 {
			slices.Sort(failed)
			cerr := &ChunkError{Key: s.Key, Indices: failed, Err: lastErr}
			s.FailedChunks = failed
			s.Error = cerr.Error()
			if err := u.save(ctx, s); err != nil {
				u.cfg.Logger.Warn(ctx, "failed session not persisted", "key", s.Key, "error", err)
			}
			u.cfg.Logger.Error(ctx, "chunked upload failed", "key", s.Key, "chunks", failed, "error", lastErr)
			return cerr
		}
	}

	s.Completed = true
	return u.save(ctx, s)
}

// sendChunk PUTs one chunk with its own backoff and returns the checksum,
// the part ETag when the session is multipart, and the number of attempts.
func (u *ChunkedUploader) sendChunk(ctx context.Context, s *Session, c Chunk, data []byte) (string, string, int, error) {
	digest := sha256.Sum256(data)
	sum := base64.StdEncoding.EncodeToString(digest[:])

	url := s.Destination.TransferURL
	header := http.Header{}
	if s.Multipart() {
		url = c.URL
	} else {
		header.Set(common.HeaderContentRange, c.ContentRange(s.TotalBytes))
		header.Set(common.HeaderChunkIndex, strconv.Itoa(c.Index))
		header.Set(common.HeaderChunkChecksum, sum)
	}

	var etag string
	attempts := 0
	err := retry.Do(ctx, backoff(u.cfg.MaxAttempts, u.cfg.RetryBase), func(ctx context.Context) error {
		attempts++
		resp, err := netx.Put(ctx, u.cfg.HTTPClient, url, data, header, nil)
		if err == nil {
			err = checkChunkResponse(s, c, resp, sum)
		}
		if err == nil {
			etag = resp.Get("ETag")
			return nil
		}
		u.cfg.Logger.Debug(ctx, "chunk attempt failed", "key", s.Key, "chunk", c.Index, "attempt", attempts, "error", err)
		if errors.Is(err, common.ErrIntegrity) || netx.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	return sum, etag, attempts, err
}

// checkChunkResponse verifies the checksum echo of a ranged chunk, or the
// presence of an ETag for a part.
func checkChunkResponse(s *Session, c Chunk, resp http.Header, sum string) error {
	if s.Multipart() {
		if resp.Get("ETag") == "" {
			return fmt.Errorf("%w: part %d stored without an ETag", common.ErrIntegrity, c.PartNumber())
		}
		return nil
	}
	if echo := resp.Get(common.HeaderChunkChecksum); echo != "" && echo != sum {
		return fmt.Errorf("%w: chunk %d", common.ErrIntegrity, c.Index)
	}
	return nil
}
