// Package services holds the server-side business logic behind the gRPC
// handlers.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/dbx"
	"github.com/dmitrijs2005/mediaup/internal/logging"
	"github.com/dmitrijs2005/mediaup/internal/server/auth"
	sc "github.com/dmitrijs2005/mediaup/internal/server/config"
	"github.com/dmitrijs2005/mediaup/internal/server/models"
	"github.com/dmitrijs2005/mediaup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mediaup/internal/server/repositories/uploads"
	"github.com/dmitrijs2005/mediaup/internal/server/storage"
)

const (
	// MaxBatch caps the number of items in one Issue or Confirm call.
	MaxBatch = 500

	// S3 multipart limits: every part but the last is at least MinPartSize,
	// and part numbers run from 1 to MaxParts.
	MinPartSize int64 = 5 << 20
	MaxParts          = 10000
)

// UploadService issues destinations and records confirmed uploads.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	store       storage.ObjectStore
	keys        *storage.KeyGenerator
	logger      logging.Logger
	now         func() time.Time
}

func NewUploadService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config,
	store storage.ObjectStore, logger logging.Logger) *UploadService {
	return &UploadService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		store:       store,
		keys:        storage.NewKeyGenerator(),
		logger:      logger.With("module", "upload_service"),
		now:         time.Now,
	}
}

// Issue returns one slot per file, in request order. One invalid file rejects the
// whole batch with common.ErrorValidation.
func (s *UploadService) Issue(ctx context.Context, userID string, files []models.FileSpec) ([]models.Slot, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	if len(files) == 0 || len(files) > MaxBatch {
		return nil, fmt.Errorf("%w: batch of %d files", common.ErrorValidation, len(files))
	}
	for i, f := range files {
		if err := s.validateSpec(f); err != nil {
			return nil, fmt.Errorf("%w: file %d: %v", common.ErrorValidation, i, err)
		}
	}

	secret := []byte(s.config.SecretKey)
	slots := make([]models.Slot, 0, len(files))
	for _, f := range files {
		now := s.now()
		key := s.keys.Key(userID, f.Filename, now)

		url, err := s.store.PresignPut(ctx, key, s.config.UploadURLValidity)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}

		token, err := auth.GenerateUploadToken(auth.UploadClaims{
			UserID:      userID,
			StoragePath: key,
			FileSize:    f.FileSize,
			MimeType:    f.MimeType,
		}, secret, s.config.ConfirmWindow)
		if err != nil {
			return nil, err
		}

		slots = append(slots, models.Slot{
			LocalID:     f.LocalID,
			StoragePath: key,
			TransferURL: url,
			Token:       token,
			ExpiresAt:   now.Add(s.config.UploadURLValidity),
		})
	}

	s.logger.Info(ctx, "slots issued", "user_id", userID, "count", len(slots))
	return slots, nil
}

func (s *UploadService) validateSpec(f models.FileSpec) error {
	switch {
	case strings.TrimSpace(f.Filename) == "":
		return fmt.Errorf("empty filename")
	case f.FileSize <= 0:
		return fmt.Errorf("size %d", f.FileSize)
	case s.config.MaxFileSize > 0 && f.FileSize > s.config.MaxFileSize:
		return fmt.Errorf("size %d exceeds %d", f.FileSize, s.config.MaxFileSize)
	}
	return nil
}

// PresignParts signs part URLs for the object an upload token was issued
// for. Without an UploadID it first opens a multipart upload.
func (s *UploadService) PresignParts(ctx context.Context, userID string, req models.PartsRequest) (models.PartsGrant, error) {
	if userID == "" {
		return models.PartsGrant{}, common.ErrorUnauthorized
	}

	claims, err := auth.ParseUploadToken(req.Token, []byte(s.config.SecretKey))
	if err != nil {
		return models.PartsGrant{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if claims.UserID != userID {
		return models.PartsGrant{}, fmt.Errorf("%w: token belongs to another user", common.ErrorValidation)
	}

	numbers, err := partNumbers(req, claims.FileSize)
	if err != nil {
		return models.PartsGrant{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	key := claims.StoragePath
	grant := models.PartsGrant{UploadID: req.UploadID}
	opened := grant.UploadID == ""
	if opened {
		grant.UploadID, err = s.store.StartMultipart(ctx, key, claims.MimeType)
		if err != nil {
			return models.PartsGrant{}, err
		}
		s.logger.Info(ctx, "multipart started", "user_id", userID, "path", key, "parts", len(numbers))
	}

	now := s.now()
	grant.Parts = make([]models.PartURL, 0, len(numbers))
	for _, n := range numbers {
		url, err := s.store.PresignPart(ctx, key, grant.UploadID, n, s.config.UploadURLValidity)
		if err != nil {
			if opened {
				// nobody holds the upload id yet
				if aerr := s.store.AbortMultipart(context.WithoutCancel(ctx), key, grant.UploadID); aerr != nil {
					s.logger.Warn(ctx, "multipart abort failed", "path", key, "upload_id", grant.UploadID, "error", aerr)
				}
			}
			return models.PartsGrant{}, err
		}
		grant.Parts = append(grant.Parts, models.PartURL{Number: n, URL: url})
	}
	grant.ExpiresAt = now.Add(s.config.UploadURLValidity)

	return grant, nil
}

// partNumbers resolves the parts a request asks for. Explicit numbers must
// fall inside the layout TotalSize and ChunkSize describe.
func partNumbers(req models.PartsRequest, declared int64) ([]int32, error) {
	switch {
	case req.TotalSize <= 0:
		return nil, fmt.Errorf("total size %d", req.TotalSize)
	case req.TotalSize > declared:
		return nil, fmt.Errorf("total size %d exceeds declared %d", req.TotalSize, declared)
	case req.ChunkSize < MinPartSize:
		return nil, fmt.Errorf("chunk size %d below %d", req.ChunkSize, MinPartSize)
	}

	count := (req.TotalSize + req.ChunkSize - 1) / req.ChunkSize
	if count > MaxParts {
		return nil, fmt.Errorf("%d parts exceed %d", count, MaxParts)
	}

	if len(req.PartNumbers) == 0 {
		all := make([]int32, count)
		for i := range all {
			all[i] = int32(i + 1)
		}
		return all, nil
	}

	for _, n := range req.PartNumbers {
		if n < 1 || int64(n) > count {
			return nil, fmt.Errorf("part %d outside 1..%d", n, count)
		}
	}
	return req.PartNumbers, nil
}

// Confirm checks every upload token and that storage holds an object of
// the reported size, then records the whole batch in one transaction.
// Multipart uploads are completed first. Paths that are already recorded
// count as success, so a replayed batch is harmless. It returns the number
// of newly recorded uploads.
func (s *UploadService) Confirm(ctx context.Context, userID string, items []models.Upload) (int, error) {
	if userID == "" {
		return 0, common.ErrorUnauthorized
	}
	if len(items) == 0 || len(items) > MaxBatch {
		return 0, fmt.Errorf("%w: batch of %d uploads", common.ErrorValidation, len(items))
	}

	for i, it := range items {
		if err := s.validateUpload(userID, it); err != nil {
			return 0, fmt.Errorf("%w: upload %d: %v", common.ErrorValidation, i, err)
		}
	}

	repo := s.repomanager.Uploads(s.db)
	rows := make([]*uploads.Upload, 0, len(items))
	for i, it := range items {
		_, err := repo.GetByStoragePath(ctx, it.StoragePath)
		switch {
		case err == nil:
			// recorded by an earlier confirm
			continue
		case !errors.Is(err, common.ErrorNotFound):
			return 0, fmt.Errorf("confirm uploads: %w", err)
		}

		if err := s.settleObject(ctx, it); err != nil {
			if errors.Is(err, common.ErrorValidation) {
				return 0, fmt.Errorf("%w: upload %d: %v", common.ErrorValidation, i, err)
			}
			return 0, fmt.Errorf("confirm uploads: %w", err)
		}

		rows = append(rows, &uploads.Upload{
			StoragePath: it.StoragePath,
			UserID:      userID,
			Filename:    it.Filename,
			FileSize:    it.FileSize,
			MimeType:    it.MimeType,
			Width:       it.Width,
			Height:      it.Height,
		})
	}

	created, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (int, error) {
		repo := s.repomanager.Uploads(tx)
		n := 0
		for _, r := range rows {
			isNew, err := repo.Insert(ctx, r)
			if err != nil {
				return 0, err
			}
			if isNew {
				n++
			}
		}
		return n, nil
	})
	if err != nil {
		return 0, fmt.Errorf("confirm uploads: %w", err)
	}

	s.logger.Info(ctx, "uploads confirmed", "user_id", userID, "batch", len(items), "new", created)
	return created, nil
}

// settleObject completes a multipart upload if there is one and checks the
// stored size. A completion that fails because an earlier attempt already
// completed it is accepted when the object is there with the right size.
func (s *UploadService) settleObject(ctx context.Context, it models.Upload) error {
	var completeErr error
	if it.UploadID != "" {
		parts := make([]storage.Part, 0, len(it.Parts))
		for _, p := range it.Parts {
			parts = append(parts, storage.Part{Number: p.Number, ETag: p.ETag})
		}
		completeErr = s.store.CompleteMultipart(ctx, it.StoragePath, it.UploadID, parts)
	}

	size, err := s.store.Size(ctx, it.StoragePath)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		if completeErr != nil {
			return completeErr
		}
		return fmt.Errorf("%w: %s was not uploaded", common.ErrorValidation, it.StoragePath)
	case err != nil:
		return err
	case size != it.FileSize:
		return fmt.Errorf("%w: stored %d bytes, reported %d", common.ErrorValidation, size, it.FileSize)
	}

	if completeErr != nil {
		s.logger.Warn(ctx, "multipart already completed", "path", it.StoragePath, "error", completeErr)
	}
	return nil
}

func (s *UploadService) validateUpload(userID string, it models.Upload) error {
	claims, err := auth.ParseUploadToken(it.Token, []byte(s.config.SecretKey))
	if err != nil {
		return err
	}
	switch {
	case claims.UserID != userID:
		return fmt.Errorf("token belongs to another user")
	case claims.StoragePath != it.StoragePath:
		return fmt.Errorf("token was issued for %s", claims.StoragePath)
	case !storage.OwnedBy(it.StoragePath, userID):
		return fmt.Errorf("path %s is outside the user prefix", it.StoragePath)
	case it.FileSize <= 0:
		return fmt.Errorf("size %d", it.FileSize)
	case it.FileSize > claims.FileSize:
		return fmt.Errorf("size %d exceeds declared %d", it.FileSize, claims.FileSize)
	case s.config.MaxFileSize > 0 && it.FileSize > s.config.MaxFileSize:
		return fmt.Errorf("size %d exceeds %d", it.FileSize, s.config.MaxFileSize)
	case !sameMedia(claims.MimeType, it.MimeType):
		return fmt.Errorf("type %s, declared %s", it.MimeType, claims.MimeType)
	}
	return nil
}

// sameMedia reports whether got is an acceptable type for a file declared
// as declared. Compression re-encodes WebP as JPEG.
func sameMedia(declared, got string) bool {
	if got == declared {
		return true
	}
	return declared == "image/webp" && got == "image/jpeg"
}
