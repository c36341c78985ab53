package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/netx"
)

// Uploader sends a payload in one PUT, retrying the whole request.
type Uploader struct {
	cfg Config
}

func NewUploader(cfg Config) *Uploader {
	cfg.defaults()
	return &Uploader{cfg: cfg}
}

// Upload PUTs payload to dest. Progress receives the bytes sent by the
// current attempt. The returned error wraps common.ErrTransfer unless ctx
// ended.
func (u *Uploader) Upload(ctx context.Context, payload []byte, dest models.DestinationSlot, progress func(sent int64)) error {
	attempt := 0
	err := retry.Do(ctx, backoff(u.cfg.SingleShotAttempts, u.cfg.RetryBase), func(ctx context.Context) error {
		attempt++
		_, err := netx.Put(ctx, u.cfg.HTTPClient, dest.TransferURL, payload, nil, progress)
		if err == nil {
			return nil
		}
		u.cfg.Logger.Warn(ctx, "upload attempt failed", "path", dest.StoragePath, "attempt", attempt, "error", err)
		if netx.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	return fmt.Errorf("%w: %s after %d attempt(s): %w", common.ErrTransfer, dest.StoragePath, attempt, err)
}
