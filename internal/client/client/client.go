package client

import (
	"context"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

type Client interface {
	models.Issuer
	models.Confirmer
	models.PartIssuer
	Ping(ctx context.Context) error
	Close() error
}
