package provider

import (
	"context"

	"github.com/mbalaz/dennyzen/internal/models"
)

// Client fetches one batch of inspirations from the generative-content
// provider. Implementations make a single attempt per call: no retries, no
// internal caching (the day store is the only cache).
type Client interface {
	FetchBatch(ctx context.Context) (models.Batch, error)
}
