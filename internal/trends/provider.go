// Package trends talks to the external trending-searches provider.
package trends

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedRegion means the provider cannot scope results to the code.
	ErrUnsupportedRegion = errors.New("unsupported region code")

	// ErrMalformedResponse means the provider answered but the body could not be parsed.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Provider returns the currently trending search terms for a region, most
// popular first.
type Provider interface {
	TrendingSearches(ctx context.Context, code string) ([]string, error)
}
