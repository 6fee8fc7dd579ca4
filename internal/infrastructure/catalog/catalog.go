package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
)

// DefaultMaxDelay bounds the simulated per-call latency
const DefaultMaxDelay = 300 * time.Millisecond

// Catalog is a fixed, read-only product listing exposed as a domain.Source
type Catalog struct {
	name     string
	listings []domain.Product
	maxDelay time.Duration
	log      zerolog.Logger
}

// New returns a catalog over listings. A non-positive maxDelay disables the
// simulated latency.
func New(name string, listings []domain.Product, maxDelay time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{
		name:     name,
		listings: listings,
		maxDelay: maxDelay,
		log:      log.With().Str("component", "catalog").Str("catalog", name).Logger(),
	}
}

// Defaults returns the built-in Amazon, eBay, Walmart and Store catalogs in
// that order.
func Defaults(maxDelay time.Duration, log zerolog.Logger) []*Catalog {
	return []*Catalog{
		New("amazon", amazonListings, maxDelay, log),
		New("ebay", ebayListings, maxDelay, log),
		New("walmart", walmartListings, maxDelay, log),
		New("store", storeListings, maxDelay, log),
	}
}

func (c *Catalog) Name() string {
	return "catalog:" + c.name
}

// Search returns copies of every listing whose name contains query,
// compared case-insensitively.
func (c *Catalog) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if err := c.simulateLatency(ctx); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var results []domain.Product
	for i := range c.listings {
		if strings.Contains(strings.ToLower(c.listings[i].Name), needle) {
			results = append(results, *c.listings[i].Clone())
		}
	}

	c.log.Debug().Str("query", query).Int("results", len(results)).Msg("catalog search")
	return results, nil
}

// GetDetails resolves id against every built-in catalog, not only this one
func (c *Catalog) GetDetails(ctx context.Context, id string) (*domain.Product, error) {
	if err := c.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if p, ok := Lookup(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

func (c *Catalog) simulateLatency(ctx context.Context) error {
	if c.maxDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(rand.N(c.maxDelay))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Lookup finds id across all built-in listings and returns a deep copy
func Lookup(id string) (*domain.Product, bool) {
	for _, listings := range [][]domain.Product{amazonListings, ebayListings, walmartListings, storeListings} {
		for i := range listings {
			if listings[i].ID == id {
				return listings[i].Clone(), true
			}
		}
	}
	return nil, false
}
