package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
)

// SourceName identifies the web search adapter in logs
const SourceName = "websearch"

// DefaultDomains are the retailer sites searches are scoped to
var DefaultDomains = []string{"amazon.com", "bestbuy.com"}

// AdapterConfig controls how product queries are phrased
type AdapterConfig struct {
	Domains    []string
	NumResults int
}

// Adapter exposes the search API as a product source
type Adapter struct {
	client     domain.SearchClient
	fill       Filler
	domains    []string
	numResults int
	log        zerolog.Logger
}

// NewAdapter creates a web search product source
func NewAdapter(client domain.SearchClient, fill Filler, cfg AdapterConfig, log zerolog.Logger) *Adapter {
	domains := cfg.Domains
	if len(domains) == 0 {
		domains = DefaultDomains
	}
	num := cfg.NumResults
	if num <= 0 {
		num = defaultNumResults
	}
	return &Adapter{
		client:     client,
		fill:       fill,
		domains:    domains,
		numResults: num,
		log:        log.With().Str("component", "websearch").Logger(),
	}
}

func (a *Adapter) Name() string {
	return SourceName
}

// ScopedQuery phrases query as "<query> site:a OR site:b price"
func (a *Adapter) ScopedQuery(query string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(query))
	for i, d := range a.domains {
		if i > 0 {
			b.WriteString(" OR")
		}
		b.WriteString(" site:")
		b.WriteString(d)
	}
	b.WriteString(" price")
	return b.String()
}

// Search returns one Product per usable search result
func (a *Adapter) Search(ctx context.Context, query string) ([]domain.Product, error) {
	resp, err := a.client.Search(ctx, domain.SearchRequest{
		Query:      a.ScopedQuery(query),
		NumResults: a.numResults,
	})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Items))
	for _, item := range resp.Items {
		if strings.TrimSpace(item.Link) == "" || strings.TrimSpace(item.Title) == "" {
			continue
		}
		p := MapSearchItem(item, query, a.fill)
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}

	a.log.Debug().Str("query", query).Int("products", len(products)).Msg("mapped search results")
	return products, nil
}

// GetDetails searches for the id itself and maps the top hit
func (a *Adapter) GetDetails(ctx context.Context, id string) (*domain.Product, error) {
	resp, err := a.client.Search(ctx, domain.SearchRequest{Query: id, NumResults: 1})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, domain.ErrProductNotFound
	}

	item := resp.Items[0]
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("%w: top result has no title", domain.ErrMalformedResponse)
	}

	p := MapDetailItem(id, item)
	return &p, nil
}
