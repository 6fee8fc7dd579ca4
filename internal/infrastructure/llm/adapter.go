package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/synthetic"
)

const (
	SourceName         = "generative"
	defaultSourceLabel = "AI Suggestions"
	defaultResultCount = 10
	galleryPlaceholder = "https://via.placeholder.com/800"
)

const searchSystemPrompt = `You are a product search assistant. Return only a JSON array of %d relevant products. ` +
	`Each element must be an object with the keys "name", "price", "description", "rating", "reviews", ` +
	`"specifications" (an object of strings or string arrays) and "features" (an array of strings). No prose.`

const detailSystemPrompt = `You are a product details assistant. Return only one JSON object with the keys ` +
	`"name", "price", "description", "thumbnail", "source", "specifications" (an object of strings or string arrays) ` +
	`and "features" (an array of strings). No prose.`

// Adapter exposes a text generation backend as a product source
type Adapter struct {
	client domain.CompletionClient
	count  int
	log    zerolog.Logger
}

// NewAdapter creates a generative product source asking for count products per search
func NewAdapter(client domain.CompletionClient, count int, log zerolog.Logger) *Adapter {
	if count <= 0 {
		count = defaultResultCount
	}
	return &Adapter{
		client: client,
		count:  count,
		log:    log.With().Str("component", "llm").Logger(),
	}
}

func (a *Adapter) Name() string {
	return SourceName
}

// Search asks the model for a product list. Unparseable output is an error
// the caller is expected to absorb.
func (a *Adapter) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	content, err := a.client.Complete(ctx,
		fmt.Sprintf(searchSystemPrompt, a.count),
		fmt.Sprintf("Generate detailed product search results for: %s. Include variety in prices and features.", query),
	)
	if err != nil {
		return nil, err
	}

	items, err := parseProductList(content)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		p, ok := item.toProduct("", defaultSourceLabel, synthetic.Thumbnail(query))
		if !ok {
			continue
		}
		products = append(products, p)
	}

	a.log.Debug().Str("query", query).Int("products", len(products)).Msg("parsed generated products")
	return products, nil
}

// GetDetails asks the model to describe id and replicates its thumbnail
// across the gallery.
func (a *Adapter) GetDetails(ctx context.Context, id string) (*domain.Product, error) {
	content, err := a.client.Complete(ctx,
		detailSystemPrompt,
		fmt.Sprintf("Generate detailed product information for: %s. Include realistic specifications, features, and pricing.", id),
	)
	if err != nil {
		return nil, err
	}

	item, err := parseProduct(content)
	if err != nil {
		return nil, err
	}

	p, ok := item.toProduct(id, defaultSourceLabel, galleryPlaceholder)
	if !ok {
		return nil, fmt.Errorf("%w: generated product has no name", domain.ErrMalformedResponse)
	}
	p.Images = make([]string, domain.GalleryImageCount)
	for i := range p.Images {
		p.Images[i] = p.Thumbnail
	}
	return &p, nil
}
