package llm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/extract"
)

// generatedProduct is the loosely typed shape models answer with
type generatedProduct map[string]any

// stripCodeFence removes a surrounding ```json ... ``` block if present
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// parseProductList accepts a JSON array of products or an object wrapping
// one under "products".
func parseProductList(content string) ([]generatedProduct, error) {
	var decoded any
	if err := json5.Unmarshal([]byte(stripCodeFence(content)), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	var items []any
	switch v := decoded.(type) {
	case []any:
		items = v
	case map[string]any:
		list, ok := v["products"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a JSON array of products", domain.ErrMalformedResponse)
		}
		items = list
	default:
		return nil, fmt.Errorf("%w: expected a JSON array of products", domain.ErrMalformedResponse)
	}

	products := make([]generatedProduct, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			products = append(products, obj)
		}
	}
	return products, nil
}

// parseProduct accepts a single JSON object
func parseProduct(content string) (generatedProduct, error) {
	var decoded any
	if err := json5.Unmarshal([]byte(stripCodeFence(content)), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrMalformedResponse)
	}
	return obj, nil
}

func (g generatedProduct) str(key string) string {
	if s, ok := g[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// price formats numbers as "$%.2f" and runs strings through the price
// extractor, falling back to the not-available label.
func (g generatedProduct) price() string {
	switch v := g["price"].(type) {
	case float64:
		if v >= 0 && !math.IsNaN(v) {
			return fmt.Sprintf("$%.2f", v)
		}
	case string:
		if p, ok := extract.Price(v); ok {
			return p
		}
		if n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64); err == nil && n >= 0 {
			return fmt.Sprintf("$%.2f", n)
		}
	}
	return domain.PriceNotAvailable
}

func (g generatedProduct) rating() *float64 {
	var r float64
	switch v := g["rating"].(type) {
	case float64:
		r = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		r = parsed
	default:
		return nil
	}
	if r < 0 || r > 5 || math.IsNaN(r) {
		return nil
	}
	return domain.Float64(math.Round(r*10) / 10)
}

func (g generatedProduct) reviews() *int {
	v, ok := g["reviews"].(float64)
	if !ok || v < 0 || v > math.MaxInt32 || v != math.Trunc(v) {
		return nil
	}
	return domain.Int(int(v))
}

func (g generatedProduct) specifications() domain.Specifications {
	raw, ok := g["specifications"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	specs := make(domain.Specifications, len(raw))
	for k, v := range raw {
		specs.Set(k, v)
	}
	if len(specs) == 0 {
		return nil
	}
	return specs
}

func (g generatedProduct) features() []string {
	raw, ok := g["features"].([]any)
	if !ok {
		return nil
	}
	features := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok && strings.TrimSpace(s) != "" {
			features = append(features, strings.TrimSpace(s))
		}
	}
	return features
}

// toProduct maps a generated record onto the domain model. The boolean is
// false when the record has no usable name.
func (g generatedProduct) toProduct(id, defaultSource, defaultThumbnail string) (domain.Product, bool) {
	name := g.str("name")
	if name == "" {
		name = g.str("title")
	}
	if name == "" {
		return domain.Product{}, false
	}
	if id == "" {
		id = g.str("id")
	}
	if id == "" {
		id = extract.Slug(name)
	}
	if id == "" {
		return domain.Product{}, false
	}

	source := g.str("source")
	if source == "" {
		source = defaultSource
	}
	thumbnail := g.str("thumbnail")
	if thumbnail == "" {
		thumbnail = defaultThumbnail
	}

	return domain.Product{
		ID:             id,
		Name:           name,
		Thumbnail:      thumbnail,
		Price:          g.price(),
		Source:         source,
		Description:    g.str("description"),
		Rating:         g.rating(),
		Reviews:        g.reviews(),
		Specifications: g.specifications(),
		Features:       g.features(),
	}, true
}
