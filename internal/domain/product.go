package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Display strings shared by every component that builds a Product
const (
	PriceNotAvailable = "Price not available"
	GeneratedPrefix   = "generated-"
	GalleryImageCount = 5
	MaxRating         = 5.0
)

// Product is the normalized record returned by searches and detail lookups
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Thumbnail      string         `json:"thumbnail"`
	Price          string         `json:"price"`
	Source         string         `json:"source"`
	Description    string         `json:"description"`
	Rating         *float64       `json:"rating,omitempty"`  // 0.0 - 5.0
	Reviews        *int           `json:"reviews,omitempty"` // >= 0
	Specifications Specifications `json:"specifications,omitempty"`
	Features       []string       `json:"features,omitempty"`
	Images         []string       `json:"images,omitempty"`
}

// Specifications maps a source-defined key to either a string or a []string.
// Use Set to keep values in one of those two shapes.
type Specifications map[string]any

// Set normalizes value and stores it. Values that cannot be represented as a
// string or a list of strings are ignored.
func (s Specifications) Set(key string, value any) {
	if v, ok := NormalizeSpecValue(value); ok {
		s[key] = v
	}
}

// UnmarshalJSON keeps decoded values in the string or []string shape
func (s *Specifications) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	specs := make(Specifications, len(raw))
	for k, v := range raw {
		specs.Set(k, v)
	}
	*s = specs
	return nil
}

// NormalizeSpecValue coerces loosely typed values (for example decoded JSON)
// into a string or []string.
func NormalizeSpecValue(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []string:
		return slices.Clone(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := NormalizeSpecValue(item); ok {
				if str, isStr := s.(string); isStr {
					out = append(out, str)
				}
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// Clone returns a deep copy so callers can mutate the result freely
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	out := *p
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.Reviews != nil {
		n := *p.Reviews
		out.Reviews = &n
	}
	if p.Specifications != nil {
		out.Specifications = make(Specifications, len(p.Specifications))
		for k, v := range p.Specifications {
			if list, ok := v.([]string); ok {
				v = slices.Clone(list)
			}
			out.Specifications[k] = v
		}
	}
	out.Features = slices.Clone(p.Features)
	out.Images = slices.Clone(p.Images)
	return &out
}

// Validate checks the invariants every returned product must satisfy
func (p *Product) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil product", ErrMalformedResponse)
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product id is empty", ErrMalformedResponse)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is empty", ErrMalformedResponse)
	}
	if strings.TrimSpace(p.Price) == "" {
		return fmt.Errorf("%w: product price is empty", ErrMalformedResponse)
	}
	if p.Rating != nil && !(*p.Rating >= 0 && *p.Rating <= MaxRating) {
		return fmt.Errorf("%w: rating %v outside [0, %v]", ErrMalformedResponse, *p.Rating, MaxRating)
	}
	if p.Reviews != nil && *p.Reviews < 0 {
		return fmt.Errorf("%w: negative review count %d", ErrMalformedResponse, *p.Reviews)
	}
	return nil
}

// Float64 and Int return pointers for the optional numeric fields
func Float64(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
