// Package synthetic fabricates plausible product records for when no real
// source has data. Every draw goes through one seedable random source so
// tests can pin the output.
package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopscout/backend/internal/domain"
)

// Source label attached to every generated product
const SourceLabel = "Product Search"

// UnknownSource labels placeholders whose id carries no hostname
const UnknownSource = "Unknown source"

const (
	placeholderGalleryImage = "https://via.placeholder.com/800"
	maxGeneratedReviews     = 1000
)

type priceRange struct {
	min, max int
}

var defaultPriceRange = priceRange{49, 499}

// priceRanges is checked by exact category first, then by substring
var priceRanges = []struct {
	category string
	rng      priceRange
}{
	{"laptop", priceRange{599, 1999}},
	{"phone", priceRange{299, 1299}},
	{"tablet", priceRange{199, 999}},
}

var brands = []string{
	"Dell", "HP", "Lenovo", "Asus", "Acer", "MSI",
	"Apple", "Samsung", "Microsoft", "LG", "Toshiba",
}

var modelSeries = []string{"Pro", "Elite", "Ultra", "Plus", "Max", "Air"}

var descriptionTemplates = []string{
	"High-performance %s with latest technology",
	"Premium %s designed for professionals",
	"Powerful %s with exceptional features",
	"Best-selling %s with great value",
	"Advanced %s for demanding users",
}

var laptopImages = []string{
	"https://m.media-amazon.com/images/I/71TPda7cwUL._AC_SL1500_.jpg",
	"https://m.media-amazon.com/images/I/71jG+e7roXL._AC_SL1500_.jpg",
	"https://m.media-amazon.com/images/I/71tpxt6nwFL._AC_SL1500_.jpg",
	"https://m.media-amazon.com/images/I/71E+KjH7GtL._AC_SL1500_.jpg",
	"https://m.media-amazon.com/images/I/71c5W9NxN5L._AC_SL1500_.jpg",
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes every draw deterministic
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock overrides the time source used for model years
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator produces synthetic products. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates a generator seeded from the runtime unless WithSeed is given
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Generator) float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// Price draws a whole-dollar amount from the category's range and formats it
// as "$<n>.99".
func (g *Generator) Price(category string) string {
	rng := lookupPriceRange(category)
	n := rng.min + g.intN(rng.max-rng.min+1)
	return fmt.Sprintf("$%d.99", n)
}

func lookupPriceRange(category string) priceRange {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, entry := range priceRanges {
		if category == entry.category {
			return entry.rng
		}
	}
	for _, entry := range priceRanges {
		if strings.Contains(category, entry.category) {
			return entry.rng
		}
	}
	return defaultPriceRange
}

// Rating returns a value in [3.0, 5.0] rounded to one decimal place
func (g *Generator) Rating() float64 {
	return math.Round((3+g.float64()*2)*10) / 10
}

// Reviews returns a review count in [0, 1000)
func (g *Generator) Reviews() int {
	return g.intN(maxGeneratedReviews)
}

func (g *Generator) Brand() string {
	return brands[g.intN(len(brands))]
}

// Model returns a name such as "Ultra 4821 (2026)"
func (g *Generator) Model() string {
	series := modelSeries[g.intN(len(modelSeries))]
	number := 1000 + g.intN(9000)
	return fmt.Sprintf("%s %d (%d)", series, number, g.now().Year())
}

func (g *Generator) Description(query string) string {
	return fmt.Sprintf(descriptionTemplates[g.intN(len(descriptionTemplates))], query)
}

// Thumbnail returns a placeholder image labelled with query
func Thumbnail(query string) string {
	return "https://via.placeholder.com/300x300?text=" + url.QueryEscape(query)
}

// Images returns a five-image gallery for category
func Images(category string) []string {
	if strings.Contains(strings.ToLower(category), "laptop") {
		return append([]string(nil), laptopImages...)
	}
	return PlaceholderImages(domain.GalleryImageCount)
}

// PlaceholderImages returns n generic gallery images
func PlaceholderImages(n int) []string {
	images := make([]string, n)
	for i := range images {
		images[i] = placeholderGalleryImage
	}
	return images
}

// Product builds a single synthetic record with the given id
func (g *Generator) Product(id, query string) domain.Product {
	return g.product(id, query, g.Brand(), g.Model())
}

func (g *Generator) product(id, query, brand, model string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        fmt.Sprintf("%s %s %s", brand, query, model),
		Thumbnail:   Thumbnail(query),
		Price:       g.Price(query),
		Source:      SourceLabel,
		Description: g.Description(query),
		Rating:      domain.Float64(g.Rating()),
		Reviews:     domain.Int(g.Reviews()),
	}
}

// Batch returns count synthetic products with ids "generated-<index>".
// It performs no I/O and cannot fail.
func (g *Generator) Batch(query string, count int) []domain.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		query = "Product"
	}
	products := make([]domain.Product, 0, max(count, 0))
	for i := 0; i < count; i++ {
		products = append(products, g.Product(domain.GeneratedPrefix+strconv.Itoa(i), query))
	}
	return products
}

// Detail builds the full record for a "generated-<tag>" id: a gallery
// chosen by tag and the standard five-entry specifications block.
func (g *Generator) Detail(tag string) domain.Product {
	query := strings.TrimSpace(tag)
	if query == "" || isNumeric(query) {
		query = "Product"
	}
	brand, model := g.Brand(), g.Model()
	p := g.product(domain.GeneratedPrefix+tag, query, brand, model)
	p.Images = Images(tag)
	p.Specifications = domain.Specifications{
		"Brand":        brand,
		"Model":        model,
		"Release Year": strconv.Itoa(g.now().Year()),
		"Condition":    "New",
		"Availability": "In Stock",
	}
	return p
}

// Placeholder builds the last-resort record for an id no source could
// resolve. Its source is the id's hostname when the id is a URL. It fails
// with domain.ErrDetailsUnavailable when id is not a valid URI reference.
func Placeholder(id string) (domain.Product, error) {
	u, err := url.Parse(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrDetailsUnavailable, err)
	}
	source := u.Hostname()
	if source == "" {
		source = UnknownSource
	}

	return domain.Product{
		ID:          id,
		Name:        "Product Details for " + id,
		Thumbnail:   placeholderGalleryImage,
		Price:       domain.PriceNotAvailable,
		Source:      source,
		Description: "Detailed product information not available at the moment.",
		Specifications: domain.Specifications{
			"Brand":        "Brand information unavailable",
			"Model":        "Model information unavailable",
			"Product URL":  id,
			"Availability": "unavailable",
		},
		Features: []string{
			"Feature information currently unavailable",
			"Please check back later for updated details",
		},
		Images: PlaceholderImages(domain.GalleryImageCount),
	}, nil
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
