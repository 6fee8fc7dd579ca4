package websearch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/extract"
	"github.com/shopscout/backend/internal/synthetic"
)

// stubFiller returns fixed values so mapped fields are predictable
type stubFiller struct{}

func (stubFiller) Price(category string) string { return "$123.99" }
func (stubFiller) Rating() float64              { return 4.2 }
func (stubFiller) Reviews() int                 { return 77 }

func TestMapSearchItem_FullMetadata(t *testing.T) {
	item := domain.SearchItem{
		Title:   "Apple MacBook Air 13-inch - Amazon.com",
		Link:    "https://www.amazon.com/dp/B0CX23V2ZK",
		Snippet: "Apple MacBook Air with M3 chip. Now $1,049.00 with free shipping.",
		Pagemap: json.RawMessage(`{
			"cse_image": [{"src": "https://m.media-amazon.com/images/I/air.jpg"}],
			"aggregaterating": [{"ratingvalue": "4.7", "reviewcount": "2315"}]
		}`),
	}

	p := MapSearchItem(item, "laptop", stubFiller{})

	assert.Equal(t, "https://www.amazon.com/dp/B0CX23V2ZK", p.ID)
	assert.Equal(t, "Apple MacBook Air 13-inch", p.Name)
	assert.Equal(t, "https://m.media-amazon.com/images/I/air.jpg", p.Thumbnail)
	assert.Equal(t, "$1,049.00", p.Price)
	assert.Equal(t, "www.amazon.com", p.Source)
	assert.Equal(t, item.Snippet, p.Description)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 4.7, *p.Rating)
	require.NotNil(t, p.Reviews)
	assert.Equal(t, 2315, *p.Reviews)
}

func TestMapSearchItem_Fallbacks(t *testing.T) {
	t.Run("price from title when snippet has none", func(t *testing.T) {
		item := domain.SearchItem{
			Title:   "Sony Headphones $348.00 | Best Deals",
			Link:    "https://www.bestbuy.com/site/sony/1.p",
			Snippet: "Industry leading noise canceling.",
		}

		p := MapSearchItem(item, "headphones", stubFiller{})

		assert.Equal(t, "$348.00", p.Price)
		assert.Equal(t, "Sony Headphones $348.00", p.Name)
	})

	t.Run("synthesized values when metadata is missing", func(t *testing.T) {
		item := domain.SearchItem{
			Title:   "Some Gadget",
			Link:    "https://www.bestbuy.com/site/gadget/2.p",
			Snippet: "A gadget.",
		}

		p := MapSearchItem(item, "gadget", stubFiller{})

		assert.Equal(t, "$123.99", p.Price)
		assert.Equal(t, synthetic.Thumbnail("gadget"), p.Thumbnail)
		assert.Equal(t, 4.2, *p.Rating)
		assert.Equal(t, 77, *p.Reviews)
	})

	t.Run("html snippet stripped when plain snippet is empty", func(t *testing.T) {
		item := domain.SearchItem{
			Title:       "Tablet",
			Link:        "https://www.amazon.com/dp/TAB",
			HTMLSnippet: "<b>Great</b> tablet for <i>$199.99</i>",
		}

		p := MapSearchItem(item, "tablet", stubFiller{})

		assert.Equal(t, "Great tablet for $199.99", p.Description)
		assert.Equal(t, "$199.99", p.Price)
	})
}

func TestPagemapRating(t *testing.T) {
	tests := []struct {
		name    string
		pagemap string
		want    float64
		wantOK  bool
	}{
		{"numeric value", `{"aggregaterating":[{"ratingvalue":4.5}]}`, 4.5, true},
		{"string value", `{"aggregaterating":[{"ratingvalue":"3.9"}]}`, 3.9, true},
		{"ten point scale", `{"aggregaterating":[{"ratingvalue":"8","bestrating":"10"}]}`, 4.0, true},
		{"out of range", `{"aggregaterating":[{"ratingvalue":"9"}]}`, 0, false},
		{"missing", `{"cse_image":[{"src":"x"}]}`, 0, false},
		{"empty string", `{"aggregaterating":[{"ratingvalue":""}]}`, 0, false},
		{"prose value", `{"aggregaterating":[{"ratingvalue":"4.5 out of 5 stars"}]}`, 0, false},
		{"not a number", `{"aggregaterating":[{"ratingvalue":"NaN"}]}`, 0, false},
		{"unparseable best rating is ignored", `{"aggregaterating":[{"ratingvalue":"4.2","bestrating":"five"}]}`, 4.2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pagemapRating(domain.SearchItem{Pagemap: json.RawMessage(tt.pagemap)})
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPagemapReviews(t *testing.T) {
	tests := []struct {
		name    string
		pagemap string
		want    int
		wantOK  bool
	}{
		{"rating count", `{"aggregaterating":[{"ratingcount":"88"}]}`, 88, true},
		{"review count wins", `{"aggregaterating":[{"reviewcount":12,"ratingcount":"88"}]}`, 12, true},
		{"thousands separator", `{"aggregaterating":[{"reviewcount":"1,234"}]}`, 1234, true},
		{"prose falls through to rating count", `{"aggregaterating":[{"reviewcount":"many reviews","ratingcount":"40"}]}`, 40, true},
		{"prose only", `{"aggregaterating":[{"reviewcount":"1.2k reviews"}]}`, 0, false},
		{"fractional", `{"aggregaterating":[{"reviewcount":"3.5"}]}`, 0, false},
		{"negative", `{"aggregaterating":[{"reviewcount":-4}]}`, 0, false},
		{"missing", `{"cse_image":[{"src":"x"}]}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pagemapReviews(domain.SearchItem{Pagemap: json.RawMessage(tt.pagemap)})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := pagemapReviews(domain.SearchItem{})
	assert.False(t, ok)
}

func TestMapSearchItem_UnparseableRatingIsSynthesized(t *testing.T) {
	item := domain.SearchItem{
		Title:   "Sony WH-1000XM5",
		Link:    "https://www.amazon.com/dp/B09XS7JWHH",
		Snippet: "Noise canceling headphones for $348.00",
		Pagemap: json.RawMessage(`{"aggregaterating":[{"ratingvalue":"4.5 out of 5 stars","reviewcount":"lots"}]}`),
	}

	p := MapSearchItem(item, "headphones", stubFiller{})

	require.NotNil(t, p.Rating)
	require.NotNil(t, p.Reviews)
	assert.Equal(t, 4.2, *p.Rating)
	assert.Equal(t, 77, *p.Reviews)
}

func TestMapDetailItem(t *testing.T) {
	id := "https://www.bestbuy.com/site/samsung-galaxy-s24/6569.p"
	item := domain.SearchItem{
		Title:   "Samsung Galaxy S24 Ultra 256GB - Best Buy",
		Link:    id,
		Snippet: "Galaxy AI is here. Titanium frame with S Pen. Now $1,299 at Best Buy",
		Pagemap: json.RawMessage(`{
			"cse_image": [{"src": "https://pisces.bbystatic.com/s24.jpg"}],
			"cse_thumbnail": [{"src": "https://encrypted-tbn0.gstatic.com/s24-thumb.jpg"}]
		}`),
	}

	p := MapDetailItem(id, item)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Samsung Galaxy S24 Ultra 256GB", p.Name)
	assert.Equal(t, "$1,299", p.Price)
	assert.Equal(t, "www.bestbuy.com", p.Source)
	assert.Equal(t, domain.Specifications{
		"Brand":        "Samsung",
		"Model":        "Galaxy S24 Ultra",
		"Product URL":  id,
		"Seller":       "www.bestbuy.com",
		"Condition":    "New",
		"Availability": "In Stock",
	}, p.Specifications)
	assert.Equal(t, []string{"Galaxy AI is here", "Titanium frame with S Pen", "Now $1,299 at Best Buy"}, p.Features)
	assert.Equal(t, []string{
		"https://pisces.bbystatic.com/s24.jpg",
		"https://encrypted-tbn0.gstatic.com/s24-thumb.jpg",
		galleryPlaceholder,
		galleryPlaceholder,
		galleryPlaceholder,
	}, p.Images)
	assert.Nil(t, p.Rating)
}

func TestMapDetailItem_NoMetadata(t *testing.T) {
	p := MapDetailItem("some-product-key", domain.SearchItem{
		Title: "Widget",
		Link:  "https://shop.example.com/widget",
	})

	assert.Equal(t, domain.PriceNotAvailable, p.Price)
	assert.Equal(t, detailThumbnailPlaceholder, p.Thumbnail)
	assert.Equal(t, "shop.example.com", p.Source)
	assert.Len(t, p.Images, domain.GalleryImageCount)
	assert.Equal(t, extract.BrandNotSpecified, p.Specifications["Brand"])
}

func TestGallery_TruncatesToFive(t *testing.T) {
	item := domain.SearchItem{Pagemap: json.RawMessage(`{
		"cse_image": [{"src": "main"}],
		"cse_thumbnail": [{"src":"t1"},{"src":"t2"},{"src":"t3"},{"src":"t4"},{"src":"t5"}]
	}`)}

	assert.Equal(t, []string{"main", "t1", "t2", "t3", "t4"}, gallery(item))
}
