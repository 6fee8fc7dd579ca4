package websearch

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/extract"
	"github.com/shopscout/backend/internal/synthetic"
)

// Pagemap paths in the Custom Search response
const (
	pathImage       = "cse_image.0.src"
	pathThumbnails  = "cse_thumbnail.#.src"
	pathRatingValue = "aggregaterating.0.ratingvalue"
	pathBestRating  = "aggregaterating.0.bestrating"
	pathReviewCount = "aggregaterating.0.reviewcount"
	pathRatingCount = "aggregaterating.0.ratingcount"
)

const (
	detailThumbnailPlaceholder = "https://via.placeholder.com/150"
	galleryPlaceholder         = "https://via.placeholder.com/800"
	maxRating                  = 5.0
)

// Filler supplies values for fields the search result did not carry
type Filler interface {
	Price(category string) string
	Rating() float64
	Reviews() int
}

// MapSearchItem converts one search result into a Product for a result list.
// Missing price, rating and review data is synthesized with fill.
func MapSearchItem(item domain.SearchItem, query string, fill Filler) domain.Product {
	snippet := snippetText(item)

	thumbnail := pagemapImage(item)
	if thumbnail == "" {
		thumbnail = synthetic.Thumbnail(query)
	}

	price, ok := extract.Price(snippet)
	if !ok {
		price, ok = extract.Price(item.Title)
	}
	if !ok {
		price = fill.Price(query)
	}

	rating, ok := pagemapRating(item)
	if !ok {
		rating = fill.Rating()
	}
	reviews, ok := pagemapReviews(item)
	if !ok {
		reviews = fill.Reviews()
	}

	return domain.Product{
		ID:          item.Link,
		Name:        extract.CleanTitle(item.Title),
		Thumbnail:   thumbnail,
		Price:       price,
		Source:      sourceName(item, item.Link),
		Description: snippet,
		Rating:      domain.Float64(rating),
		Reviews:     domain.Int(reviews),
	}
}

// MapDetailItem converts the top search hit for id into a full detail record
func MapDetailItem(id string, item domain.SearchItem) domain.Product {
	snippet := snippetText(item)
	seller := sourceName(item, id)

	thumbnail := pagemapImage(item)
	if thumbnail == "" {
		thumbnail = detailThumbnailPlaceholder
	}

	price, ok := extract.Price(snippet)
	if !ok {
		price = domain.PriceNotAvailable
	}

	name := extract.CleanTitle(item.Title)
	if name == "" {
		name = strings.TrimSpace(item.Title)
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Thumbnail:   thumbnail,
		Price:       price,
		Source:      seller,
		Description: snippet,
		Specifications: domain.Specifications{
			"Brand":        extract.Brand(name),
			"Model":        extract.Model(name),
			"Product URL":  id,
			"Seller":       seller,
			"Condition":    "New",
			"Availability": "In Stock",
		},
		Features: extract.Features(snippet),
		Images:   gallery(item),
	}
	if rating, ok := pagemapRating(item); ok {
		p.Rating = domain.Float64(rating)
	}
	if reviews, ok := pagemapReviews(item); ok {
		p.Reviews = domain.Int(reviews)
	}
	return p
}

// gallery assembles exactly five images: the main image, then thumbnails,
// then placeholders.
func gallery(item domain.SearchItem) []string {
	images := make([]string, 0, domain.GalleryImageCount)
	if img := pagemapImage(item); img != "" {
		images = append(images, img)
	} else {
		images = append(images, galleryPlaceholder)
	}
	if len(item.Pagemap) > 0 {
		for _, thumb := range gjson.GetBytes(item.Pagemap, pathThumbnails).Array() {
			if src := strings.TrimSpace(thumb.String()); src != "" {
				images = append(images, src)
			}
		}
	}
	for len(images) < domain.GalleryImageCount {
		images = append(images, galleryPlaceholder)
	}
	return images[:domain.GalleryImageCount]
}

func pagemapImage(item domain.SearchItem) string {
	if len(item.Pagemap) == 0 {
		return ""
	}
	return strings.TrimSpace(gjson.GetBytes(item.Pagemap, pathImage).String())
}

// pagemapRating reads the aggregate rating, rescaling to five stars when the
// page declares a different best rating.
func pagemapRating(item domain.SearchItem) (float64, bool) {
	if len(item.Pagemap) == 0 {
		return 0, false
	}
	rating, ok := pagemapNumber(gjson.GetBytes(item.Pagemap, pathRatingValue))
	if !ok {
		return 0, false
	}
	if best, ok := pagemapNumber(gjson.GetBytes(item.Pagemap, pathBestRating)); ok && best > 0 && best != maxRating {
		rating = rating * maxRating / best
	}
	if rating < 0 || rating > maxRating || math.IsNaN(rating) {
		return 0, false
	}
	return math.Round(rating*10) / 10, true
}

// pagemapReviews reads reviewcount, then ratingcount. Counts must be whole
// non-negative numbers.
func pagemapReviews(item domain.SearchItem) (int, bool) {
	if len(item.Pagemap) == 0 {
		return 0, false
	}
	for _, path := range []string{pathReviewCount, pathRatingCount} {
		count, ok := pagemapNumber(gjson.GetBytes(item.Pagemap, path))
		if !ok || count < 0 || count != math.Trunc(count) || count > math.MaxInt32 {
			continue
		}
		return int(count), true
	}
	return 0, false
}

// pagemapNumber reads a numeric pagemap field. Pagemap values are usually
// strings; they must parse completely once thousands separators are removed.
func pagemapNumber(value gjson.Result) (float64, bool) {
	var n float64
	switch value.Type {
	case gjson.Number:
		n = value.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value.Str), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// snippetText prefers the plain snippet and falls back to stripping the
// HTML variant.
func snippetText(item domain.SearchItem) string {
	if s := strings.TrimSpace(item.Snippet); s != "" {
		return s
	}
	if item.HTMLSnippet == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.HTMLSnippet))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func sourceName(item domain.SearchItem, rawURL string) string {
	if host := extract.Hostname(rawURL); host != "" {
		return host
	}
	if host := extract.Hostname(item.Link); host != "" {
		return host
	}
	return item.DisplayLink
}
