// Package extract pulls structured product fields out of unstructured
// titles and snippets returned by search backends.
package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// BrandNotSpecified is returned by Brand when no known brand is present
const BrandNotSpecified = "Brand not specified"

const (
	maxFeatures      = 5
	minFeatureLength = 10
	modelTokens      = 3
)

// Package-level compiled regex patterns
var (
	// "$1,299.99", "$49", "1299 USD", "49.99 dollars"
	pricePattern = regexp.MustCompile(`(?i)\$\d+(?:,\d{3})*(?:\.\d{2})?|\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:USD|dollars)\b`)

	priceUnitPattern = regexp.MustCompile(`(?i)\s*(?:USD|dollars)$`)

	sentenceTerminators = regexp.MustCompile(`[.!?]`)

	// Retailer decorations appended to result titles
	titleSuffixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*-\s*Amazon\.com$`),
		regexp.MustCompile(`\s*-\s*Best Buy$`),
		regexp.MustCompile(`\s*-\s*Walmart\.com$`),
		regexp.MustCompile(`\s*\|.*$`),
	}

	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace       = regexp.MustCompile(`\s+`)
)

// knownBrands is checked in order; the first hit wins
var knownBrands = []string{
	"Apple", "Samsung", "Sony", "LG", "Google",
	"Microsoft", "Dell", "HP", "Lenovo", "Asus",
}

// brandPatterns match knownBrands case-insensitively on the original text so
// match offsets stay valid for slicing it.
var brandPatterns = compileBrandPatterns(knownBrands)

func compileBrandPatterns(brands []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(brands))
	for i, brand := range brands {
		patterns[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(brand))
	}
	return patterns
}

// findBrand returns the first vocabulary brand in title with its byte
// offsets, or -1 offsets when none is present.
func findBrand(title string) (string, int, int) {
	for i, pattern := range brandPatterns {
		if loc := pattern.FindStringIndex(title); loc != nil {
			return knownBrands[i], loc[0], loc[1]
		}
	}
	return BrandNotSpecified, -1, -1
}

// Price returns the first currency-like substring of text normalized to a
// leading "$". The boolean is false when text holds no price.
func Price(text string) (string, bool) {
	match := pricePattern.FindString(text)
	if match == "" {
		return "", false
	}
	price := strings.TrimSpace(priceUnitPattern.ReplaceAllString(match, ""))
	if !strings.HasPrefix(price, "$") {
		price = "$" + price
	}
	return price, true
}

// Brand returns the first vocabulary brand contained in title, compared
// case-insensitively, or BrandNotSpecified.
func Brand(title string) string {
	brand, _, _ := findBrand(title)
	return brand
}

// Model strips the detected brand from title and returns the first three
// whitespace-delimited tokens of what is left.
func Model(title string) string {
	remainder := title
	if _, start, end := findBrand(title); start >= 0 {
		remainder = title[:start] + " " + title[end:]
	}
	tokens := strings.Fields(remainder)
	if len(tokens) > modelTokens {
		tokens = tokens[:modelTokens]
	}
	return strings.Join(tokens, " ")
}

// Features splits text into sentences and keeps up to five of the ones that
// are at least ten characters long, in their original order.
func Features(text string) []string {
	features := make([]string, 0, maxFeatures)
	for _, segment := range sentenceTerminators.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if utf8.RuneCountInString(segment) < minFeatureLength {
			continue
		}
		features = append(features, segment)
		if len(features) == maxFeatures {
			break
		}
	}
	return features
}

// CleanTitle removes retailer suffixes such as "- Amazon.com" and "| Store".
func CleanTitle(title string) string {
	for _, pattern := range titleSuffixPatterns {
		title = pattern.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
}

// Hostname returns the host of rawURL without a port, or "" when rawURL is
// not an absolute URL.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Slug lowercases text and joins its alphanumeric runs with dashes.
func Slug(text string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}
