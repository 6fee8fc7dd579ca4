package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscout/backend/internal/domain"
)

func TestDefaults(t *testing.T) {
	catalogs := Defaults(0, zerolog.Nop())

	require.Len(t, catalogs, 4)
	names := make([]string, len(catalogs))
	for i, c := range catalogs {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"catalog:amazon", "catalog:ebay", "catalog:walmart", "catalog:store"}, names)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	amazon := New("amazon", amazonListings, 0, zerolog.Nop())

	results, err := amazon.Search(context.Background(), "IPHONE")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "amz-iphone15", results[0].ID)
	assert.Equal(t, "Amazon", results[0].Source)
	assert.Len(t, results[0].Images, 8)
}

func TestSearch_NoMatch(t *testing.T) {
	walmart := New("walmart", walmartListings, 0, zerolog.Nop())

	results, err := walmart.Search(context.Background(), "toaster")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ResultsAreCopies(t *testing.T) {
	store := New("store", storeListings, 0, zerolog.Nop())

	first, err := store.Search(context.Background(), "macbook")
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Name = "mutated"
	first[0].Features[0] = "mutated"
	first[0].Specifications["Chip"] = "mutated"

	second, err := store.Search(context.Background(), "macbook")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, `MacBook Pro 16"`, second[0].Name)
	assert.Equal(t, "Up to 22 hours battery life", second[0].Features[0])
	assert.Equal(t, "M2 Pro or M2 Max", second[0].Specifications["Chip"])
}

func TestGetDetails_AcrossCatalogs(t *testing.T) {
	amazon := New("amazon", amazonListings, 0, zerolog.Nop())

	p, err := amazon.GetDetails(context.Background(), "wm-oneplus-9")

	require.NoError(t, err)
	assert.Equal(t, "OnePlus 9 Pro", p.Name)
	assert.Equal(t, "Walmart", p.Source)
}

func TestGetDetails_Idempotent(t *testing.T) {
	store := New("store", storeListings, 0, zerolog.Nop())

	a, err := store.GetDetails(context.Background(), "iphone-15-pro")
	require.NoError(t, err)
	b, err := store.GetDetails(context.Background(), "iphone-15-pro")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
	assert.Len(t, a.Images, domain.GalleryImageCount)
}

func TestGetDetails_NotFound(t *testing.T) {
	ebay := New("ebay", ebayListings, 0, zerolog.Nop())

	_, err := ebay.GetDetails(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSimulatedLatency_RespectsCancellation(t *testing.T) {
	slow := New("amazon", amazonListings, time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := slow.Search(ctx, "iphone")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("ebay-pixel-7")
	require.True(t, ok)
	assert.Equal(t, "Google Pixel 7 Pro", p.Name)
	assert.Equal(t, "https://via.placeholder.com/800?text=eBay+Pixel+Image+1", p.Images[0])

	_, ok = Lookup("missing")
	assert.False(t, ok)
}
