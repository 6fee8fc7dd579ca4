package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/synthetic"
)

// Names containing any of these are generic filler and are dropped whenever
// other results remain.
var genericNamePatterns = []string{"Premium Version", "Product -"}

// SearchServiceConfig holds limits for the aggregation pipeline
type SearchServiceConfig struct {
	MaxResults    int
	PadCount      int
	FallbackCount int
	CacheTTL      time.Duration
}

// SearchService fans a query out to every registered source and merges the
// results into one ranked, deduplicated list.
type SearchService struct {
	sources   []domain.Source
	generator *synthetic.Generator
	cache     domain.CacheRepository
	config    SearchServiceConfig
	log       zerolog.Logger
}

// NewSearchService creates a search service. Sources are queried
// concurrently but their results keep the order given here. cache may be nil.
func NewSearchService(
	sources []domain.Source,
	generator *synthetic.Generator,
	cache domain.CacheRepository,
	config SearchServiceConfig,
	log zerolog.Logger,
) *SearchService {
	if config.MaxResults <= 0 {
		config.MaxResults = 20
	}
	if config.PadCount < 0 {
		config.PadCount = 0
	}
	if config.FallbackCount <= 0 {
		config.FallbackCount = 10
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 10 * time.Minute
	}
	if generator == nil {
		generator = synthetic.New()
	}

	return &SearchService{
		sources:   sources,
		generator: generator,
		cache:     cache,
		config:    config,
		log:       log.With().Str("component", "search").Logger(),
	}
}

// Search returns at most MaxResults products for query. It never fails: a
// blank query yields an empty list and anything else yields at least the
// synthetic fallback batch.
// Flow: check cache -> fan out -> pad -> dedupe -> filter -> truncate -> cache
func (s *SearchService) Search(ctx context.Context, query string) (products []domain.Product) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Product{}
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("query", query).Msg("search pipeline panicked, serving fallback batch")
			products = s.fallback(query)
		}
	}()

	key := searchCacheKey(query)
	if cached, ok := s.getFromCache(ctx, key); ok {
		s.log.Debug().Str("query", query).Int("results", len(cached)).Msg("cache hit")
		return cached
	}

	combined := s.collect(ctx, query)
	if len(combined) == 0 {
		s.log.Info().Str("query", query).Msg("no source returned results, serving fallback batch")
		return s.fallback(query)
	}

	combined = append(combined, s.generator.Batch(query, s.config.PadCount)...)
	results := filterGeneric(dedupe(combined))
	if len(results) == 0 {
		return s.fallback(query)
	}
	results = s.truncate(results)

	s.setInCache(ctx, key, results)
	return results
}

// collect queries every source concurrently. A failing or panicking source
// contributes nothing and never affects the others.
func (s *SearchService) collect(ctx context.Context, query string) []domain.Product {
	perSource := make([][]domain.Product, len(s.sources))

	var g errgroup.Group
	for i, source := range s.sources {
		g.Go(func() error {
			perSource[i] = s.searchSource(ctx, source, query)
			return nil
		})
	}
	_ = g.Wait()

	var combined []domain.Product
	for _, results := range perSource {
		combined = append(combined, results...)
	}
	return combined
}

func (s *SearchService) searchSource(ctx context.Context, source domain.Source, query string) (products []domain.Product) {
	log := s.log.With().Str("source", source.Name()).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("source panicked")
			products = nil
		}
	}()

	start := time.Now()
	results, err := source.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("source search failed")
		return nil
	}

	valid := make([]domain.Product, 0, len(results))
	for _, p := range results {
		if err := p.Validate(); err != nil {
			log.Debug().Err(err).Msg("dropping invalid product")
			continue
		}
		valid = append(valid, p)
	}

	log.Debug().Int("results", len(valid)).Dur("took", time.Since(start)).Msg("source search completed")
	return valid
}

func (s *SearchService) fallback(query string) []domain.Product {
	return s.truncate(s.generator.Batch(query, s.config.FallbackCount))
}

func (s *SearchService) truncate(products []domain.Product) []domain.Product {
	if len(products) > s.config.MaxResults {
		return products[:s.config.MaxResults]
	}
	return products
}

// dedupe keeps the first product for each exact name and each id. A product
// skipped for either key does not reserve the other.
func dedupe(products []domain.Product) []domain.Product {
	seenNames := make(map[string]struct{}, len(products))
	seenIDs := make(map[string]struct{}, len(products))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		_, nameSeen := seenNames[p.Name]
		_, idSeen := seenIDs[p.ID]
		if nameSeen || idSeen {
			continue
		}
		seenNames[p.Name] = struct{}{}
		seenIDs[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func filterGeneric(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if isGenericName(p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isGenericName(name string) bool {
	for _, pattern := range genericNamePatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// searchCacheKey creates a normalized cache key.
// Format: "search:{lowercased query with collapsed whitespace}"
func searchCacheKey(query string) string {
	return "search:" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func (s *SearchService) getFromCache(ctx context.Context, key string) ([]domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return products, true
}

func (s *SearchService) setInCache(ctx context.Context, key string, products []domain.Product) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode search results for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.config.CacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache search results")
	}
}
