package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/synthetic"
)

// DetailService resolves a product id to a full record by walking a fixed
// chain of sources and finally building a placeholder.
type DetailService struct {
	generator *synthetic.Generator
	chain     []domain.Source
	log       zerolog.Logger
}

// NewDetailService creates a detail resolver. chain is tried in order after
// synthetic ids are handled; nil entries are skipped.
func NewDetailService(generator *synthetic.Generator, chain []domain.Source, log zerolog.Logger) *DetailService {
	if generator == nil {
		generator = synthetic.New()
	}
	sources := make([]domain.Source, 0, len(chain))
	for _, source := range chain {
		if source != nil {
			sources = append(sources, source)
		}
	}
	return &DetailService{
		generator: generator,
		chain:     sources,
		log:       log.With().Str("component", "details").Logger(),
	}
}

// GetDetails always resolves to a product unless id is blank
// (ErrInvalidRequest) or the placeholder itself cannot be built
// (ErrDetailsUnavailable).
func (s *DetailService) GetDetails(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	if tag, ok := strings.CutPrefix(id, domain.GeneratedPrefix); ok {
		p := s.generator.Detail(tag)
		return &p, nil
	}

	for _, source := range s.chain {
		if p, ok := s.fromSource(ctx, source, id); ok {
			return p, nil
		}
	}

	s.log.Info().Str("id", id).Msg("all sources exhausted, serving placeholder")
	return s.placeholder(id)
}

func (s *DetailService) fromSource(ctx context.Context, source domain.Source, id string) (product *domain.Product, ok bool) {
	log := s.log.With().Str("source", source.Name()).Str("id", id).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("source panicked")
			product, ok = nil, false
		}
	}()

	p, err := source.GetDetails(ctx, id)
	if err != nil {
		log.Warn().Err(err).Msg("detail lookup failed")
		return nil, false
	}
	if err := p.Validate(); err != nil {
		log.Warn().Err(err).Msg("detail lookup returned an invalid product")
		return nil, false
	}
	return p, true
}

func (s *DetailService) placeholder(id string) (product *domain.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("id", id).Msg("placeholder construction panicked")
			product, err = nil, fmt.Errorf("%w: %v", domain.ErrDetailsUnavailable, r)
		}
	}()

	p, err := synthetic.Placeholder(id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("cannot build placeholder")
		return nil, err
	}
	return &p, nil
}
