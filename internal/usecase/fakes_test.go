package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/synthetic"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestGenerator() *synthetic.Generator {
	return synthetic.New(
		synthetic.WithSeed(42),
		synthetic.WithClock(func() time.Time { return fixedNow }),
	)
}

// fakeSource is a scripted domain.Source
type fakeSource struct {
	name     string
	products []domain.Product
	detail   *domain.Product
	err      error
	panics   bool
	delay    time.Duration

	searchCalls atomic.Int32
	detailCalls atomic.Int32
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) Search(ctx context.Context, query string) ([]domain.Product, error) {
	f.searchCalls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panics {
		panic("search exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeSource) GetDetails(ctx context.Context, id string) (*domain.Product, error) {
	f.detailCalls.Add(1)
	if f.panics {
		panic("details exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.detail == nil {
		return nil, domain.ErrProductNotFound
	}
	return f.detail.Clone(), nil
}

func product(id, name string) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   name,
		Price:  "$10.00",
		Source: "test",
	}
}

func products(prefix string, n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = product(fmt.Sprintf("%s-%d", prefix, i), fmt.Sprintf("%s item %d", prefix, i))
	}
	return out
}
