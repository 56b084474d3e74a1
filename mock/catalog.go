package mock

import (
	"context"

	"github.com/fwojciec/ragcrawl"
)

var _ ragcrawl.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of ragcrawl.CatalogService.
type CatalogService struct {
	CreateRunFn   func(ctx context.Context, run *ragcrawl.Run) error
	CreateVisitFn func(ctx context.Context, visit *ragcrawl.Visit) error
	FindRunByIDFn func(ctx context.Context, id string) (*ragcrawl.Run, error)
	FindVisitsFn  func(ctx context.Context, filter ragcrawl.VisitFilter) ([]*ragcrawl.Visit, error)
}

func (s *CatalogService) CreateRun(ctx context.Context, run *ragcrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *CatalogService) CreateVisit(ctx context.Context, visit *ragcrawl.Visit) error {
	return s.CreateVisitFn(ctx, visit)
}

func (s *CatalogService) FindRunByID(ctx context.Context, id string) (*ragcrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *CatalogService) FindVisits(ctx context.Context, filter ragcrawl.VisitFilter) ([]*ragcrawl.Visit, error) {
	return s.FindVisitsFn(ctx, filter)
}
