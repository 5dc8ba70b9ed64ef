package sales

import "context"

// Service defines the sales-view business logic. Orders are read-only
// here; mutation happens on the storefront side.
type Service interface {
	ListOrders(ctx context.Context) ([]*Order, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}
