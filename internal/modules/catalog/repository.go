package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Insert(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Delete(ctx context.Context, id string) error
}
