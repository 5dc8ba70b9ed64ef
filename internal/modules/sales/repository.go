package sales

import "context"

// Repository defines read access to submitted orders.
type Repository interface {
	// List returns every order in the collection. There is no filter or
	// pagination; the admin view renders the whole set.
	List(ctx context.Context) ([]*Order, error)
}
