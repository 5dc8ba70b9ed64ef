package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/muzammil1763/admin/internal/modules/media"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)

	// DeleteProduct removes the product's remote assets best-effort,
	// then deletes the record. A failed asset destroy is logged and the
	// sequence continues; a failed record delete aborts.
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	images media.Destroyer
}

func NewService(repo Repository, images media.Destroyer) Service {
	return &service{repo: repo, images: images}
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	return p, nil
}

func validate(p *Product) error {
	if p.ColorName == "" {
		return fmt.Errorf("colorName is required")
	}
	if p.ColorImage == "" || p.ColorImagePublicID == "" {
		return fmt.Errorf("color image is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if p.Category != CategoryMale && p.Category != CategoryFemale {
		return fmt.Errorf("category must be %s or %s", CategoryMale, CategoryFemale)
	}
	for name, list := range map[string][]AssetEntry{
		"fabrics":      p.Fabrics,
		"frontPockets": p.FrontPockets,
		"backPockets":  p.BackPockets,
	} {
		if len(list) == 0 {
			return fmt.Errorf("%s must contain at least one entry", name)
		}
		for _, e := range list {
			if e.URL == "" || e.PublicID == "" {
				return fmt.Errorf("%s contains an entry without an uploaded image", name)
			}
		}
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	// Re-fetch to recover the remote asset ids; the list view does not
	// retain them.
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	// An orphaned remote asset is acceptable; a dangling record is not.
	for _, publicID := range p.PublicIDs() {
		if err := s.images.Destroy(ctx, publicID); err != nil {
			slog.Warn("asset cleanup failed", "productId", id, "publicId", publicID, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
