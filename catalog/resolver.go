// Package catalog resolves URL category slugs to categories and their
// products.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"gyangroup/models"
	"gyangroup/store"
)

// CategoryStore looks up a category by its exact slug.
type CategoryStore interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// ProductStore lists the products of one category, newest first.
type ProductStore interface {
	ProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
}

// Fallback finds a category for a slug that has no exact match. It returns
// (nil, nil) when nothing qualifies.
type Fallback interface {
	Match(ctx context.Context, slug string) (*models.Category, error)
}

// Resolution is the outcome of resolving a category slug. Category is nil
// when no category matched; Products is never nil.
type Resolution struct {
	Category *models.Category `json:"category,omitempty"`
	Products []models.Product `json:"products"`
}

type Resolver struct {
	categories CategoryStore
	products   ProductStore
	fallback   Fallback
	logger     *slog.Logger
}

// NewResolver wires a resolver. A nil fallback disables fuzzy matching.
func NewResolver(categories CategoryStore, products ProductStore, fallback Fallback, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		categories: categories,
		products:   products,
		fallback:   fallback,
		logger:     logger,
	}
}

// ProductsForCategorySlug looks the slug up exactly, then through the
// fallback, and returns the category's products. An unknown slug is not an
// error.
func (r *Resolver) ProductsForCategorySlug(ctx context.Context, slug string) (Resolution, error) {
	empty := Resolution{Products: []models.Product{}}

	category, err := r.resolve(ctx, slug)
	if err != nil {
		return empty, err
	}
	if category == nil {
		r.logger.Debug("category slug unresolved", "slug", slug)
		return empty, nil
	}

	products, err := r.products.ProductsByCategory(ctx, category.ID)
	if err != nil {
		return empty, err
	}
	return Resolution{Category: category, Products: products}, nil
}

func (r *Resolver) resolve(ctx context.Context, slug string) (*models.Category, error) {
	category, err := r.categories.CategoryBySlug(ctx, slug)
	switch {
	case err == nil:
		return category, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	case r.fallback == nil:
		return nil, nil
	}

	category, err = r.fallback.Match(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category != nil {
		r.logger.Debug("category slug resolved by fallback", "slug", slug, "category", category.Slug)
	}
	return category, nil
}
