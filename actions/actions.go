// Package actions implements the validated create, read, update and delete
// operations behind the site and its back office. Every operation returns a
// Result envelope instead of an error.
package actions

import (
	"log/slog"

	"gyangroup/catalog"
	"gyangroup/store"

	"github.com/go-playground/validator/v10"
)

// Revalidator drops cached renders of the given page paths.
type Revalidator interface {
	Revalidate(paths ...string)
}

type nopRevalidator struct{}

func (nopRevalidator) Revalidate(...string) {}

// Pages whose cached renders depend on each entity.
var (
	blogPages     = []string{"/admin/blogs", "/blogs"}
	productPages  = []string{"/admin/products", "/products"}
	categoryPages = []string{"/admin/categories", "/categories", "/products", "/admin/products"}
	inquiryPages  = []string{"/admin/inquiries"}
)

type Actions struct {
	store       *store.Store
	resolver    *catalog.Resolver
	revalidator Revalidator
	validate    *validator.Validate
	logger      *slog.Logger
}

// Option configures Actions.
type Option func(*Actions)

// WithFallback replaces the category name heuristic used when a category slug
// has no exact match. Passing nil disables fuzzy matching.
func WithFallback(f catalog.Fallback) Option {
	return func(a *Actions) {
		a.resolver = catalog.NewResolver(a.store, a.store, f, a.logger)
	}
}

func New(s *store.Store, rv Revalidator, logger *slog.Logger, opts ...Option) *Actions {
	if rv == nil {
		rv = nopRevalidator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &Actions{
		store:       s,
		revalidator: rv,
		validate:    newValidator(),
		logger:      logger,
	}
	a.resolver = catalog.NewResolver(s, s, catalog.NameHeuristic{Store: s}, logger)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListQuery is the pagination accepted by list actions.
type ListQuery struct {
	Limit  int `json:"limit" validate:"min=0,max=500"`
	Offset int `json:"offset" validate:"min=0"`
}

func (q ListQuery) options() store.ListOptions {
	return store.ListOptions{Limit: q.Limit, Offset: q.Offset}
}
