package actions

import (
	"context"
	"errors"
	"strings"

	"gyangroup/models"
	"gyangroup/store"
)

const entityCategory = "Category"

type CategoryInput struct {
	Name string `json:"name" validate:"min=2"`
	Slug string `json:"slug" validate:"min=2,slug"`
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = models.Slugify(in.Name)
	}
}

func (a *Actions) UpsertCategory(ctx context.Context, in CategoryInput, id string) Result[*models.Category] {
	in.normalize()
	if issues := a.check(in); issues != nil {
		return invalid[*models.Category](issues)
	}

	c := &models.Category{ID: id, Name: in.Name, Slug: in.Slug}
	var err error
	message := "Category created successfully"
	if id == "" {
		err = a.store.CreateCategory(ctx, c)
	} else {
		err = a.store.UpdateCategory(ctx, c)
		message = "Category updated successfully"
	}
	if err != nil {
		field := "slug"
		if errors.Is(err, store.ErrDuplicate) && !a.slugTaken(ctx, in.Slug, id) {
			field = "name"
		}
		return fromStoreError[*models.Category](a.logger, "upsert category", entityCategory, field, err)
	}

	a.revalidator.Revalidate(categoryPages...)
	return ok(c, message)
}

// slugTaken reports whether another category already uses slug.
func (a *Actions) slugTaken(ctx context.Context, slug, id string) bool {
	c, err := a.store.CategoryBySlug(ctx, slug)
	return err == nil && c.ID != id
}

func (a *Actions) GetCategoryByID(ctx context.Context, id string) Result[*models.Category] {
	c, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return fromStoreError[*models.Category](a.logger, "get category", entityCategory, "", err)
	}
	return ok(c, "")
}

// ListCategories returns every category ordered by name.
func (a *Actions) ListCategories(ctx context.Context) Result[[]models.Category] {
	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		return withData(fromStoreError[[]models.Category](a.logger, "list categories", entityCategory, "", err), []models.Category{})
	}
	return okCount(categories, int64(len(categories)))
}

// DeleteCategory removes the category together with its products.
func (a *Actions) DeleteCategory(ctx context.Context, id string) Result[any] {
	if err := a.store.DeleteCategory(ctx, id); err != nil {
		return fromStoreError[any](a.logger, "delete category", entityCategory, "", err)
	}
	a.revalidator.Revalidate(categoryPages...)
	return ok[any](nil, "Category deleted successfully")
}
