package actions

import (
	"context"
	"errors"
	"strings"

	"gyangroup/models"
	"gyangroup/store"
)

const entityProduct = "Product"

type ProductInput struct {
	Title            string `json:"title" validate:"required"`
	Slug             string `json:"slug" validate:"required,slug"`
	Image            string `json:"image" validate:"required,url"`
	CategoryID       string `json:"categoryId" validate:"required"`
	ProductNumber    string `json:"productNumber" validate:"required"`
	CasNumber        string `json:"casNumber" validate:"required"`
	MolecularWeight  string `json:"molecularWeight" validate:"required"`
	MolecularFormula string `json:"molecularFormula" validate:"required"`
	ProductStatus    string `json:"productStatus" validate:"required"`
	Application      string `json:"application" validate:"required"`
	Specifications   string `json:"specifications" validate:"required"`
}

func (in *ProductInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = models.Slugify(in.Title)
	}
	in.Image = strings.TrimSpace(in.Image)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ProductNumber = strings.TrimSpace(in.ProductNumber)
	in.CasNumber = strings.TrimSpace(in.CasNumber)
}

func (in ProductInput) model(id string) *models.Product {
	return &models.Product{
		ID:               id,
		Slug:             in.Slug,
		Title:            in.Title,
		Image:            in.Image,
		CategoryID:       in.CategoryID,
		ProductNumber:    in.ProductNumber,
		CasNumber:        in.CasNumber,
		MolecularWeight:  in.MolecularWeight,
		MolecularFormula: in.MolecularFormula,
		ProductStatus:    in.ProductStatus,
		Application:      in.Application,
		Specifications:   in.Specifications,
	}
}

// ProductQuery filters ListProducts. Skip is the number of rows to skip.
type ProductQuery struct {
	CategoryID string `json:"categoryId"`
	Limit      int    `json:"limit" validate:"min=0,max=500"`
	Skip       int    `json:"skip" validate:"min=0"`
}

// CategoryListing is the result of ProductsByCategorySlug: the products in
// Data plus the category the slug resolved to, if any.
type CategoryListing struct {
	Result[[]models.Product]
	Category *models.Category `json:"category,omitempty"`
}

var missingCategory = []Issue{{Field: "categoryId", Message: "Category does not exist"}}

func (a *Actions) UpsertProduct(ctx context.Context, in ProductInput, id string) Result[*models.Product] {
	in.normalize()
	if issues := a.check(in); issues != nil {
		return invalid[*models.Product](issues)
	}

	if _, err := a.store.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid[*models.Product](missingCategory)
		}
		return fromStoreError[*models.Product](a.logger, "upsert product", entityCategory, "", err)
	}

	p := in.model(id)
	var err error
	message := "Product created successfully"
	if id == "" {
		err = a.store.CreateProduct(ctx, p)
	} else {
		err = a.store.UpdateProduct(ctx, p)
		message = "Product updated successfully"
	}
	if errors.Is(err, store.ErrForeignKey) {
		return invalid[*models.Product](missingCategory)
	}
	if err != nil {
		return fromStoreError[*models.Product](a.logger, "upsert product", entityProduct, "slug", err)
	}

	a.revalidator.Revalidate(productPages...)
	return ok(p, message)
}

func (a *Actions) GetProductByID(ctx context.Context, id string) Result[*models.Product] {
	p, err := a.store.GetProduct(ctx, id)
	if err != nil {
		return fromStoreError[*models.Product](a.logger, "get product", entityProduct, "", err)
	}
	return ok(p, "")
}

func (a *Actions) GetProductBySlug(ctx context.Context, slug string) Result[*models.Product] {
	p, err := a.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return fromStoreError[*models.Product](a.logger, "get product by slug", entityProduct, "", err)
	}
	return ok(p, "")
}

// ProductsByCategorySlug lists the products of the category a URL slug
// resolves to. An unresolved slug yields an empty successful listing.
func (a *Actions) ProductsByCategorySlug(ctx context.Context, slug string) CategoryListing {
	res, err := a.resolver.ProductsForCategorySlug(ctx, slug)
	if err != nil {
		a.logger.Error("products by category slug failed", "slug", slug, "error", err)
		return CategoryListing{Result: Result[[]models.Product]{
			Kind:  KindDataAccess,
			Error: err.Error(),
			Data:  res.Products,
		}}
	}
	return CategoryListing{
		Result:   okCount(res.Products, int64(len(res.Products))),
		Category: res.Category,
	}
}

// ListProducts returns one page of products, newest first. Count is the
// total across all pages.
func (a *Actions) ListProducts(ctx context.Context, q ProductQuery) Result[[]models.Product] {
	empty := []models.Product{}
	if issues := a.check(q); issues != nil {
		return withData(invalid[[]models.Product](issues), empty)
	}

	products, total, err := a.store.ListProducts(ctx, store.ProductFilter{
		CategoryID:  q.CategoryID,
		ListOptions: store.ListOptions{Limit: q.Limit, Offset: q.Skip},
	})
	if err != nil {
		return withData(fromStoreError[[]models.Product](a.logger, "list products", entityProduct, "", err), empty)
	}
	return okCount(products, total)
}

// SearchProducts matches title, product number or CAS number, falling back
// to category names. A blank query matches nothing.
func (a *Actions) SearchProducts(ctx context.Context, query string) Result[[]models.Product] {
	query = strings.TrimSpace(query)
	if query == "" {
		return okCount([]models.Product{}, 0)
	}

	products, err := a.store.SearchProducts(ctx, query)
	if err != nil {
		return withData(fromStoreError[[]models.Product](a.logger, "search products", entityProduct, "", err), []models.Product{})
	}
	return okCount(products, int64(len(products)))
}

func (a *Actions) DeleteProduct(ctx context.Context, id string) Result[any] {
	if err := a.store.DeleteProduct(ctx, id); err != nil {
		return fromStoreError[any](a.logger, "delete product", entityProduct, "", err)
	}
	a.revalidator.Revalidate(productPages...)
	return ok[any](nil, "Product deleted successfully")
}
