package store

import (
	"context"

	"gyangroup/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityProduct = "product"

var productColumns = []string{
	"slug", "title", "image", "category_id", "product_number", "cas_number",
	"molecular_weight", "molecular_formula", "product_status", "application",
	"specifications", "updated_at",
}

// ProductFilter narrows ListProducts. Empty CategoryID means all categories.
type ProductFilter struct {
	CategoryID string
	ListOptions
}

func (s *Store) withCategory(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category")
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	if err != nil {
		return wrap("CreateProduct", entityProduct, "", err)
	}
	return wrap("CreateProduct", entityProduct, p.ID, s.withCategory(ctx).Take(p, "id = ?", p.ID).Error)
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", p.ID).
		Select(productColumns).
		Omit(clause.Associations).
		Updates(p)
	if res.Error != nil {
		return wrap("UpdateProduct", entityProduct, p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("UpdateProduct", entityProduct, p.ID, ErrNotFound)
	}
	p.Category = nil
	return wrap("UpdateProduct", entityProduct, p.ID, s.withCategory(ctx).Take(p, "id = ?", p.ID).Error)
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.withCategory(ctx).Take(&p, "id = ?", id).Error; err != nil {
		return nil, wrap("GetProduct", entityProduct, id, err)
	}
	return &p, nil
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := s.withCategory(ctx).Take(&p, "slug = ?", slug).Error; err != nil {
		return nil, wrap("GetProductBySlug", entityProduct, slug, err)
	}
	return &p, nil
}

// ProductsByCategory returns the category's products, newest first.
func (s *Store) ProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.withCategory(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, wrap("ProductsByCategory", entityProduct, categoryID, err)
	}
	return products, nil
}

// ListProducts returns one page of products, newest first, and the total
// number of products matching the filter.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != "" {
		base = base.Where("category_id = ?", f.CategoryID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, wrap("ListProducts", entityProduct, "", err)
	}

	products := []models.Product{}
	q := f.apply(base.Session(&gorm.Session{}).Preload("Category").Order("created_at DESC"))
	if err := q.Find(&products).Error; err != nil {
		return nil, 0, wrap("ListProducts", entityProduct, "", err)
	}
	return products, total, nil
}

// SearchProducts matches the query against title, product number and CAS
// number. When nothing matches it falls back to products whose category name
// matches.
func (s *Store) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	pattern := ContainsPattern(query)
	products := []models.Product{}

	err := s.withCategory(ctx).
		Where(likeAny("title", "product_number", "cas_number"), pattern, pattern, pattern).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		return nil, wrap("SearchProducts", entityProduct, "", err)
	}
	if len(products) > 0 {
		return products, nil
	}

	var categoryIDs []string
	err = s.db.WithContext(ctx).Model(&models.Category{}).
		Where(likeAny("name"), pattern).
		Pluck("id", &categoryIDs).Error
	if err != nil {
		return nil, wrap("SearchProducts", entityCategory, "", err)
	}
	if len(categoryIDs) == 0 {
		return products, nil
	}

	err = s.withCategory(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		return nil, wrap("SearchProducts", entityProduct, "", err)
	}
	return products, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return wrap("DeleteProduct", entityProduct, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("DeleteProduct", entityProduct, id, ErrNotFound)
	}
	return nil
}
