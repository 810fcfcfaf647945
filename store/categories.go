package store

import (
	"context"
	"strings"

	"gyangroup/models"

	"gorm.io/gorm"
)

const entityCategory = "category"

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return wrap("CreateCategory", entityCategory, "", s.db.WithContext(ctx).Create(c).Error)
}

// UpdateCategory overwrites name and slug of the row with c.ID and reloads c.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	res := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", c.ID).
		Select("name", "slug", "updated_at").
		Updates(c)
	if res.Error != nil {
		return wrap("UpdateCategory", entityCategory, c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("UpdateCategory", entityCategory, c.ID, ErrNotFound)
	}
	return wrap("UpdateCategory", entityCategory, c.ID, s.db.WithContext(ctx).Take(c, "id = ?", c.ID).Error)
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).Take(&c, "id = ?", id).Error; err != nil {
		return nil, wrap("GetCategory", entityCategory, id, err)
	}
	return &c, nil
}

// CategoryBySlug is an exact, case-sensitive slug lookup.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).Take(&c, "slug = ?", slug).Error; err != nil {
		return nil, wrap("CategoryBySlug", entityCategory, slug, err)
	}
	return &c, nil
}

// CategoryByNamePatterns returns the category whose lower-cased name matches
// any of the LIKE patterns. Patterns are expected in ContainsPattern form.
// Ties go to the shortest name, then the oldest row, then the lowest id.
func (s *Store) CategoryByNamePatterns(ctx context.Context, patterns []string) (*models.Category, error) {
	if len(patterns) == 0 {
		return nil, wrap("CategoryByNamePatterns", entityCategory, "", ErrNotFound)
	}

	conds := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, p := range patterns {
		conds[i] = likeAny("name")
		args[i] = p
	}

	var c models.Category
	err := s.db.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Order("LENGTH(name) ASC").
		Order("created_at ASC").
		Order("id ASC").
		Take(&c).Error
	if err != nil {
		return nil, wrap("CategoryByNamePatterns", entityCategory, "", err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, wrap("ListCategories", entityCategory, "", err)
	}
	return categories, nil
}

// DeleteCategory removes the category and every product in it in one
// transaction. The ON DELETE CASCADE constraint covers the same ground for
// writers that bypass the store.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return wrap("DeleteCategory", entityCategory, id, err)
}
