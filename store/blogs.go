package store

import (
	"context"

	"gyangroup/models"

	"gorm.io/gorm"
)

const entityBlog = "blog"

var blogColumns = []string{
	"slug", "title", "content", "image", "category", "featured", "author",
	"tags", "status", "updated_at",
}

// BlogFilter narrows ListBlogs. Zero values are ignored; Featured is a
// pointer so that "not featured" can be asked for.
type BlogFilter struct {
	Status   models.BlogStatus
	Category string
	Featured *bool
	ListOptions
}

func (s *Store) CreateBlog(ctx context.Context, b *models.Blog) error {
	return wrap("CreateBlog", entityBlog, "", s.db.WithContext(ctx).Create(b).Error)
}

func (s *Store) UpdateBlog(ctx context.Context, b *models.Blog) error {
	res := s.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", b.ID).
		Select(blogColumns).
		Updates(b)
	if res.Error != nil {
		return wrap("UpdateBlog", entityBlog, b.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("UpdateBlog", entityBlog, b.ID, ErrNotFound)
	}
	return wrap("UpdateBlog", entityBlog, b.ID, s.db.WithContext(ctx).Take(b, "id = ?", b.ID).Error)
}

func (s *Store) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	var b models.Blog
	if err := s.db.WithContext(ctx).Take(&b, "id = ?", id).Error; err != nil {
		return nil, wrap("GetBlog", entityBlog, id, err)
	}
	return &b, nil
}

func (s *Store) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var b models.Blog
	if err := s.db.WithContext(ctx).Take(&b, "slug = ?", slug).Error; err != nil {
		return nil, wrap("GetBlogBySlug", entityBlog, slug, err)
	}
	return &b, nil
}

// ListBlogs returns matching posts, newest first.
func (s *Store) ListBlogs(ctx context.Context, f BlogFilter) ([]models.Blog, error) {
	q := s.db.WithContext(ctx).Model(&models.Blog{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}

	blogs := []models.Blog{}
	if err := f.apply(q.Order("created_at DESC")).Find(&blogs).Error; err != nil {
		return nil, wrap("ListBlogs", entityBlog, "", err)
	}
	return blogs, nil
}

func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	if res.Error != nil {
		return wrap("DeleteBlog", entityBlog, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("DeleteBlog", entityBlog, id, ErrNotFound)
	}
	return nil
}

// ToggleBlogStatus flips draft <-> published and returns the updated post.
func (s *Store) ToggleBlogStatus(ctx context.Context, id string) (*models.Blog, error) {
	return s.toggleBlog(ctx, "ToggleBlogStatus", id, func(b *models.Blog) map[string]any {
		return map[string]any{"status": b.Status.Toggled()}
	})
}

// ToggleBlogFeatured flips the featured flag and returns the updated post.
func (s *Store) ToggleBlogFeatured(ctx context.Context, id string) (*models.Blog, error) {
	return s.toggleBlog(ctx, "ToggleBlogFeatured", id, func(b *models.Blog) map[string]any {
		return map[string]any{"featured": !b.Featured}
	})
}

func (s *Store) toggleBlog(ctx context.Context, op, id string, change func(*models.Blog) map[string]any) (*models.Blog, error) {
	var b models.Blog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&b, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&b).Updates(change(&b)).Error; err != nil {
			return err
		}
		return tx.Take(&b, "id = ?", id).Error
	})
	if err != nil {
		return nil, wrap(op, entityBlog, id, err)
	}
	return &b, nil
}
