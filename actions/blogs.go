package actions

import (
	"context"
	"strings"

	"gyangroup/models"
	"gyangroup/store"
)

const entityBlog = "Blog"

// BlogInput is the payload accepted by UpsertBlog. Featured is a pointer so
// that an omitted value is rejected instead of read as false.
type BlogInput struct {
	Title    string   `json:"title" validate:"min=3"`
	Slug     string   `json:"slug" validate:"min=3,slug"`
	Content  string   `json:"content" validate:"min=10"`
	Image    string   `json:"image" validate:"omitempty,url"`
	Category string   `json:"category" validate:"min=3"`
	Tags     []string `json:"tags" validate:"min=1,dive,min=1"`
	Featured *bool    `json:"featured" validate:"required"`
	Author   string   `json:"author" validate:"min=3"`
	Status   string   `json:"status" validate:"oneof=draft published"`
}

func (in *BlogInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = models.Slugify(in.Title)
	}
	in.Image = strings.TrimSpace(in.Image)
	in.Category = strings.TrimSpace(in.Category)
	in.Author = strings.TrimSpace(in.Author)
}

func (in BlogInput) model(id string) *models.Blog {
	return &models.Blog{
		ID:       id,
		Slug:     in.Slug,
		Title:    in.Title,
		Content:  in.Content,
		Image:    in.Image,
		Category: in.Category,
		Featured: *in.Featured,
		Author:   in.Author,
		Tags:     in.Tags,
		Status:   models.BlogStatus(in.Status),
	}
}

// BlogQuery filters ListBlogs. Empty fields do not filter.
type BlogQuery struct {
	Status   string `json:"status" validate:"omitempty,oneof=draft published"`
	Category string `json:"category"`
	Featured *bool  `json:"featured"`
	ListQuery
}

// UpsertBlog creates a post when id is empty and updates post id otherwise.
func (a *Actions) UpsertBlog(ctx context.Context, in BlogInput, id string) Result[*models.Blog] {
	in.normalize()
	if issues := a.check(in); issues != nil {
		return invalid[*models.Blog](issues)
	}

	b := in.model(id)
	var err error
	message := "Blog created successfully"
	if id == "" {
		err = a.store.CreateBlog(ctx, b)
	} else {
		err = a.store.UpdateBlog(ctx, b)
		message = "Blog updated successfully"
	}
	if err != nil {
		return fromStoreError[*models.Blog](a.logger, "upsert blog", entityBlog, "slug", err)
	}

	a.revalidator.Revalidate(blogPages...)
	return ok(b, message)
}

func (a *Actions) GetBlogByID(ctx context.Context, id string) Result[*models.Blog] {
	b, err := a.store.GetBlog(ctx, id)
	if err != nil {
		return fromStoreError[*models.Blog](a.logger, "get blog", entityBlog, "", err)
	}
	return ok(b, "")
}

func (a *Actions) GetBlogBySlug(ctx context.Context, slug string) Result[*models.Blog] {
	b, err := a.store.GetBlogBySlug(ctx, slug)
	if err != nil {
		return fromStoreError[*models.Blog](a.logger, "get blog by slug", entityBlog, "", err)
	}
	return ok(b, "")
}

// ListBlogs returns posts matching q, newest first.
func (a *Actions) ListBlogs(ctx context.Context, q BlogQuery) Result[[]models.Blog] {
	empty := []models.Blog{}
	if issues := a.check(q); issues != nil {
		return withData(invalid[[]models.Blog](issues), empty)
	}

	blogs, err := a.store.ListBlogs(ctx, store.BlogFilter{
		Status:      models.BlogStatus(q.Status),
		Category:    q.Category,
		Featured:    q.Featured,
		ListOptions: q.options(),
	})
	if err != nil {
		return withData(fromStoreError[[]models.Blog](a.logger, "list blogs", entityBlog, "", err), empty)
	}
	return okCount(blogs, int64(len(blogs)))
}

func (a *Actions) DeleteBlog(ctx context.Context, id string) Result[any] {
	if err := a.store.DeleteBlog(ctx, id); err != nil {
		return fromStoreError[any](a.logger, "delete blog", entityBlog, "", err)
	}
	a.revalidator.Revalidate(blogPages...)
	return ok[any](nil, "Blog deleted successfully")
}

// ToggleBlogStatus flips a post between draft and published.
func (a *Actions) ToggleBlogStatus(ctx context.Context, id string) Result[*models.Blog] {
	b, err := a.store.ToggleBlogStatus(ctx, id)
	if err != nil {
		return fromStoreError[*models.Blog](a.logger, "toggle blog status", entityBlog, "", err)
	}
	a.revalidator.Revalidate(blogPages...)

	verb := "unpublished"
	if b.Status == models.BlogPublished {
		verb = "published"
	}
	return ok(b, "Blog "+verb+" successfully")
}

func (a *Actions) ToggleBlogFeatured(ctx context.Context, id string) Result[*models.Blog] {
	b, err := a.store.ToggleBlogFeatured(ctx, id)
	if err != nil {
		return fromStoreError[*models.Blog](a.logger, "toggle blog featured", entityBlog, "", err)
	}
	a.revalidator.Revalidate(blogPages...)

	if b.Featured {
		return ok(b, "Blog marked as featured")
	}
	return ok(b, "Blog removed from featured")
}
