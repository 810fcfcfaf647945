package routes

import (
	"strconv"

	"gyangroup/actions"
	"gyangroup/models"

	"github.com/gofiber/fiber/v2"
)

const parseError = "Failed to parse request body"

func listQuery(c *fiber.Ctx) actions.ListQuery {
	return actions.ListQuery{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
}

// optionalBool parses a query flag. ok is false when the value is present but
// not a boolean.
func optionalBool(c *fiber.Ctx, key string) (value *bool, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &b, true
}

// Blogs

func (h *handler) blogQuery(c *fiber.Ctx) (actions.BlogQuery, bool) {
	featured, ok := optionalBool(c, "featured")
	if !ok {
		return actions.BlogQuery{}, false
	}
	return actions.BlogQuery{
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Featured:  featured,
		ListQuery: listQuery(c),
	}, true
}

func (h *handler) listBlogs(c *fiber.Ctx) error {
	q, ok := h.blogQuery(c)
	if !ok {
		return badRequest(c, "featured must be true or false")
	}
	return respond(c, h.Actions.ListBlogs(c.UserContext(), q), fiber.StatusOK)
}

// listPublishedBlogs is the public listing; drafts are never shown.
func (h *handler) listPublishedBlogs(c *fiber.Ctx) error {
	q, ok := h.blogQuery(c)
	if !ok {
		return badRequest(c, "featured must be true or false")
	}
	q.Status = string(models.BlogPublished)
	return respond(c, h.Actions.ListBlogs(c.UserContext(), q), fiber.StatusOK)
}

func (h *handler) getPublishedBlog(c *fiber.Ctx) error {
	res := h.Actions.GetBlogBySlug(c.UserContext(), c.Params("slug"))
	if res.Success && res.Data.Status != models.BlogPublished {
		return c.Status(fiber.StatusNotFound).JSON(actions.Result[any]{Error: "Blog not found"})
	}
	return respond(c, res, fiber.StatusOK)
}

func (h *handler) getBlog(c *fiber.Ctx) error {
	return respond(c, h.Actions.GetBlogByID(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) createBlog(c *fiber.Ctx) error {
	var in actions.BlogInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertBlog(c.UserContext(), in, ""), fiber.StatusCreated)
}

func (h *handler) updateBlog(c *fiber.Ctx) error {
	var in actions.BlogInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertBlog(c.UserContext(), in, c.Params("id")), fiber.StatusOK)
}

func (h *handler) deleteBlog(c *fiber.Ctx) error {
	return respond(c, h.Actions.DeleteBlog(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) toggleBlogStatus(c *fiber.Ctx) error {
	return respond(c, h.Actions.ToggleBlogStatus(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) toggleBlogFeatured(c *fiber.Ctx) error {
	return respond(c, h.Actions.ToggleBlogFeatured(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Categories

func (h *handler) listCategories(c *fiber.Ctx) error {
	return respond(c, h.Actions.ListCategories(c.UserContext()), fiber.StatusOK)
}

func (h *handler) getCategory(c *fiber.Ctx) error {
	return respond(c, h.Actions.GetCategoryByID(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) createCategory(c *fiber.Ctx) error {
	var in actions.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertCategory(c.UserContext(), in, ""), fiber.StatusCreated)
}

func (h *handler) updateCategory(c *fiber.Ctx) error {
	var in actions.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertCategory(c.UserContext(), in, c.Params("id")), fiber.StatusOK)
}

func (h *handler) deleteCategory(c *fiber.Ctx) error {
	return respond(c, h.Actions.DeleteCategory(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Products

func (h *handler) listProducts(c *fiber.Ctx) error {
	return respond(c, h.Actions.ListProducts(c.UserContext(), actions.ProductQuery{
		CategoryID: c.Query("categoryId"),
		Limit:      c.QueryInt("limit"),
		Skip:       c.QueryInt("skip"),
	}), fiber.StatusOK)
}

func (h *handler) searchProducts(c *fiber.Ctx) error {
	return respond(c, h.Actions.SearchProducts(c.UserContext(), c.Query("q")), fiber.StatusOK)
}

func (h *handler) productsByCategorySlug(c *fiber.Ctx) error {
	res := h.Actions.ProductsByCategorySlug(c.UserContext(), c.Params("slug"))
	return c.Status(statusFor(res.Kind, res.Success, fiber.StatusOK)).JSON(res)
}

func (h *handler) getProductBySlug(c *fiber.Ctx) error {
	return respond(c, h.Actions.GetProductBySlug(c.UserContext(), c.Params("slug")), fiber.StatusOK)
}

func (h *handler) getProduct(c *fiber.Ctx) error {
	return respond(c, h.Actions.GetProductByID(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) createProduct(c *fiber.Ctx) error {
	var in actions.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertProduct(c.UserContext(), in, ""), fiber.StatusCreated)
}

func (h *handler) updateProduct(c *fiber.Ctx) error {
	var in actions.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertProduct(c.UserContext(), in, c.Params("id")), fiber.StatusOK)
}

func (h *handler) deleteProduct(c *fiber.Ctx) error {
	return respond(c, h.Actions.DeleteProduct(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Inquiries

func (h *handler) listInquiries(c *fiber.Ctx) error {
	return respond(c, h.Actions.ListInquiries(c.UserContext(), listQuery(c)), fiber.StatusOK)
}

func (h *handler) getInquiry(c *fiber.Ctx) error {
	return respond(c, h.Actions.GetInquiryByID(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

func (h *handler) createInquiry(c *fiber.Ctx) error {
	var in actions.InquiryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertInquiry(c.UserContext(), in, ""), fiber.StatusCreated)
}

func (h *handler) updateInquiry(c *fiber.Ctx) error {
	var in actions.InquiryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, parseError)
	}
	return respond(c, h.Actions.UpsertInquiry(c.UserContext(), in, c.Params("id")), fiber.StatusOK)
}

func (h *handler) deleteInquiry(c *fiber.Ctx) error {
	return respond(c, h.Actions.DeleteInquiry(c.UserContext(), c.Params("id")), fiber.StatusOK)
}
