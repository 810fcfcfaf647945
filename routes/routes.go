// Package routes registers the public and admin HTTP APIs on a Fiber app.
package routes

import (
	"context"
	"errors"
	"log/slog"

	"gyangroup/actions"
	"gyangroup/logging"
	"gyangroup/revalidate"
	"gyangroup/upload"

	"github.com/gofiber/fiber/v2"
)

// Deps are the collaborators the handlers need. Cache, Hub and Ping may be
// nil.
type Deps struct {
	Actions *actions.Actions
	Uploads upload.Store
	Cache   *revalidate.PageCache
	Hub     *revalidate.Hub
	Ping    func(ctx context.Context) error
	Logger  *slog.Logger
}

type handler struct {
	Deps
}

func SetupRoutes(app *fiber.App, d Deps) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handler{Deps: d}

	if d.Hub != nil {
		app.Get("/ws", d.Hub.Handler())
	}
	app.Get("/healthz", h.health)

	api := app.Group("/api")
	if d.Cache != nil {
		api.Use(d.Cache.Middleware())
	}
	api.Post("/upload", h.uploadImage)

	// Public routes
	products := api.Group("/products")
	products.Get("/", h.listProducts)
	products.Get("/search", h.searchProducts)
	products.Get("/category/:slug", h.productsByCategorySlug)
	products.Get("/:slug", h.getProductBySlug)

	blogs := api.Group("/blogs")
	blogs.Get("/", h.listPublishedBlogs)
	blogs.Get("/:slug", h.getPublishedBlog)

	api.Get("/categories", h.listCategories)
	api.Post("/inquiries", h.createInquiry)

	// Admin routes
	admin := api.Group("/admin")

	adminBlogs := admin.Group("/blogs")
	adminBlogs.Get("/", h.listBlogs)
	adminBlogs.Post("/", h.createBlog)
	adminBlogs.Get("/:id", h.getBlog)
	adminBlogs.Put("/:id", h.updateBlog)
	adminBlogs.Delete("/:id", h.deleteBlog)
	adminBlogs.Patch("/:id/status", h.toggleBlogStatus)
	adminBlogs.Patch("/:id/featured", h.toggleBlogFeatured)

	adminCategories := admin.Group("/categories")
	adminCategories.Get("/", h.listCategories)
	adminCategories.Post("/", h.createCategory)
	adminCategories.Get("/:id", h.getCategory)
	adminCategories.Put("/:id", h.updateCategory)
	adminCategories.Delete("/:id", h.deleteCategory)

	adminProducts := admin.Group("/products")
	adminProducts.Get("/", h.listProducts)
	adminProducts.Post("/", h.createProduct)
	adminProducts.Get("/:id", h.getProduct)
	adminProducts.Put("/:id", h.updateProduct)
	adminProducts.Delete("/:id", h.deleteProduct)

	adminInquiries := admin.Group("/inquiries")
	adminInquiries.Get("/", h.listInquiries)
	adminInquiries.Post("/", h.createInquiry)
	adminInquiries.Get("/:id", h.getInquiry)
	adminInquiries.Put("/:id", h.updateInquiry)
	adminInquiries.Delete("/:id", h.deleteInquiry)
}

// ErrorHandler renders errors that escape handlers in the same envelope the
// actions use.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logging.FromCtx(c, logger).Error("unhandled request error", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(actions.Result[any]{Error: message})
	}
}

// statusFor maps a result to an HTTP status. okStatus is used on success.
func statusFor(kind actions.Kind, success bool, okStatus int) int {
	switch {
	case success:
		return okStatus
	case kind == actions.KindValidation:
		return fiber.StatusBadRequest
	case kind == actions.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respond[T any](c *fiber.Ctx, r actions.Result[T], okStatus int) error {
	return c.Status(statusFor(r.Kind, r.Success, okStatus)).JSON(r)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(actions.Result[any]{Error: message})
}

func (h *handler) health(c *fiber.Ctx) error {
	if h.Ping != nil {
		if err := h.Ping(c.UserContext()); err != nil {
			logging.FromCtx(c, h.Logger).Error("health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// uploadImage stores a multipart image sent as "file" (or "image") and
// returns its public URL.
func (h *handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("image")
	}
	if err != nil {
		return badRequest(c, "Failed to get uploaded file")
	}

	f, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to read uploaded file")
	}
	defer f.Close()

	obj, err := h.Uploads.Save(c.UserContext(), f)
	if errors.Is(err, upload.ErrUnsupportedType) {
		return badRequest(c, "Only image files can be uploaded")
	}
	if err != nil {
		logging.FromCtx(c, h.Logger).Error("upload failed", "filename", file.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(actions.Result[any]{Error: "Failed to save file"})
	}

	return c.Status(fiber.StatusCreated).JSON(actions.Result[upload.Object]{
		Success: true,
		Data:    obj,
		Message: "File uploaded successfully",
	})
}
