package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gyangroup/actions"
	"gyangroup/config"
	"gyangroup/db"
	"gyangroup/logging"
	"gyangroup/revalidate"
	"gyangroup/routes"
	"gyangroup/store"
	"gyangroup/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

// Server is the assembled HTTP application.
type Server struct {
	App *fiber.App
	Hub *revalidate.Hub
}

// NewServer builds the Fiber app and its collaborators on an open database.
func NewServer(cfg *config.Config, conn *gorm.DB, logger *slog.Logger) (*Server, error) {
	uploads, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Upload.PublicURL)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "gyangroup",
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler:          routes.ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New())
	app.Use(logging.Middleware(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ","),
	}))

	// Remote public URLs (a CDN in front of the upload dir) are served elsewhere.
	if strings.HasPrefix(cfg.Upload.PublicURL, "/") {
		app.Static(cfg.Upload.PublicURL, cfg.Upload.Dir)
	}

	var cache *revalidate.PageCache
	if cfg.Cache.Enabled {
		cache = revalidate.NewPageCache("/api", cfg.Cache.TTL)
	}
	hub := revalidate.NewHub(logger)
	st := store.New(conn)

	routes.SetupRoutes(app, routes.Deps{
		Actions: actions.New(st, revalidate.New(cache, hub, logger), logger),
		Uploads: uploads,
		Cache:   cache,
		Hub:     hub,
		Ping:    st.Ping,
		Logger:  logger,
	})
	return &Server{App: app, Hub: hub}, nil
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting gyangroup", "version", Version, "address", cfg.Server.Address())

	conn, err := db.Open(cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		return err
	}

	srv, err := NewServer(cfg, conn, logger)
	if err != nil {
		return err
	}

	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go srv.Hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.App.Listen(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	if err := srv.App.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
