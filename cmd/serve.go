package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"okta-import/core/loader"
	"okta-import/core/logger"
	"okta-import/core/middleware/auth"
	"okta-import/core/middleware/rayid"
	"okta-import/core/reconcile"
	"okta-import/core/state"
	"okta-import/feature/imports"
	"okta-import/feature/okta"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes read-only import previews over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve <directory>",
	Short: "Serve import block previews for an environment directory",
	Long:  `Starts the HTTP server exposing GET /imports/:kind for the environment in <directory>. Nothing is written.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		dir, err := requireDirectory(cfg, logg, args)
		if err != nil {
			return err
		}

		env, err := resolveEnvironment(cmd.Context(), cfg, logg, dir)
		if err != nil {
			return err
		}
		logg = logg.With(zap.String("environment", env.Name))

		sortBy := reconcile.SortKey(cfg.Import.SortBy)
		adapters, err := okta.Adapters(reconcile.AllKinds, cfg.Okta)
		if err != nil {
			return err
		}
		if err := validateSortKey(adapters, sortBy); err != nil {
			return err
		}

		// Preview is read-only, so the server runs without a sink.
		svc := imports.NewService(okta.Opener(env.Okta), adapters, nil, nil, logg, imports.Options{
			Environment: env.Name,
			SortBy:      sortBy,
			Index:       func() reconcile.Index { return state.LoadIndex(env.Snapshot, logg) },
			CacheTTL:    cfg.Server.CacheTTL(),
		})

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(imports.NewFeature(svc))

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "environment": env.Name})
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty, every protected request will be rejected")
		}

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
