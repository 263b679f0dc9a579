package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-tracker/core/loader"
	"media-tracker/core/logger"
	"media-tracker/core/middleware/auth"
	"media-tracker/core/middleware/rayid"
	"media-tracker/feature/catalog"
	"media-tracker/feature/health"
	"media-tracker/feature/importer"
	"media-tracker/feature/library"
	"media-tracker/feature/metadata"
	"media-tracker/feature/refresh"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "media-tracker/docs/swagger"
)

// @title Media Tracker API
// @version 1.0
// @description Catalogue, per-user lists, rankings and MyAnimeList imports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the media tracker server",
	Long:  `Starts the HTTP server, the metadata refresh schedule and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and database
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		cfg, logg := rt.cfg, rt.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		// 2. Storage (optional)
		store := rt.storageClient(cmd.Context())

		// 3. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// 4. Features
		// The metadata client is shared so one rate limit covers imports and refreshes.
		fetcher := metadata.NewClient(cfg.Metadata, logg)

		catalogFeature := catalog.NewFeature(rt.db, cfg.Catalog, logg)
		libraryFeature := library.NewFeature(rt.db, logg)
		catalogFeature.Service().SetMembership(libraryFeature.Service().Store())

		importFeature := importer.NewFeature(rt.db, fetcher, cfg.Import, logg)
		importFeature.Reconciler().OnCommit(catalogFeature.Service().InvalidateCaches)
		if cfg.Import.Archive && store != nil {
			importFeature.Reconciler().SetArchiver(importer.NewArchiver(store, cfg.Storage.Bucket, cfg.Import.ArchivePrefix))
		}

		healthService := health.NewService(rt.db, schemaModels, store, cfg.Storage.Bucket, cfg.Import.ArchivePrefix, logg)

		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(healthService))
		mgr.Register(catalogFeature)
		mgr.Register(libraryFeature)
		mgr.Register(importFeature)

		// 5. Middleware
		// RayID first so every log line can be traced.
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

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Refresh schedule
		job := refresh.NewJob(rt.db, fetcher, cfg.Refresh, logg)
		job.OnUpdate(catalogFeature.Service().InvalidateCaches)
		scheduler, err := refresh.Schedule(job, cfg.Refresh, logg)
		if err != nil {
			logg.Fatal("Failed to schedule metadata refresh", zap.Error(err))
		}

		// 7. Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if scheduler != nil {
			scheduler.Stop()
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
