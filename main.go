package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"resourceshelf/web/config"
	_ "resourceshelf/web/docs"
	"resourceshelf/web/handlers"
	"resourceshelf/web/internal/db"
	"resourceshelf/web/internal/objectstore"
	"resourceshelf/web/internal/resources"
	"resourceshelf/web/middleware"
	"resourceshelf/web/views"
)

// @title Resource Shelf API
// @version 1.0
// @description Share resources: a title, an optional description and an optional file kept in object storage.

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := config.InitLogger(cfg.LogLevel, cfg.LogFormat)

	table, store := connectBackends(cfg, log)

	lister := resources.NewLister(table, log)
	uploader := resources.NewUploader(table, store, resources.Options{
		Folder:            cfg.StorageFolder,
		RequireFile:       cfg.RequireFile,
		RecordAttribution: cfg.RecordAttribution,
		ColorTheme:        cfg.ColorTheme,
		CleanupOrphans:    cfg.CleanupOrphans,
	}, log)
	h := handlers.NewApplicationHandler(log, lister, uploader, cfg.UploadRedirect)

	app := fiber.New(fiber.Config{
		AppName:   "Resource Shelf",
		Views:     views.NewEngine(),
		BodyLimit: cfg.BodyLimit(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Identity(cfg.DefaultCreatorEmail))

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	h.RegisterRoutes(app)

	go func() {
		log.Infof("Starting server on port %s...", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited gracefully")
}

// connectBackends builds the resources table and the file store. Missing
// credentials are logged, not fatal: the app serves pages and every backend
// call reports the same error.
func connectBackends(cfg *config.Config, log *logrus.Logger) (resources.Table, objectstore.Store) {
	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		var table resources.Table
		rest, err := db.NewRESTClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Warnf("Resources table unavailable: %v", err)
			table = db.Unavailable(err)
		} else {
			table = db.NewResourceTable(rest, cfg.ResourcesTable)
		}

		store, err := objectstore.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
			cfg.StorageBucket, cfg.Minio.PublicURL, cfg.Minio.UseSSL)
		if err != nil {
			log.Warnf("MinIO storage unavailable: %v", err)
			return table, objectstore.Unavailable(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureBucket(ctx); err != nil {
			log.Warnf("Could not ensure bucket %q: %v", cfg.StorageBucket, err)
		}
		if cfg.Minio.PublicURL == "" {
			log.Warn("MINIO_PUBLIC_URL is not set; uploads will fail at the public URL step")
		}
		return table, store

	default:
		client, err := config.NewSupabaseClient(cfg)
		if err != nil {
			log.Warnf("Supabase unavailable, every backend call will fail: %v", err)
			return db.Unavailable(err), objectstore.Unavailable(err)
		}
		log.Info("Supabase client initialized successfully")
		table := db.NewResourceTable(client, cfg.ResourcesTable)

		store, err := objectstore.NewSupabaseStore(cfg.StorageURL(), cfg.SupabaseKey,
			map[string]string{"apikey": cfg.SupabaseKey}, cfg.StorageBucket)
		if err != nil {
			log.Warnf("Supabase storage unavailable: %v", err)
			return table, objectstore.Unavailable(err)
		}
		return table, store
	}
}
