package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"transcriptly/api-gateway/config"
	"transcriptly/api-gateway/handlers"
	"transcriptly/api-gateway/internal/ffmpeg"
	"transcriptly/api-gateway/internal/objectstore"
	"transcriptly/api-gateway/internal/pipeline"
	"transcriptly/api-gateway/internal/speech"
	"transcriptly/api-gateway/internal/store"
	"transcriptly/api-gateway/internal/worker"
	"transcriptly/api-gateway/middleware"
)

func main() {
	log := config.NewLogger()
	cfg := config.Load()

	client, err := config.NewSupabaseClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	recognizer, err := speech.NewGoogleRecognizer(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize speech client: %v", err)
	}

	metadata := store.NewSupabaseStore(client)
	objects := objectstore.NewSupabaseSigner(client.Storage, cfg.SupabaseURL, cfg.VideoBucket)
	processor := pipeline.NewProcessor(metadata, objects, recognizer, ffmpeg.Extractor{}, log)

	dispatcher := worker.NewDispatcher(cfg.WorkerCount, cfg.JobQueueSize, log)
	dispatcher.Run()
	defer dispatcher.Stop()

	h := handlers.NewApplicationHandler(log, metadata, objects, processor, dispatcher)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Authenticate(middleware.Static{UserID: cfg.UserID}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/projects", h.CreateProject)
	app.Get("/projects", h.ListProjects)
	app.Get("/projects/:id", h.GetProject)
	app.Get("/projects/:id/versions", h.ListVersions)
	app.Get("/projects/:id/versions/:vid", h.GetVersion)
	app.Post("/projects/:id/versions/:vid/edit", h.CreateEdit)
	app.Post("/upload-url", h.CreateUploadURL)
	app.Get("/videos/:id/url", h.GetVideoURL)

	log.Infof("Starting API gateway on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
