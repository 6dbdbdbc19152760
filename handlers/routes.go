package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the pages, the JSON API and the health check.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", Health)

	app.Get("/", h.ListResourcesPage)
	app.Get("/upload", h.UploadPage)
	app.Post("/upload", h.SubmitUploadForm)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/resources", h.ListResources)
	apiV1.Post("/resources", h.CreateResource)
}

// Health reports that the process is serving requests.
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "Resource sharing app is healthy",
	})
}
