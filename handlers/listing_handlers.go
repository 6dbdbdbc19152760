package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resourceshelf/web/internal/resources"
	"resourceshelf/web/models"
	"resourceshelf/web/utils"
	"resourceshelf/web/views"
)

// Page carries the fields the layout template reads.
type Page struct {
	PageTitle string
}

type listingPage struct {
	Page
	Resources []models.Resource
	Failed    bool
	Error     string
}

// ResourceListResponse is the body of a successful listing call.
type ResourceListResponse struct {
	Status string            `json:"status" example:"success"`
	Data   []models.Resource `json:"data"`
}

// ListResourcesPage renders every resource, newest first. A failed fetch is
// shown as an error, not as an empty listing.
func (h *ApplicationHandler) ListResourcesPage(c *fiber.Ctx) error {
	result := h.Lister.List(c.UserContext())

	data := listingPage{
		Page:      Page{PageTitle: "My Shared Resources"},
		Resources: result.Resources,
	}
	status := fiber.StatusOK
	if result.Failed() {
		data.Failed = true
		data.Error = resources.UserMessage(result.Err)
		status = fiber.StatusBadGateway
	}
	return c.Status(status).Render("index", data, views.Layout)
}

// ListResources godoc
// @Summary List all resources
// @Description Retrieves every shared resource, ordered by creation time, newest first.
// @Tags resources
// @Produce  json
// @Success 200 {object} ResourceListResponse "Resources retrieved"
// @Failure 502 {object} utils.ErrorResponse "The database rejected or could not serve the query"
// @Router /resources [get]
func (h *ApplicationHandler) ListResources(c *fiber.Ctx) error {
	result := h.Lister.List(c.UserContext())
	if result.Failed() {
		return utils.RespondWithStageError(c, fiber.StatusBadGateway, string(resources.StageList), resources.UserMessage(result.Err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, result.Resources)
}
