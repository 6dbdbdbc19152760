package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"resourceshelf/web/internal/resources"
	"resourceshelf/web/middleware"
	"resourceshelf/web/models"
	"resourceshelf/web/utils"
	"resourceshelf/web/views"
)

type uploadForm struct {
	Title       string
	Description string
}

type uploadPage struct {
	Page
	Form        uploadForm
	Alert       string
	Notice      string
	RequireFile bool
}

// ResourceCreatedResponse is the body of a successful upload call.
type ResourceCreatedResponse struct {
	Status string          `json:"status" example:"success"`
	Data   models.Resource `json:"data"`
}

// UploadPage renders the empty upload form.
func (h *ApplicationHandler) UploadPage(c *fiber.Ctx) error {
	return c.Render("upload", h.uploadPage(uploadForm{}), views.Layout)
}

// SubmitUploadForm runs the upload workflow for the HTML form. Failures
// re-render the form with the user's input and an alert.
func (h *ApplicationHandler) SubmitUploadForm(c *fiber.Ctx) error {
	sub, err := submissionFromForm(c)
	form := uploadForm{Title: sub.Title, Description: sub.Description}
	if err != nil {
		h.Logger.Errorf("Error reading upload form: %v", err)
		data := h.uploadPage(form)
		data.Alert = resources.UserMessage(err)
		return c.Status(fiber.StatusBadRequest).Render("upload", data, views.Layout)
	}

	if _, err := h.Uploader.Submit(c.UserContext(), sub, middleware.IdentityFrom(c)); err != nil {
		data := h.uploadPage(form)
		data.Alert = resources.UserMessage(err)
		return c.Status(statusForError(err)).Render("upload", data, views.Layout)
	}

	if h.RedirectAfterUpload {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	data := h.uploadPage(uploadForm{})
	data.Notice = "Upload successful!"
	return c.Render("upload", data, views.Layout)
}

// CreateResource godoc
// @Summary Upload a resource
// @Description Stores the optional file in object storage under a generated key, then inserts the resource record referencing its public URL.
// @Tags resources
// @Accept  multipart/form-data
// @Produce  json
// @Param   resource_title formData string true  "Resource title"
// @Param   resource_desc  formData string false "Resource description"
// @Param   file           formData file   false "File to share (required unless REQUIRE_FILE=false)"
// @Success 201 {object} ResourceCreatedResponse "Resource created"
// @Failure 400 {object} utils.ErrorResponse "Missing title or file"
// @Failure 502 {object} utils.ErrorResponse "Storage upload, URL lookup or insert failed"
// @Router /resources [post]
func (h *ApplicationHandler) CreateResource(c *fiber.Ctx) error {
	sub, err := submissionFromForm(c)
	if err != nil {
		h.Logger.Errorf("Error reading upload request: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, resources.UserMessage(err))
	}

	created, err := h.Uploader.Submit(c.UserContext(), sub, middleware.IdentityFrom(c))
	if err != nil {
		var stageErr *resources.StageError
		if errors.As(err, &stageErr) {
			return utils.RespondWithStageError(c, statusForError(err), string(stageErr.Stage), resources.UserMessage(err))
		}
		return utils.RespondWithError(c, statusForError(err), resources.UserMessage(err))
	}

	return c.Status(fiber.StatusCreated).JSON(ResourceCreatedResponse{
		Status: "success",
		Data:   created,
	})
}

func (h *ApplicationHandler) uploadPage(form uploadForm) uploadPage {
	return uploadPage{
		Page:        Page{PageTitle: "Submit Resource"},
		Form:        form,
		RequireFile: h.Uploader.RequireFile(),
	}
}

// submissionFromForm reads the title, description and optional file from a
// urlencoded or multipart body.
func submissionFromForm(c *fiber.Ctx) (resources.Submission, error) {
	sub := resources.Submission{
		Title:       c.FormValue(resources.FieldTitle),
		Description: c.FormValue(resources.FieldDescription),
	}

	fh, err := c.FormFile(resources.FieldFile)
	switch {
	case err == nil:
		if fh.Filename != "" {
			sub.File = fileUpload(fh)
		}
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
		// No file picked.
	default:
		return sub, err
	}
	return sub, nil
}

func fileUpload(fh *multipart.FileHeader) *resources.FileUpload {
	return &resources.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// statusForError maps workflow errors to HTTP status codes: bad input is the
// client's fault, backend failures are reported as a bad gateway.
func statusForError(err error) int {
	var validationErr *resources.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}
	var stageErr *resources.StageError
	if errors.As(err, &stageErr) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
