package handlers

import (
	"github.com/sirupsen/logrus"

	"resourceshelf/web/internal/resources"
)

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger   *logrus.Logger
	Lister   *resources.Lister
	Uploader *resources.Uploader
	// RedirectAfterUpload sends the browser back to the listing after a
	// successful form upload. When false the form is shown again, cleared,
	// with a confirmation.
	RedirectAfterUpload bool
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(logger *logrus.Logger, lister *resources.Lister, uploader *resources.Uploader, redirectAfterUpload bool) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:              logger,
		Lister:              lister,
		Uploader:            uploader,
		RedirectAfterUpload: redirectAfterUpload,
	}
}
