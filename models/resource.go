package models

import (
	"time"

	"github.com/google/uuid"
)

// Resource represents a shared resource row in the resources table.
type Resource struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"resource_title"`
	Description  *string   `json:"resource_desc,omitempty"` // Nullable TEXT
	FileURL      *string   `json:"file_url,omitempty"`      // Absent when no file was uploaded
	CreatorEmail *string   `json:"creator_email,omitempty"`
	ColorTheme   *string   `json:"color_theme,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DescriptionText returns the description or an empty string.
func (r Resource) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// DownloadURL returns the public file link, or an empty string when the
// resource has no file attached.
func (r Resource) DownloadURL() string {
	if r.FileURL == nil {
		return ""
	}
	return *r.FileURL
}

// NewResource is the insert payload for the resources table.
// ID and CreatedAt are left out so the database assigns them, and unset
// optional columns are omitted so older schemas without them still accept it.
type NewResource struct {
	Title        string  `json:"resource_title"`
	Description  *string `json:"resource_desc,omitempty"`
	FileURL      *string `json:"file_url,omitempty"`
	CreatorEmail *string `json:"creator_email,omitempty"`
	ColorTheme   *string `json:"color_theme,omitempty"`
}
