package resources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"resourceshelf/web/internal/objectstore"
	"resourceshelf/web/models"
	"resourceshelf/web/utils"
)

// Form field names, shared with the HTML form and the API.
const (
	FieldTitle       = "resource_title"
	FieldDescription = "resource_desc"
	FieldFile        = "file"
)

// FileUpload is a file picked in the upload form.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Submission is one upload form submission.
type Submission struct {
	Title       string
	Description string
	File        *FileUpload
}

// Identity is who a new resource is attributed to. It is resolved per
// request; nothing here authenticates it.
type Identity struct {
	CreatorEmail string
}

// Options selects the upload behavior.
type Options struct {
	// Folder is the key prefix uploaded files are placed under.
	Folder string
	// RequireFile rejects submissions without a file.
	RequireFile bool
	// RecordAttribution writes creator_email and color_theme on insert.
	RecordAttribution bool
	ColorTheme        string
	// CleanupOrphans removes the uploaded object when a later step fails.
	CleanupOrphans bool
}

type submissionRules struct {
	Title        string `form:"resource_title" validate:"required"`
	HasFile      bool   `form:"file" validate:"required_if=FileRequired true"`
	FileRequired bool
}

// Uploader runs the upload workflow: store the file, look up its public URL
// and insert the metadata record, strictly in that order.
type Uploader struct {
	table    Table
	store    objectstore.Store
	opts     Options
	logger   *logrus.Logger
	validate *validator.Validate
}

// NewUploader returns an Uploader writing files to store and rows to table.
func NewUploader(table Table, store objectstore.Store, opts Options, logger *logrus.Logger) *Uploader {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return &Uploader{
		table:    table,
		store:    store,
		opts:     opts,
		logger:   logger,
		validate: v,
	}
}

// RequireFile reports whether submissions must include a file.
func (u *Uploader) RequireFile() bool { return u.opts.RequireFile }

// Submit validates sub and, if it passes, stores its file (when present) and
// inserts the resource record. A failure at any step stops the sequence; an
// object already uploaded is left in storage unless CleanupOrphans is set.
// Nothing is retried.
func (u *Uploader) Submit(ctx context.Context, sub Submission, who Identity) (models.Resource, error) {
	sub.Title = utils.SanitizeInput(sub.Title)
	sub.Description = utils.SanitizeInput(sub.Description)

	if err := u.check(sub); err != nil {
		return models.Resource{}, err
	}

	// A blank description is stored as "", not NULL.
	record := models.NewResource{Title: sub.Title, Description: &sub.Description}

	var key string
	if sub.File != nil {
		var fileURL string
		var err error
		key, fileURL, err = u.storeFile(ctx, sub.File)
		if err != nil {
			return models.Resource{}, err
		}
		record.FileURL = &fileURL
	}

	if u.opts.RecordAttribution {
		if who.CreatorEmail != "" {
			email := who.CreatorEmail
			record.CreatorEmail = &email
		}
		if u.opts.ColorTheme != "" {
			theme := u.opts.ColorTheme
			record.ColorTheme = &theme
		}
	}

	created, err := u.table.Insert(ctx, record)
	if err != nil {
		entry := u.logger.WithError(err).WithFields(logrus.Fields{
			"stage": StageInsert,
			"title": sub.Title,
		})
		if key != "" {
			entry = entry.WithField("key", key)
		}
		entry.Error("Error inserting resource record")

		if key != "" {
			u.handleOrphan(ctx, key)
		}
		return models.Resource{}, &StageError{Stage: StageInsert, Key: key, Err: err}
	}

	u.logger.WithFields(logrus.Fields{
		"id":       created.ID,
		"title":    created.Title,
		"has_file": created.FileURL != nil,
	}).Info("Resource created")
	return created, nil
}

func (u *Uploader) check(sub Submission) error {
	rules := submissionRules{
		Title:        sub.Title,
		HasFile:      sub.File != nil,
		FileRequired: u.opts.RequireFile,
	}
	err := u.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fe.Field())
		switch fe.Field() {
		case FieldTitle:
			out.Messages = append(out.Messages, "Title is required")
		case FieldFile:
			out.Messages = append(out.Messages, "Please choose a file to upload")
		default:
			out.Messages = append(out.Messages, utils.FormatValidationErrors(validator.ValidationErrors{fe})...)
		}
	}
	return out
}

// storeFile uploads file under a freshly generated key and returns the key
// and its public URL.
func (u *Uploader) storeFile(ctx context.Context, file *FileUpload) (string, string, error) {
	key := objectstore.NewKey(u.opts.Folder, file.Filename)
	log := u.logger.WithFields(logrus.Fields{"key": key, "filename": file.Filename})

	body, err := file.Open()
	if err != nil {
		log.WithError(err).WithField("stage", StageUpload).Error("Error opening uploaded file")
		return "", "", &StageError{Stage: StageUpload, Key: key, Err: fmt.Errorf("open %s: %w", file.Filename, err)}
	}
	defer body.Close()

	contentType := objectstore.ContentType(file.Filename, file.ContentType)
	if err := u.store.Upload(ctx, key, contentType, body, file.Size); err != nil {
		log.WithError(err).WithField("stage", StageUpload).Error("Error uploading file to storage")
		return "", "", &StageError{Stage: StageUpload, Key: key, Err: err}
	}

	fileURL := strings.TrimSpace(u.store.PublicURL(key))
	if fileURL == "" {
		log.WithField("stage", StagePublicURL).Error("Storage returned no public URL")
		u.handleOrphan(ctx, key)
		return "", "", &StageError{Stage: StagePublicURL, Key: key, Err: ErrNoPublicURL}
	}

	log.Infof("Uploaded file to storage (%d bytes)", file.Size)
	return key, fileURL, nil
}

// handleOrphan deals with an uploaded object that no record will reference.
func (u *Uploader) handleOrphan(ctx context.Context, key string) {
	log := u.logger.WithField("key", key)
	if !u.opts.CleanupOrphans {
		log.Warn("Uploaded object has no resource record")
		return
	}
	if err := u.store.Remove(ctx, key); err != nil {
		log.WithError(err).Error("Failed to remove orphaned object")
		return
	}
	log.Info("Removed orphaned object")
}
