package resources

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names the backend step a workflow error came from.
type Stage string

const (
	StageUpload    Stage = "upload"
	StagePublicURL Stage = "public_url"
	StageInsert    Stage = "insert"
	StageList      Stage = "list"
)

func (s Stage) label() string {
	switch s {
	case StageUpload:
		return "File upload failed"
	case StagePublicURL:
		return "Could not get a link for the uploaded file"
	case StageInsert:
		return "Saving the resource failed"
	case StageList:
		return "Could not load resources"
	default:
		return string(s) + " failed"
	}
}

// GenericErrorMessage is shown when a failure carries no usable message.
const GenericErrorMessage = "Unknown error occurred"

// ErrNoPublicURL means the storage backend produced no URL for an object it
// had just accepted.
var ErrNoPublicURL = errors.New("storage returned no public URL for the uploaded file")

// StageError wraps a backend failure with the step it happened in.
type StageError struct {
	Stage Stage
	// Key is the storage key involved, if any. For insert failures it names
	// the object left in storage without a record.
	Key string
	Err error
}

func (e *StageError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return e.Stage.label()
	}
	return fmt.Sprintf("%s: %v", e.Stage.label(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ValidationError reports missing or malformed form input. It is returned
// before any backend is contacted.
type ValidationError struct {
	Fields   []string
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// HasField reports whether field failed validation.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// UserMessage turns err into the text shown in the blocking alert: the
// backend-provided message when there is one, otherwise a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		if stageErr.Err == nil || stageErr.Err.Error() == "" {
			return stageErr.Stage.label() + ": " + GenericErrorMessage
		}
		return stageErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
