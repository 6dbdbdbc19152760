// Package resourcestest provides in-memory stand-ins for the resources table
// and object storage.
package resourcestest

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resourceshelf/web/models"
)

// ErrNotNullAttribution is what Table returns when RequireAttribution is set
// and an insert leaves out creator_email or color_theme.
var ErrNotNullAttribution = errors.New(`(23502) null value in column "creator_email" of relation "resources" violates not-null constraint`)

// Table is an in-memory resources table.
type Table struct {
	mu sync.Mutex

	Rows     []models.Resource
	Inserted []models.NewResource

	ListErr   error
	InsertErr error
	// RequireAttribution makes creator_email and color_theme NOT NULL.
	RequireAttribution bool

	ListCalls   int
	InsertCalls int

	clock time.Time
}

// NewTable returns an empty table whose created_at values start at start and
// increase by one second per insert.
func NewTable(start time.Time) *Table {
	return &Table{clock: start}
}

// List returns the rows in insertion order, like a backend ignoring ORDER BY.
func (t *Table) List(context.Context) ([]models.Resource, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ListCalls++
	if t.ListErr != nil {
		return nil, t.ListErr
	}
	out := make([]models.Resource, len(t.Rows))
	copy(out, t.Rows)
	return out, nil
}

// Insert stores record with a new id and created_at.
func (t *Table) Insert(_ context.Context, record models.NewResource) (models.Resource, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.InsertCalls++
	if t.InsertErr != nil {
		return models.Resource{}, t.InsertErr
	}
	if t.RequireAttribution && (record.CreatorEmail == nil || record.ColorTheme == nil) {
		return models.Resource{}, ErrNotNullAttribution
	}
	t.Inserted = append(t.Inserted, record)

	t.clock = t.clock.Add(time.Second)
	row := models.Resource{
		ID:           uuid.New(),
		Title:        record.Title,
		Description:  record.Description,
		FileURL:      record.FileURL,
		CreatorEmail: record.CreatorEmail,
		ColorTheme:   record.ColorTheme,
		CreatedAt:    t.clock,
	}
	t.Rows = append(t.Rows, row)
	return row, nil
}

// Calls returns the total number of table calls.
func (t *Table) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ListCalls + t.InsertCalls
}

// Store is an in-memory bucket serving objects under BaseURL.
type Store struct {
	mu sync.Mutex

	BaseURL string

	Objects      map[string][]byte
	ContentTypes map[string]string
	Removed      []string

	UploadErr   error
	RemoveErr   error
	NoPublicURL bool

	UploadCalls    int
	PublicURLCalls int
	RemoveCalls    int
}

// NewStore returns an empty store whose public URLs start with baseURL.
func NewStore(baseURL string) *Store {
	return &Store{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Objects:      map[string][]byte{},
		ContentTypes: map[string]string{},
	}
}

// Upload reads body fully and keeps it under key.
func (s *Store) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UploadCalls++
	if s.UploadErr != nil {
		return s.UploadErr
	}
	if _, exists := s.Objects[key]; exists {
		return errors.New("The resource already exists")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.Objects[key] = b
	s.ContentTypes[key] = contentType
	return nil
}

// PublicURL returns BaseURL/key, or "" when NoPublicURL is set.
func (s *Store) PublicURL(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PublicURLCalls++
	if s.NoPublicURL {
		return ""
	}
	return s.BaseURL + "/" + key
}

// Remove deletes key.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RemoveCalls++
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.Removed = append(s.Removed, key)
	delete(s.Objects, key)
	return nil
}

// Resolve returns the bytes a public URL points at.
func (s *Store) Resolve(url string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := strings.CutPrefix(url, s.BaseURL+"/")
	if !ok {
		return nil, false
	}
	b, ok := s.Objects[key]
	return b, ok
}

// Calls returns the total number of store calls.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UploadCalls + s.PublicURLCalls + s.RemoveCalls
}
