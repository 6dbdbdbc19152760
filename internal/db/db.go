package db

import (
	"context"
	"errors"
	"fmt"

	postgrest "github.com/supabase-community/postgrest-go"

	"resourceshelf/web/models"
)

// ErrNotConfigured is returned by every call on a table built without a
// usable backend connection.
var ErrNotConfigured = errors.New("database connection is not configured")

// Querier starts a PostgREST query on a table. Both *supabase.Client and
// *postgrest.Client satisfy it.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// ResourceTable reads and writes rows of the resources table.
type ResourceTable struct {
	client Querier
	table  string
	err    error
}

// NewResourceTable returns a ResourceTable that queries table through client.
func NewResourceTable(client Querier, table string) *ResourceTable {
	return &ResourceTable{client: client, table: table}
}

// Unavailable returns a ResourceTable whose calls all fail with cause
// wrapped in ErrNotConfigured.
func Unavailable(cause error) *ResourceTable {
	err := ErrNotConfigured
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrNotConfigured, cause)
	}
	return &ResourceTable{err: err}
}

// NewRESTClient builds a bare PostgREST client against a Supabase project,
// sending the API key both as apikey and as bearer token.
func NewRESTClient(supabaseURL, apiKey string) (*postgrest.Client, error) {
	if supabaseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}

	client := postgrest.NewClient(supabaseURL+"/rest/v1", "public", map[string]string{
		"apikey":        apiKey,
		"Authorization": fmt.Sprintf("Bearer %s", apiKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize postgrest client: %w", client.ClientError)
	}
	return client, nil
}

// List returns all resources ordered by created_at, newest first.
// There is no pagination or filtering.
func (t *ResourceTable) List(_ context.Context) ([]models.Resource, error) {
	if t.err != nil {
		return nil, t.err
	}

	var rows []models.Resource
	_, err := t.client.From(t.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Resource{}
	}
	return rows, nil
}

// Insert writes one resource row and returns it as stored, including the
// id and created_at assigned by the database.
func (t *ResourceTable) Insert(_ context.Context, record models.NewResource) (models.Resource, error) {
	if t.err != nil {
		return models.Resource{}, t.err
	}

	// The `Prefer: return=representation` header makes PostgREST return the inserted row.
	var results []models.Resource
	_, err := t.client.From(t.table).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&results)
	if err != nil {
		return models.Resource{}, err
	}

	if len(results) == 0 {
		return models.Resource{}, fmt.Errorf("no record returned after insert into %s", t.table)
	}
	return results[0], nil
}
