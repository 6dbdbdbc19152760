package resources

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"resourceshelf/web/models"
)

// Table is the resources table as the workflows need it.
type Table interface {
	List(ctx context.Context) ([]models.Resource, error)
	Insert(ctx context.Context, record models.NewResource) (models.Resource, error)
}

// ListResult is the outcome of one listing fetch. Err is set when the fetch
// failed, so callers can tell "no data" apart from "could not load".
type ListResult struct {
	Resources []models.Resource
	Err       error
}

// Failed reports whether the fetch failed.
func (r ListResult) Failed() bool { return r.Err != nil }

// Empty reports a successful fetch that returned no rows.
func (r ListResult) Empty() bool { return r.Err == nil && len(r.Resources) == 0 }

// Lister fetches the resource listing.
type Lister struct {
	table  Table
	logger *logrus.Logger
}

// NewLister returns a Lister reading from table.
func NewLister(table Table, logger *logrus.Logger) *Lister {
	return &Lister{table: table, logger: logger}
}

// List fetches every resource, newest first. Failures are logged and
// returned in the result rather than as an empty listing.
func (l *Lister) List(ctx context.Context) ListResult {
	rows, err := l.table.List(ctx)
	if err != nil {
		l.logger.WithError(err).Error("Error fetching resources")
		return ListResult{Resources: []models.Resource{}, Err: &StageError{Stage: StageList, Err: err}}
	}

	// Keep the order non-increasing by created_at even if the backend ignored it.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	l.logger.Debugf("Fetched %d resources", len(rows))
	return ListResult{Resources: rows}
}
