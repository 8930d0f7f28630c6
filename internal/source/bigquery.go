package source

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/rotisserie/eris"
	"google.golang.org/api/iterator"

	"github.com/sells-group/revenue-cli/internal/frame"
)

// Warehouse runs SQL against the analytical warehouse scoped to one
// project. Credentials come from the ambient environment.
type Warehouse struct {
	projectID string
}

// NewWarehouse returns a warehouse handle. An empty project id is legal;
// queries will fail with ErrWarehouseUnavailable.
func NewWarehouse(projectID string) *Warehouse {
	return &Warehouse{projectID: projectID}
}

// Query executes one SQL statement and returns the raw result rows.
func (w *Warehouse) Query(ctx context.Context, q string) (*frame.Frame, error) {
	if w == nil || w.projectID == "" {
		return nil, eris.Wrap(ErrWarehouseUnavailable, "bigquery: no project id configured")
	}

	client, err := bigquery.NewClient(ctx, w.projectID)
	if err != nil {
		return nil, eris.Wrapf(ErrWarehouseUnavailable, "bigquery: client: %v", err)
	}
	defer client.Close()

	it, err := client.Query(q).Read(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "bigquery: run query")
	}

	var f *frame.Frame
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "bigquery: iterate")
		}
		if f == nil {
			cols := make([]string, len(it.Schema))
			for i, fs := range it.Schema {
				cols[i] = fs.Name
			}
			f = frame.New(cols...)
		}
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		f.AppendRow(cells...)
	}
	if f == nil {
		f = frame.New()
	}
	return f, nil
}
