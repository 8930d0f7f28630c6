package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/revenue-cli/internal/frame"
)

// ReadTable runs SELECT * against one table of a sqlite database file
// and returns the raw rows. An unconfigured or missing database file
// yields ErrConnectorUnavailable.
func ReadTable(ctx context.Context, dbPath, table, where string) (*frame.Frame, error) {
	if dbPath == "" {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "sqlite: no database path configured for table %s", table)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "sqlite: database %s: %v", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "sqlite: open %s: %v", dbPath, err)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM %q", table)
	if where != "" {
		query += " WHERE " + where
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: columns")
	}

	f := frame.New(cols...)
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s", table)
		}
		for i, v := range cells {
			if b, ok := v.([]byte); ok {
				cells[i] = string(b)
			}
		}
		f.AppendRow(cells...)
	}
	return f, eris.Wrapf(rows.Err(), "sqlite: iterate %s", table)
}
