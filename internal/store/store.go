package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/verdix/verdix/internal/models"
)

// Store is an append-only collection of named tables. Rows are never
// updated or deleted and there is no ordering guarantee beyond what the
// backend gives for concurrent appends.
type Store interface {
	Append(ctx context.Context, table string, values []interface{}) error
	ReadAll(ctx context.Context, table string) ([]models.Row, error)
	Tables(ctx context.Context) ([]string, error)
}

var ErrUnknownTable = errors.New("unknown table")

// Schema fixes the header of each table for backends that do not keep one.
type Schema map[string][]string

func (s Schema) Header(table string) ([]string, error) {
	header, found := s[table]
	if !found {
		return nil, errors.Wrapf(ErrUnknownTable, "table %q", table)
	}
	return header, nil
}

// Verify checks that every table is present.
func Verify(ctx context.Context, store Store, tables ...string) error {
	present, err := store.Tables(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to list tables")
	}
	known := make(map[string]bool, len(present))
	for _, table := range present {
		known[table] = true
	}
	for _, table := range tables {
		if !known[table] {
			return errors.Wrapf(ErrUnknownTable, "worksheet %q not found", table)
		}
	}
	return nil
}
