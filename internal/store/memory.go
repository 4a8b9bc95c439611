package store

import (
	"context"
	"sort"
	"sync"

	"github.com/verdix/verdix/internal/models"
)

type MemoryStore struct {
	schema Schema

	mu   sync.Mutex
	rows map[string][][]string
}

func NewMemoryStore(schema Schema) *MemoryStore {
	rows := make(map[string][][]string, len(schema))
	for table := range schema {
		rows[table] = nil
	}
	return &MemoryStore{schema: schema, rows: rows}
}

func (m *MemoryStore) Append(ctx context.Context, table string, values []interface{}) error {
	if _, err := m.schema.Header(table); err != nil {
		return err
	}
	cells := models.CellStrings(values)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[table] = append(m.rows[table], cells)
	return nil
}

func (m *MemoryStore) ReadAll(ctx context.Context, table string) ([]models.Row, error) {
	header, err := m.schema.Header(table)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.rows[table]
	rows := make([]models.Row, len(stored))
	for i, cells := range stored {
		rows[i] = models.MakeRow(header, cells)
	}
	return rows, nil
}

func (m *MemoryStore) Tables(ctx context.Context) ([]string, error) {
	tables := make([]string, 0, len(m.schema))
	for table := range m.schema {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables, nil
}
