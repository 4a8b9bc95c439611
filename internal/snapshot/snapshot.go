// Package snapshot copies every table of a store into CSV files and back.
package snapshot

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/verdix/verdix/internal/store"
	"github.com/verdix/verdix/pkg/targz"
)

const extension = ".csv"

func encodeTable(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export reads the tables of schema concurrently and writes one CSV per
// table into output as a tar.gz.
func Export(ctx context.Context, s store.Store, schema store.Schema, output io.Writer) error {
	tables := make([]string, 0, len(schema))
	for table := range schema {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	files := make([]targz.File, len(tables))
	now := time.Now()

	group, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		i, table := i, table
		group.Go(func() error {
			rows, err := s.ReadAll(ctx, table)
			if err != nil {
				return errors.Wrapf(err, "Failed to read %s", table)
			}
			header := schema[table]
			cells := make([][]string, len(rows))
			for j, row := range rows {
				cells[j] = make([]string, len(header))
				for k, column := range header {
					cells[j][k] = row.Get(column)
				}
			}
			body, err := encodeTable(header, cells)
			if err != nil {
				return errors.Wrapf(err, "Failed to encode %s", table)
			}
			files[i] = targz.File{Name: table + extension, Body: body, ModTime: now}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	return targz.Pack(output, files...)
}

// Load reads a snapshot produced by Export into a memory store. Tables
// missing from the snapshot stay empty; CSV columns are matched by header.
func Load(ctx context.Context, input io.Reader, schema store.Schema) (*store.MemoryStore, error) {
	files, err := targz.ExtractToMemory(input)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read snapshot")
	}

	memory := store.NewMemoryStore(schema)
	for name, body := range files {
		table := strings.TrimSuffix(name, extension)
		header, found := schema[table]
		if !found || !strings.HasSuffix(name, extension) {
			continue
		}

		reader := csv.NewReader(bytes.NewReader(body))
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse %s", name)
		}
		if len(records) == 0 {
			continue
		}

		position := make(map[string]int, len(records[0]))
		for i, column := range records[0] {
			position[column] = i
		}
		for _, record := range records[1:] {
			values := make([]interface{}, len(header))
			for i, column := range header {
				values[i] = ""
				if j, ok := position[column]; ok && j < len(record) {
					values[i] = record[j]
				}
			}
			if err = memory.Append(ctx, table, values); err != nil {
				return nil, err
			}
		}
	}
	return memory, nil
}
