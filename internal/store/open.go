package store

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/config"
	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/models"
)

// SchemaFor builds the headers of the three tables for the given criterion columns.
func SchemaFor(conf *config.Config, criteria []string) Schema {
	return Schema{
		conf.Store.Tables.Teams:  models.TeamColumns,
		conf.Store.Tables.Scores: models.ScoreColumns(criteria),
		conf.Store.Tables.Config: models.TrackColumns,
	}
}

func openBackend(ctx context.Context, conf *config.Config, logger *zap.Logger, schema Schema) (Store, error) {
	switch conf.Store.Mode {
	case config.SheetsMode:
		credentials, err := LoadCredentials(conf.Store.Sheets.Credentials, conf.Store.Sheets.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return OpenSheets(ctx, logger, SheetsOptions{
			SpreadsheetID:   conf.Store.Sheets.SpreadsheetID,
			SpreadsheetName: conf.Store.Sheets.SpreadsheetName,
			Credentials:     credentials,
		})
	case config.PostgresMode:
		return OpenDataBase(logger, conf.DataBaseDSN(), schema)
	case config.MemoryMode:
		memory := NewMemoryStore(schema)
		for _, track := range conf.Store.Memory.Tracks {
			record := models.TrackRecord{Name: track}
			if err := memory.Append(ctx, conf.Store.Tables.Config, record.Values()); err != nil {
				return nil, err
			}
		}
		return memory, nil
	default:
		return nil, errors.Errorf("Unknown store mode %q", conf.Store.Mode)
	}
}

// Open connects the configured backend, checks that every table exists and
// wraps it with instrumentation.
func Open(ctx context.Context, conf *config.Config, logger *zap.Logger, m *metrics.Metrics, schema Schema) (*Instrumented, error) {
	logger = logger.With(lf.Module("store"), lf.StoreMode(conf.Store.Mode))

	backend, err := openBackend(ctx, conf, logger, schema)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open store")
	}

	tables := make([]string, 0, len(schema))
	for table := range schema {
		tables = append(tables, table)
	}
	if err = Verify(ctx, backend, tables...); err != nil {
		return nil, err
	}
	logger.Info("Store is ready")

	writesPerMinute := conf.Store.Sheets.WritesPerMinute
	if conf.Store.Mode != config.SheetsMode {
		writesPerMinute = 0
	}
	return NewInstrumented(backend, m, writesPerMinute), nil
}
