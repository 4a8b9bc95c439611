package store

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/verdix/verdix/internal/models"
)

// DataBaseStore keeps every table in one append-only sheet_rows relation.
type DataBaseStore struct {
	db     *gorm.DB
	schema Schema
}

func OpenDataBase(logger *zap.Logger, dsn string, schema Schema) (*DataBaseStore, error) {
	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return nil, errors.Wrap(err, "Invalid database DSN")
	}

	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open database")
	}

	if err = db.AutoMigrate(&models.SheetRow{}); err != nil {
		return nil, errors.Wrap(err, "Failed to migrate database")
	}

	return &DataBaseStore{db: db, schema: schema}, nil
}

func (d *DataBaseStore) Append(ctx context.Context, table string, values []interface{}) error {
	if _, err := d.schema.Header(table); err != nil {
		return err
	}
	row := &models.SheetRow{Sheet: table, Cells: models.CellStrings(values)}
	if err := d.db.WithContext(ctx).Create(row).Error; err != nil {
		return errors.Wrapf(err, "Failed to append row to %s", table)
	}
	return nil
}

func (d *DataBaseStore) ReadAll(ctx context.Context, table string) ([]models.Row, error) {
	header, err := d.schema.Header(table)
	if err != nil {
		return nil, err
	}

	stored := make([]models.SheetRow, 0)
	if err = d.db.WithContext(ctx).Where("sheet = ?", table).Order("id").Find(&stored).Error; err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s", table)
	}

	rows := make([]models.Row, 0, len(stored))
	for _, row := range stored {
		rows = append(rows, models.MakeRow(header, row.Cells))
	}
	return rows, nil
}

func (d *DataBaseStore) Tables(ctx context.Context) ([]string, error) {
	if err := d.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return nil, errors.Wrap(err, "Failed to reach database")
	}
	tables := make([]string, 0, len(d.schema))
	for table := range d.schema {
		tables = append(tables, table)
	}
	return tables, nil
}
