package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/snapshot"
	"github.com/verdix/verdix/internal/store"
)

func makeExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy every table of the configured store into a tar.gz of CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "verdix-snapshot.tar.gz", "Snapshot path")

	return cmd
}

func export(ctx context.Context, out string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	rb, err := rubric.Load(conf.Scoring.Rubric, conf.Scoring.RubricFile)
	if err != nil {
		return err
	}

	schema := store.SchemaFor(conf, rb.Columns())
	s, err := store.Open(ctx, conf, log, nil, schema)
	if err != nil {
		return err
	}

	file, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "Failed to create snapshot")
	}
	defer file.Close()

	if err = snapshot.Export(ctx, s, schema, file); err != nil {
		return err
	}
	log.Info("Exported snapshot", zap.String("path", out))
	return file.Close()
}
