package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/scorer"
	"github.com/verdix/verdix/internal/snapshot"
	"github.com/verdix/verdix/internal/store"
)

func makeReplayCommand() *cobra.Command {
	var path, track string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rank the teams of a snapshot offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(cmd.Context(), path, track)
		},
	}
	cmd.Flags().StringVar(&path, "snapshot", "verdix-snapshot.tar.gz", "Snapshot path")
	cmd.Flags().StringVar(&track, "track", "", "Only rank the teams of this track")

	return cmd
}

func replay(ctx context.Context, path, track string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	rb, err := rubric.Load(conf.Scoring.Rubric, conf.Scoring.RubricFile)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "Failed to open snapshot")
	}
	defer file.Close()

	memory, err := snapshot.Load(ctx, file, store.SchemaFor(conf, rb.Columns()))
	if err != nil {
		return err
	}

	leaderboard, err := scorer.NewScorer(memory, conf.Store.Tables.Scores, rb.Columns(), nil, log).Leaderboard(ctx, track)
	if errors.Is(err, scorer.ErrNoScores) {
		printLeaderboard(os.Stdout, nil)
		return nil
	}
	if err != nil {
		return err
	}

	printLeaderboard(os.Stdout, leaderboard)
	return nil
}
