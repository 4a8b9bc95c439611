package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verdix/verdix/internal/scorer"
)

func makeDumpLeaderboardCommand() *cobra.Command {
	var track string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Dump the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpLeaderboard(track)
		},
	}
	cmd.Flags().StringVar(&track, "track", "", "Only rank the teams of this track")

	return cmd
}

func dumpLeaderboard(track string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	leaderboard, err := client.LoadLeaderboard(track)
	if err != nil {
		return err
	}

	printLeaderboard(os.Stdout, leaderboard)
	return nil
}

func printLeaderboard(w io.Writer, leaderboard *scorer.Leaderboard) {
	if leaderboard == nil || len(leaderboard.Entries) == 0 {
		fmt.Fprintln(w, "Waiting for the first scores to come in...")
		return
	}
	for _, entry := range leaderboard.Entries {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", humanize.Ordinal(entry.Rank), entry.TeamName, entry.MeanTotal, entry.Submissions)
	}
}

func makeDumpTeamsCommand() *cobra.Command {
	var track string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Dump registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpTeams(track)
		},
	}
	cmd.Flags().StringVar(&track, "track", "", "Only list the teams of this track")

	return cmd
}

func dumpTeams(track string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	teams, err := client.LoadTeams(track)
	if err != nil {
		return err
	}

	for _, team := range teams {
		fmt.Printf("%s\t%s\t%s\t%s\n", team.Name, team.Track, team.Stage, strings.Join(team.Industries, ", "))
	}
	return nil
}
