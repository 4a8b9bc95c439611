package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func makeCountdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left for registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			countdown, err := client.LoadCountdown()
			if err != nil {
				return err
			}

			if countdown.Remaining.Expired {
				fmt.Println("Registration is officially closed.")
				return nil
			}
			fmt.Printf("%s (%s) until %s\n", countdown.Remaining, countdown.Humanized, countdown.Deadline)
			return nil
		},
	}
}
