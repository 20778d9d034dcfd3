package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/homepage"
	"github.com/eringen/homepage/views"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch star and view counts once and store them",
	Long: `Refresh queries GitHub and Bilibili for every repository and video named
in the fixtures, writes the results to the counter store and prints the
current counters as JSON. Failed lookups keep their previous value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app := homepage.New(cfg, views.Default())
		if err := app.Init(); err != nil {
			return err
		}
		defer app.Close()

		counters := app.RefreshCounters(cmd.Context())
		out, err := json.MarshalIndent(counters, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding counters: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
