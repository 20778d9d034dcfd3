// Package main is the homepage command: it serves the site, refreshes the
// cached counters, scaffolds new sites and generates thumbnails.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/homepage"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "homepage",
	Short: "Personal academic homepage server",
	Long: `homepage renders publications, projects, awards and games from JSON
fixtures into a bilingual personal site, and keeps GitHub star counts and
Bilibili view counts fresh in a local SQLite store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "homepage.yaml", "config file (YAML); HOMEPAGE_* environment variables override it")
}

// loadConfig reads the file named by --config.
func loadConfig(cmd *cobra.Command) (homepage.SiteConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := homepage.LoadConfig(path)
	if err != nil {
		return homepage.SiteConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
