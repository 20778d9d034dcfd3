package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/homepage"
	"github.com/eringen/homepage/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new homepage site directory",
	Long: `New writes homepage.yaml, sample fixtures for every section and a starter
static directory into dir. The directory must not exist yet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		url, _ := cmd.Flags().GetString("url")
		return runNew(cmd, args[0], author, url)
	},
}

func init() {
	newCmd.Flags().String("author", "Your Name", "author name used in the sample fixtures and JSON-LD")
	newCmd.Flags().String("url", "", "canonical site URL")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, dir, author, url string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}
	out := cmd.OutOrStdout()
	name := toTitle(filepath.Base(dir))
	fmt.Fprintf(out, "Creating new homepage site: %s\n\n", dir)

	written, err := scaffold.Generate(dir, scaffold.Data{SiteName: name, Author: author})
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintf(out, "  created %s\n", p)
	}

	cfg := homepage.SiteConfig{
		Name:        name,
		URL:         url,
		Description: name + " - publications, projects, awards and games",
		Author:      author,
	}
	cfgPath := filepath.Join(dir, "homepage.yaml")
	if err := cfg.WithDefaults().Save(cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "  created %s\n", cfgPath)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  homepage serve")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit data/*.json to add your own records.")
	fmt.Fprintln(out, "Set session_secret in homepage.yaml (or HOMEPAGE_SESSION_SECRET) for production.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-site" -> "My Site"
func toTitle(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	if len(parts) == 0 {
		return "Homepage"
	}
	return strings.Join(parts, " ")
}
