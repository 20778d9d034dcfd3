package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/homepage"
)

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <src> <out>",
	Short: "Generate JPEG thumbnails for publication images",
	Long: `Thumbs walks src for PNG, JPEG and GIF images, scales anything wider than
480px down, and writes JPEG thumbnails under out with the same directory
layout and slugified file names.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		thumbs, err := homepage.GenerateThumbnails(args[0], args[1], cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range thumbs {
			fmt.Fprintf(out, "%s -> %s (%dx%d, %d bytes)\n", t.Source, t.Output, t.Width, t.Height, t.Size)
		}
		fmt.Fprintf(out, "%d thumbnails written to %s\n", len(thumbs), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thumbsCmd)
}
