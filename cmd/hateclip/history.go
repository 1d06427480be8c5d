// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hateclip/internal/archive"
	"github.com/pdiddy/hateclip/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "Query the archive of clipped bookmarks",
	Long: `History searches the local clip archive. Without a query it lists the
most recent clips; with a query it runs full-text search over the archived
note content. --tag narrows results to clips that carried the tag.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("tag", "", "only show clips that carried this tag")
	historyCmd.Flags().Int("limit", 0, "maximum number of results (default 20)")
	historyCmd.Flags().String("archive-dir", "", `archive directory (default "archive")`)

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := types.ArchiveConfig{
		ArchiveDir: viper.GetString("archive.archive_dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
	if cmd.Flags().Changed("archive-dir") {
		cfg.ArchiveDir, _ = cmd.Flags().GetString("archive-dir")
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = defaultArchive
	}

	store, err := archive.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := archive.QueryOptions{Query: strings.Join(args, " ")}
	opts.Tag, _ = cmd.Flags().GetString("tag")
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	clips, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if len(clips) == 0 {
		fmt.Println("No archived clips match.")
		return nil
	}

	for _, c := range clips {
		fmt.Printf("%s  %s\n", c.ClippedAt.Format("2006-01-02"), c.Title)
		fmt.Printf("    %s\n", c.URL)
		fmt.Printf("    note: %s", c.NotePath)
		if len(c.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(c.Tags, ", "))
		}
		fmt.Println()
	}
	return nil
}
