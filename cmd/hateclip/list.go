// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hateclip/internal/hatena"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks carrying the target tag",
	Long: `List queries the bookmark search API for entries carrying the target
tag and prints them. It has no side effects: nothing is fetched, written,
or deleted.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("tag", "", `tag to list (default "obsidian")`)
	listCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	authCfg, err := authConfig()
	if err != nil {
		return err
	}

	cfg := clipConfigFromFlags(cmd)

	session, err := newSession(authCfg, cfg.Timeout)
	if err != nil {
		return err
	}
	client := hatena.NewClient(session, cfg.HTTPConfig)

	bookmarks, err := client.SearchByTag(cmd.Context(), cfg.Tag)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Printf("No bookmarks found for tag %q.\n", cfg.Tag)
		return nil
	}

	for _, bm := range bookmarks {
		title := bm.Title
		if title == "" {
			title = "(no title)"
		}
		fmt.Printf("%s  %s\n    %s", bm.EID, title, bm.URL)
		if len(bm.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(bm.Tags, ", "))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d bookmark(s) tagged %q.\n", len(bookmarks), cfg.Tag)
	return nil
}
