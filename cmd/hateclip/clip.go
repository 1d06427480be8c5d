// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hateclip/internal/archive"
	"github.com/pdiddy/hateclip/internal/clip"
	"github.com/pdiddy/hateclip/internal/convert"
	"github.com/pdiddy/hateclip/internal/fetch"
	"github.com/pdiddy/hateclip/internal/hatena"
	"github.com/pdiddy/hateclip/pkg/types"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Fetch tagged bookmarks, convert them, and write notes",
	Long: `Clip runs the full pipeline: list bookmarks carrying the target tag,
download each page, convert it to Markdown, and write one note per bookmark
into the save directory. Successfully written bookmarks are recorded in the
archive and, unless disabled, deleted from the service.

With --dryrun nothing is written, recorded, or deleted.`,
	RunE: runClip,
}

// registerClipFlags installs the pipeline flags; shared with tests.
func registerClipFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", `tag to process (default "obsidian")`)
	cmd.Flags().String("save-dir", "", "vault directory for generated notes")
	cmd.Flags().Bool("dryrun", false, "simulate the run without writing files or deleting bookmarks")
	cmd.Flags().Bool("delete-bookmark", true, "delete each bookmark after its note is written")
	cmd.Flags().Duration("delay", 0, "delay between consecutive page fetches (default 1s)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().String("archive-dir", "", `archive directory (default "archive")`)
	cmd.Flags().Bool("no-archive", false, "skip the clip archive entirely")
}

func init() {
	registerClipFlags(clipCmd)
	rootCmd.AddCommand(clipCmd)
}

// clipConfigFromFlags merges flag, config file, and default values.
// Explicit flags win over the config file.
func clipConfigFromFlags(cmd *cobra.Command) types.ClipConfig {
	cfg := types.ClipConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("clip.timeout"),
			UserAgent: defaultUserAgent,
		},
		Tag:             viper.GetString("clip.tag"),
		SaveDir:         viper.GetString("clip.save_dir"),
		DeleteAfterClip: true,
		FetchDelay:      viper.GetDuration("clip.fetch_delay"),
	}
	if viper.IsSet("clip.delete_after_clip") {
		cfg.DeleteAfterClip = viper.GetBool("clip.delete_after_clip")
	}

	if cmd.Flags().Changed("tag") {
		cfg.Tag, _ = cmd.Flags().GetString("tag")
	}
	if cmd.Flags().Changed("save-dir") {
		cfg.SaveDir, _ = cmd.Flags().GetString("save-dir")
	}
	if cmd.Flags().Changed("delete-bookmark") {
		cfg.DeleteAfterClip, _ = cmd.Flags().GetBool("delete-bookmark")
	}
	if cmd.Flags().Changed("delay") {
		cfg.FetchDelay, _ = cmd.Flags().GetDuration("delay")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	cfg.DryRun, _ = cmd.Flags().GetBool("dryrun")

	if cfg.Tag == "" {
		cfg.Tag = defaultTag
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.FetchDelay == 0 {
		cfg.FetchDelay = defaultDelay
	}
	return cfg
}

func archiveConfigFromFlags(cmd *cobra.Command) types.ArchiveConfig {
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
	return cfg
}

func runClip(cmd *cobra.Command, args []string) error {
	authCfg, err := authConfig()
	if err != nil {
		return err
	}

	cfg := clipConfigFromFlags(cmd)
	if cfg.SaveDir == "" {
		return fmt.Errorf("save directory required: set --save-dir, clip.save_dir in the config file, or HATECLIP_CLIP_SAVE_DIR")
	}

	session, err := newSession(authCfg, cfg.Timeout)
	if err != nil {
		return err
	}
	client := hatena.NewClient(session, cfg.HTTPConfig)

	ctx := cmd.Context()
	bookmarks, err := client.SearchByTag(ctx, cfg.Tag)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Fprintf(os.Stdout, "No bookmarks found for tag %q.\n", cfg.Tag)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Found %d bookmark(s) for tag %q.\n", len(bookmarks), cfg.Tag)

	deps := clip.Deps{
		Fetcher:   fetch.NewClient(cfg.HTTPConfig),
		Converter: convert.HTMLConverter{},
		Deleter:   client,
		Now:       time.Now,
	}

	// The archive is opened only for runs that may write: a dry run must
	// not create the database either.
	noArchive, _ := cmd.Flags().GetBool("no-archive")
	if !cfg.DryRun && !noArchive {
		store, err := archive.NewStore(archiveConfigFromFlags(cmd))
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Archive = store
	}

	result := clip.Batch(ctx, deps, bookmarks, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d bookmark(s) failed", result.Failed)
	}
	return nil
}
