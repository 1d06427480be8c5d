// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hateclip CLI: it clips Hatena
// bookmarks tagged with a chosen label into Markdown notes in a local
// vault.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hateclip/internal/hatena"
	"github.com/pdiddy/hateclip/internal/secrets"
	"github.com/pdiddy/hateclip/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTag       = "obsidian"
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "hateclip/0.2"
	defaultTokenFile = "tokens.yaml"
	defaultArchive   = "archive"
)

// rootCmd is the base command for the hateclip CLI.
var rootCmd = &cobra.Command{
	Use:   "hateclip",
	Short: "Clip tagged Hatena bookmarks into a Markdown vault",
	Long: `hateclip fetches Hatena Bookmark entries tagged with a chosen label,
converts the linked pages to Markdown, and writes one note per bookmark
into a local vault directory. Processed bookmarks can be deleted from the
service, and every clip is recorded in a local archive.

Run "hateclip auth" once to authorize the application, then "hateclip clip"
to process bookmarks. "list" previews tagged bookmarks without side
effects; "history" queries the archive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first so it can feed both viper and the secrets overrides.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hateclip.yaml or ~/.config/hateclip/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hateclip")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hateclip"))
		}
	}

	viper.SetEnvPrefix("HATECLIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// authConfig assembles the OAuth application credentials. Missing
// credentials are a configuration error; nothing touches the network
// before this check passes.
func authConfig() (types.AuthConfig, error) {
	cfg := types.AuthConfig{
		ConsumerKey:    secrets.Resolve(loadedSecrets, "hatena-consumer-key", "HATENA_CONSUMER_KEY"),
		ConsumerSecret: secrets.Resolve(loadedSecrets, "hatena-consumer-secret", "HATENA_CONSUMER_SECRET"),
		TokenFile:      viper.GetString("auth.token_file"),
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile
	}
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return cfg, fmt.Errorf("missing consumer credentials: put hatena-consumer-key and hatena-consumer-secret in .secrets/, or set HATENA_CONSUMER_KEY and HATENA_CONSUMER_SECRET")
	}
	return cfg, nil
}

// newSession loads the persisted access token (running the interactive
// authorization flow when none exists) and returns a signed HTTP client.
func newSession(authCfg types.AuthConfig, timeout time.Duration) (*http.Client, error) {
	tok, err := hatena.EnsureToken(authCfg, os.Stdin, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return hatena.NewSession(authCfg, tok, timeout), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
