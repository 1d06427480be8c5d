// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hateclip/internal/hatena"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize hateclip against the Hatena Bookmark API",
	Long: `Auth runs the one-time OAuth authorization flow: it prints an
authorization URL, waits for the PIN code shown after you approve the
application, and exchanges it for a long-lived access token stored in the
token file. Subsequent commands reuse the stored token.`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().Bool("force", false, "re-authorize even if a token already exists")

	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	authCfg, err := authConfig()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		tok, err := hatena.LoadToken(authCfg.TokenFile)
		if err != nil {
			return err
		}
		if tok != nil {
			fmt.Printf("Token already present at %s. Use --force to re-authorize.\n", authCfg.TokenFile)
			return nil
		}
	}

	tok, err := hatena.NewAuthorizer(authCfg, os.Stdin, os.Stdout).Authorize()
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	if err := hatena.SaveToken(authCfg.TokenFile, tok); err != nil {
		return err
	}
	fmt.Printf("Access token saved to %s.\n", authCfg.TokenFile)
	return nil
}
