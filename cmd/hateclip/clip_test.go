// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClipTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	cmd := &cobra.Command{Use: "clip"}
	registerClipFlags(cmd)
	return cmd
}

func TestClipConfigFromFlags_Defaults(t *testing.T) {
	cmd := newClipTestCommand(t)

	cfg := clipConfigFromFlags(cmd)

	assert.Equal(t, "obsidian", cfg.Tag)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1*time.Second, cfg.FetchDelay)
	assert.True(t, cfg.DeleteAfterClip)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.SaveDir)
}

func TestClipConfigFromFlags_ConfigFileValues(t *testing.T) {
	cmd := newClipTestCommand(t)
	viper.Set("clip.tag", "clippings")
	viper.Set("clip.save_dir", "/vault")
	viper.Set("clip.delete_after_clip", false)

	cfg := clipConfigFromFlags(cmd)

	assert.Equal(t, "clippings", cfg.Tag)
	assert.Equal(t, "/vault", cfg.SaveDir)
	assert.False(t, cfg.DeleteAfterClip)
}

func TestClipConfigFromFlags_FlagsWinOverConfig(t *testing.T) {
	cmd := newClipTestCommand(t)
	viper.Set("clip.tag", "fromconfig")
	viper.Set("clip.save_dir", "/fromconfig")

	require.NoError(t, cmd.Flags().Set("tag", "fromflag"))
	require.NoError(t, cmd.Flags().Set("save-dir", "/fromflag"))
	require.NoError(t, cmd.Flags().Set("delete-bookmark", "false"))
	require.NoError(t, cmd.Flags().Set("dryrun", "true"))
	require.NoError(t, cmd.Flags().Set("timeout", "10s"))
	require.NoError(t, cmd.Flags().Set("delay", "2s"))

	cfg := clipConfigFromFlags(cmd)

	assert.Equal(t, "fromflag", cfg.Tag)
	assert.Equal(t, "/fromflag", cfg.SaveDir)
	assert.False(t, cfg.DeleteAfterClip)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Second, cfg.FetchDelay)
}

func TestArchiveConfigFromFlags(t *testing.T) {
	cmd := newClipTestCommand(t)

	cfg := archiveConfigFromFlags(cmd)
	assert.Equal(t, "archive", cfg.ArchiveDir)

	require.NoError(t, cmd.Flags().Set("archive-dir", "/elsewhere"))
	cfg = archiveConfigFromFlags(cmd)
	assert.Equal(t, "/elsewhere", cfg.ArchiveDir)
}

func TestAuthConfig_MissingCredentials(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HATENA_CONSUMER_KEY", "")
	t.Setenv("HATENA_CONSUMER_SECRET", "")
	loadedSecrets = map[string]string{}

	_, err := authConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing consumer credentials")
}

func TestAuthConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HATENA_CONSUMER_KEY", "ck_env")
	t.Setenv("HATENA_CONSUMER_SECRET", "cs_env")
	loadedSecrets = map[string]string{}

	cfg, err := authConfig()
	require.NoError(t, err)
	assert.Equal(t, "ck_env", cfg.ConsumerKey)
	assert.Equal(t, "cs_env", cfg.ConsumerSecret)
	assert.Equal(t, defaultTokenFile, cfg.TokenFile)
}
