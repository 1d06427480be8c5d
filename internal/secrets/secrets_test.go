// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "hatena-consumer-key", "  ck_abc123  \n")
				writeFile(t, dir, "hatena-consumer-secret", "cs_xyz789")
				return dir
			},
			want: map[string]string{
				"hatena-consumer-key":    "ck_abc123",
				"hatena-consumer-secret": "cs_xyz789",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "hatena-consumer-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"hatena-consumer-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "hatena-consumer-key", "ck_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"hatena-consumer-key": "ck_real",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	loaded := map[string]string{"hatena-consumer-key": "from-file"}

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("HATECLIP_TEST_KEY", "from-env")
		assert.Equal(t, "from-env", Resolve(loaded, "hatena-consumer-key", "HATECLIP_TEST_KEY"))
	})

	t.Run("falls back to file", func(t *testing.T) {
		t.Setenv("HATECLIP_TEST_KEY", "")
		assert.Equal(t, "from-file", Resolve(loaded, "hatena-consumer-key", "HATECLIP_TEST_KEY"))
	})

	t.Run("empty when absent everywhere", func(t *testing.T) {
		assert.Equal(t, "", Resolve(loaded, "no-such-key", "HATECLIP_NO_SUCH_VAR"))
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
