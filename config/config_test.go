package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"move_time: 250ms\nsessions: 8\nevaluator_url: http://localhost:5000/evaluate\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.MoveTime)
	require.Equal(t, 8, cfg.Sessions)
	require.Equal(t, "http://localhost:5000/evaluate", cfg.EvaluatorURL)
	require.Equal(t, Default().Workers, cfg.Workers, "Unset keys keep their defaults")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("move_time: [not a duration\n"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
}
