package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 40, cfg.Viewer.CellSize)
	require.Equal(t, 150*time.Millisecond, cfg.Fill.Delay)
	require.Equal(t, "clues", cfg.Source.Table)
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xwgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  path: data/crossword_2022_07_03.csv
viewer:
  cell_size: 32
fill:
  delay: 25ms
  auto_start: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "data/crossword_2022_07_03.csv", cfg.Source.Path)
	require.Equal(t, "clues", cfg.Source.Table)
	require.Equal(t, 32, cfg.Viewer.CellSize)
	require.Equal(t, 500, cfg.Viewer.RightPanelWidth)
	require.Equal(t, 25*time.Millisecond, cfg.Fill.Delay)
	require.True(t, cfg.Fill.AutoStart)
}

func TestNormalizeClamps(t *testing.T) {
	cfg := Config{
		Viewer: ViewerConfig{CellSize: 2, RightPanelWidth: -1, ButtonHeight: 0, Padding: -5, MinHeight: -1},
		Fill:   FillConfig{Delay: -time.Second},
	}
	cfg.Normalize()
	require.Equal(t, 16, cfg.Viewer.CellSize)
	require.Equal(t, 200, cfg.Viewer.RightPanelWidth)
	require.Equal(t, 30, cfg.Viewer.ButtonHeight)
	require.Equal(t, 0, cfg.Viewer.Padding)
	require.Equal(t, 0, cfg.Viewer.MinHeight)
	require.Equal(t, 20, cfg.Viewer.ScrollSpeed)
	require.Equal(t, time.Duration(0), cfg.Fill.Delay)
	require.NotEmpty(t, cfg.Viewer.Title)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewer: [unterminated"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.yaml")
}
