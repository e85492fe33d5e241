package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNormalize(t *testing.T) {
	cfg := TrackConfig{
		Name:     "test",
		Frames:   []int{30, -5, 0, 10, 10, 200},
		MaxFrame: 100,
	}

	require.NoError(t, cfg.Normalize())
	assert.Equal(t, []int{10, 30}, cfg.Frames)
}

func TestNormalizeUncapped(t *testing.T) {
	cfg := TrackConfig{Frames: []int{500, 100, 300}}

	require.NoError(t, cfg.Normalize())
	assert.Equal(t, []int{100, 300, 500}, cfg.Frames)
}

func TestNormalizeEmpty(t *testing.T) {
	cfg := TrackConfig{Name: "silent", Frames: []int{0, -1}}
	assert.Error(t, cfg.Normalize())
}

func TestSimConfigDerivations(t *testing.T) {
	cfg := TrackConfig{
		Arena: ArenaConfig{Width: 100, Height: 200},
		Ball:  BallConfig{Size: 10, Speed: 5},
	}

	sc := cfg.SimConfig()
	assert.Equal(t, 45.0, sc.BallStartX, "unset start centers the ball")
	assert.Equal(t, 95.0, sc.BallStartY)
	assert.Equal(t, 5.0, sc.PlatformShort, "short extent derives from ball size")
	assert.Equal(t, 20.0, sc.PlatformLong)
}

func TestSimConfigExplicitValues(t *testing.T) {
	cfg := TrackConfig{
		Arena:    ArenaConfig{Width: 100, Height: 200},
		Ball:     BallConfig{Size: 10, Speed: 5, StartX: 7, StartY: 9},
		Platform: PlatformConfig{Short: 3, Long: 12},
	}

	sc := cfg.SimConfig()
	assert.Equal(t, 7.0, sc.BallStartX)
	assert.Equal(t, 9.0, sc.BallStartY)
	assert.Equal(t, 3.0, sc.PlatformShort)
	assert.Equal(t, 12.0, sc.PlatformLong)
}

func TestLoadTrackCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunrise.yaml")
	body := `
frames: [10, 20, 30]
arena:
  width: 500
  height: 800
ball:
  size: 20
  speed: 4
solver:
  strategy: alternate
  seed: 99
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadTrack(path)
	require.NoError(t, err)
	assert.Equal(t, "sunrise", cfg.Name, "name derives from the file name when unset")
	assert.Equal(t, []int{10, 20, 30}, cfg.Frames)
	assert.Equal(t, 500.0, cfg.Arena.Width)
	assert.Equal(t, "alternate", cfg.Solver.Strategy)
	assert.Equal(t, uint64(99), cfg.Solver.Seed)
}

func TestLoadTrackExplicitName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nframes: [5]\n"), 0o644))

	cfg, err := LoadTrack(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Name)
}

func TestLoadTrackMissingFile(t *testing.T) {
	_, err := LoadTrack(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultYAMLParses(t *testing.T) {
	var cfg TrackConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	require.NoError(t, cfg.Normalize())

	assert.NotEmpty(t, cfg.Frames)
	assert.Positive(t, cfg.Arena.Width)
	assert.Positive(t, cfg.Ball.Size)
	assert.Positive(t, cfg.Ball.Speed)
}

func TestDefaultTrackConfig(t *testing.T) {
	cfg := DefaultTrackConfig()
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, "random", cfg.Solver.Strategy)
}
