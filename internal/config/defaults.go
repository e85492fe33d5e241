package config

import (
	_ "embed"
)

//go:embed defaults/track.yaml
var defaultTrackYAML []byte

// DefaultTrackConfig returns the default track configuration.
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		Name:   "default",
		Frames: []int{30, 60, 90, 120, 150, 180},
		Arena: ArenaConfig{
			Width:  1088,
			Height: 1920,
		},
		Ball: BallConfig{
			Size:  100,
			Speed: 15,
		},
		Solver: SolverConfig{
			Strategy: "random",
		},
	}
}

// DefaultYAML returns the embedded default track YAML.
func DefaultYAML() []byte {
	return defaultTrackYAML
}
