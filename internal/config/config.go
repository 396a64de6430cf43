package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Threshold modes for the event detector
const (
	ModeSingle     = "single"
	ModeHysteresis = "hysteresis"
)

// ConfigurationError reports an invalid configuration value. Configuration
// errors are fatal at startup, before any video is touched.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Config holds all application configuration
type Config struct {
	// Core settings
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`

	// Detection settings
	Detection DetectionConfig `yaml:"detection"`

	// Clip assembly settings
	Clips ClipConfig `yaml:"clips"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
}

// DetectionConfig controls per-frame motion scoring and event detection.
type DetectionConfig struct {
	// ThresholdMode selects the detector policy: "single" or "hysteresis".
	ThresholdMode string `yaml:"threshold_mode"`
	// Threshold is the motion fraction bound for single mode, in [0,1].
	Threshold float64 `yaml:"threshold"`
	// ThresholdMax triggers an event in hysteresis mode; ThresholdMin sustains it.
	ThresholdMax float64 `yaml:"threshold_max"`
	ThresholdMin float64 `yaml:"threshold_min"`
	// FrameSkip processes every Nth decoded frame.
	FrameSkip int `yaml:"frame_skip"`

	// MOG2 background subtractor tunables.
	// https://docs.opencv.org/4.x/d7/d7b/classcv_1_1BackgroundSubtractorMOG2.html
	HistoryFrames int     `yaml:"history_frames"`
	VarThreshold  float64 `yaml:"var_threshold"`
	DetectShadows bool    `yaml:"detect_shadows"`
}

// ClipConfig controls how raw motion events become output clips.
type ClipConfig struct {
	MinDuration  float64 `yaml:"min_duration"`  // seconds, shorter clips are dropped
	MergeGap     float64 `yaml:"merge_gap"`     // seconds, events closer than this merge
	BufferBefore float64 `yaml:"buffer_before"` // seconds of context before motion
	BufferAfter  float64 `yaml:"buffer_after"`  // seconds of context after motion
	Thumbnails   bool    `yaml:"thumbnails"`    // write a JPEG thumbnail per clip
}

type FFmpegConfig struct {
	Threads int `yaml:"threads"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration and returns a ConfigurationError for the
// first invalid value found.
func (c *Config) Validate() error {
	d := c.Detection

	switch d.ThresholdMode {
	case ModeSingle:
		if d.Threshold < 0 || d.Threshold > 1 {
			return &ConfigurationError{"detection.threshold", "must be a fraction in [0,1]"}
		}
	case ModeHysteresis:
		if d.ThresholdMax < 0 || d.ThresholdMax > 1 {
			return &ConfigurationError{"detection.threshold_max", "must be a fraction in [0,1]"}
		}
		if d.ThresholdMin < 0 || d.ThresholdMin > 1 {
			return &ConfigurationError{"detection.threshold_min", "must be a fraction in [0,1]"}
		}
		if d.ThresholdMin >= d.ThresholdMax {
			return &ConfigurationError{"detection.threshold_min", "must be below threshold_max"}
		}
	default:
		return &ConfigurationError{"detection.threshold_mode", `must be "single" or "hysteresis"`}
	}

	if d.FrameSkip < 1 {
		return &ConfigurationError{"detection.frame_skip", "must be a positive integer"}
	}
	if d.HistoryFrames < 1 {
		return &ConfigurationError{"detection.history_frames", "must be a positive integer"}
	}
	if d.VarThreshold <= 0 {
		return &ConfigurationError{"detection.var_threshold", "must be positive"}
	}

	for field, v := range map[string]float64{
		"clips.min_duration":  c.Clips.MinDuration,
		"clips.merge_gap":     c.Clips.MergeGap,
		"clips.buffer_before": c.Clips.BufferBefore,
		"clips.buffer_after":  c.Clips.BufferAfter,
	} {
		if v < 0 {
			return &ConfigurationError{field, "must not be negative"}
		}
	}

	if c.Workers < 1 {
		return &ConfigurationError{"workers", "must be a positive integer"}
	}

	return nil
}

func defaultConfig() *Config {
	return &Config{
		InputDir:  "./videos/inputs",
		OutputDir: "./videos/outputs",
		Workers:   1,
		Detection: DetectionConfig{
			ThresholdMode: ModeHysteresis,
			Threshold:     0.02,
			ThresholdMax:  0.05,
			ThresholdMin:  0.01,
			FrameSkip:     10,
			HistoryFrames: 500,
			VarThreshold:  50,
			DetectShadows: false,
		},
		Clips: ClipConfig{
			MinDuration:  5.0,
			MergeGap:     5.0,
			BufferBefore: 2.0,
			BufferAfter:  2.0,
			Thumbnails:   false,
		},
		FFmpeg: FFmpegConfig{
			Threads: 0,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./motioncut.yaml",
		"./motioncut.yml",
		filepath.Join(os.Getenv("HOME"), ".motioncut", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
