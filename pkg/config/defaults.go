package config

import (
	"os"
	"strings"
	"time"

	"github.com/jamus9/KSA-Version-History/pkg/parser"
)

// Default values for configuration.
const (
	DefaultMarker           = "DeployBot"
	DefaultLookahead        = 5
	MaxLookahead            = 100
	DefaultHistoryFile      = "history.txt"
	DefaultWebhookTimeout   = 10 * time.Second
	DefaultTimestampPattern = parser.DefaultTimestampPattern
	DefaultTimestampLayout  = parser.DefaultTimestampLayout
)

// Environment variable names.
const (
	EnvLogSources      = "DEPLOYTREND_LOG_SOURCES"
	EnvMarker          = "DEPLOYTREND_MARKER"
	EnvTimestampLayout = "DEPLOYTREND_TIMESTAMP_LAYOUT"
)

// DefaultAnnotations returns the milestone deployments labelled on the KSA chart.
func DefaultAnnotations() []AnnotationConfig {
	return []AnnotationConfig{
		{At: "10.12.2025 05:15", Label: "Ground Clutter", Offset: OffsetConfig{X: 0, Y: -100}},
		{At: "30.01.2026 02:50", Label: "Planetary Rings", Offset: OffsetConfig{X: -50, Y: -100}},
		{At: "12.11.2025 14:44", Label: "Kittens", Offset: OffsetConfig{X: 0, Y: -50}},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		Marker: MarkerConfig{
			Text:      DefaultMarker,
			Lookahead: DefaultLookahead,
		},
		TimestampFormat: TimestampConfig{
			Pattern: DefaultTimestampPattern,
			Layout:  DefaultTimestampLayout,
		},
		Annotations: DefaultAnnotations(),
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvLogSources); sources != "" {
		c.LogSources = c.LogSources[:0]
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.LogSources = append(c.LogSources, s)
			}
		}
	}

	if marker := os.Getenv(EnvMarker); marker != "" {
		c.Marker.Text = marker
	}

	if layout := os.Getenv(EnvTimestampLayout); layout != "" {
		c.TimestampFormat.Layout = layout
	}
}
