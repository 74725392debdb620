// Package config provides configuration loading and validation for deploytrend.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	LogSources      []string           `yaml:"log_sources"`
	Marker          MarkerConfig       `yaml:"marker"`
	TimestampFormat TimestampConfig    `yaml:"timestamp_format"`
	Annotations     []AnnotationConfig `yaml:"annotations,omitempty"`
	Webhooks        []WebhookConfig    `yaml:"webhooks,omitempty"`
}

// MarkerConfig defines the sentinel line that opens a deployment notice.
type MarkerConfig struct {
	// Text must equal a line's content after trimming surrounding whitespace.
	Text string `yaml:"text"`

	// Lookahead is how many lines after the marker are searched for a timestamp.
	// The marker line itself is always searched first.
	Lookahead int `yaml:"lookahead"`
}

// TimestampConfig defines how to extract timestamps from history lines.
type TimestampConfig struct {
	// Pattern is a regex that captures the timestamp portion of a line.
	// Must contain at least one capture group.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout string for parsing the captured timestamp.
	// See https://pkg.go.dev/time#pkg-constants for format.
	Layout string `yaml:"layout"`

	// compiledPattern is the pre-compiled regex (populated during validation).
	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled regex pattern.
func (t *TimestampConfig) CompiledPattern() *regexp.Regexp {
	return t.compiledPattern
}

// AnnotationConfig labels a specific deployment in rendered output.
type AnnotationConfig struct {
	// At is the deployment timestamp, written in the timestamp layout.
	At string `yaml:"at"`

	// Label is the annotation text.
	Label string `yaml:"label"`

	// Offset is the display offset from the data point, in points.
	Offset OffsetConfig `yaml:"offset,omitempty"`

	// at is the parsed timestamp (populated during validation).
	at time.Time
}

// Time returns the parsed annotation timestamp.
func (a *AnnotationConfig) Time() time.Time {
	return a.at
}

// OffsetConfig is a 2D display offset.
type OffsetConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every successful analysis (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending analysis reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "always" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
