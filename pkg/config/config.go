package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config at path, or validated defaults when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating default config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors, compiles the timestamp
// pattern and parses annotation timestamps.
func Validate(cfg *Config) error {
	if err := validateMarker(&cfg.Marker); err != nil {
		return fmt.Errorf("marker: %w", err)
	}

	if err := validateTimestampFormat(&cfg.TimestampFormat); err != nil {
		return fmt.Errorf("timestamp_format: %w", err)
	}

	seen := make(map[string]bool)
	for i := range cfg.Annotations {
		ann := &cfg.Annotations[i]
		if err := validateAnnotation(ann, cfg.TimestampFormat.Layout); err != nil {
			return fmt.Errorf("annotations[%d] (%s): %w", i, ann.Label, err)
		}
		if seen[ann.At] {
			return fmt.Errorf("annotations[%d] (%s): duplicate timestamp %q", i, ann.Label, ann.At)
		}
		seen[ann.At] = true
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateMarker(m *MarkerConfig) error {
	if strings.TrimSpace(m.Text) == "" {
		return errors.New("text is required")
	}
	// Markers are compared against trimmed lines, so store them trimmed too.
	m.Text = strings.TrimSpace(m.Text)

	if m.Lookahead < 0 || m.Lookahead > MaxLookahead {
		return fmt.Errorf("lookahead must be between 0 and %d, got %d", MaxLookahead, m.Lookahead)
	}

	return nil
}

func validateTimestampFormat(tf *TimestampConfig) error {
	if tf.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err := regexp.Compile(tf.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 1 {
		return errors.New("pattern must have at least one capture group for the timestamp")
	}

	tf.compiledPattern = re

	if tf.Layout == "" {
		return errors.New("layout is required")
	}

	return nil
}

func validateAnnotation(ann *AnnotationConfig, layout string) error {
	if ann.Label == "" {
		return errors.New("label is required")
	}
	if ann.At == "" {
		return errors.New("at is required")
	}

	at, err := time.Parse(layout, ann.At)
	if err != nil {
		return fmt.Errorf("invalid at: %w", err)
	}
	ann.at = at.UTC()

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerAlways
	case WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be always or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
