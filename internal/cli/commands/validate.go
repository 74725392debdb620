package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamus9/KSA-Version-History/pkg/config"
	"github.com/jamus9/KSA-Version-History/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a deploytrend configuration file without running analysis.

Checks:
  - YAML syntax
  - Marker text and lookahead range
  - Timestamp pattern and layout
  - Annotation timestamps against the layout
  - Webhook URLs and triggers
  - History file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Marker:      %q (+%d lines)\n", cfg.Marker.Text, cfg.Marker.Lookahead)
	fmt.Fprintf(out, "  Timestamp:   %s\n", cfg.TimestampFormat.Layout)
	fmt.Fprintf(out, "  Annotations: %d\n", len(cfg.Annotations))
	fmt.Fprintf(out, "  Webhooks:    %d\n", len(cfg.Webhooks))

	for i, ann := range cfg.Annotations {
		fmt.Fprintf(out, "  %d. %s at %s\n", i+1, ann.Label, ann.At)
	}

	// Check if history sources exist (warnings only)
	if len(cfg.LogSources) == 0 {
		fmt.Fprintf(out, "\nNo log_sources configured; analyze will use its arguments or %s\n", config.DefaultHistoryFile)
		return nil
	}

	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding log source patterns: %v\n", err)
		return nil
	}

	// ExpandGlobs keeps unmatched patterns as literal paths.
	var found, missing []string
	for _, f := range files {
		if f == parser.StdinSource {
			found = append(found, f)
			continue
		}
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
			continue
		}
		found = append(found, f)
	}

	fmt.Fprintf(out, "\nHistory files matched: %d\n", len(found))
	for _, f := range found {
		fmt.Fprintf(out, "  - %s\n", f)
	}
	for _, f := range missing {
		fmt.Fprintf(out, "Warning: No history file matches %s\n", f)
	}

	return nil
}
