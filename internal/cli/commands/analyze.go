package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamus9/KSA-Version-History/pkg/analyzer"
	"github.com/jamus9/KSA-Version-History/pkg/config"
	"github.com/jamus9/KSA-Version-History/pkg/output"
	"github.com/jamus9/KSA-Version-History/pkg/parser"
	"github.com/jamus9/KSA-Version-History/pkg/webhook"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigFile string
	Output     string
	Since      string
	Until      string
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [history-file ...]",
		Short: "Extract deployments and fit a trend",
		Long: `Extract deployment timestamps from history files and fit a linear trend.

History files are taken from the arguments, then from log_sources in the
config file, then default to history.txt. Use - to read standard input.

Output formats:
  text - summary, fitted rate and the deployment list
  json - the full report
  csv  - timestamp,index,fit,annotation rows for plotting

Exit codes:
  0 - Report produced
  2 - Configuration or runtime error, including no deployments found`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Ignore deployments before this time (DD.MM.YYYY [HH:MM] or YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "Ignore deployments after this time (DD.MM.YYYY [HH:MM] or YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show sources, skipped annotations and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default()

	if opts.Verbose && opts.Quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(ctx, opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	webhooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	var analyzerOpts []analyzer.AnalyzerOption
	analyzerOpts = append(analyzerOpts, analyzer.WithLogger(logger))

	since, err := parseBound(opts.Since, cfg.TimestampFormat.Layout, false)
	if err != nil {
		return fmt.Errorf("invalid --since %q: %w", opts.Since, err)
	}
	until, err := parseBound(opts.Until, cfg.TimestampFormat.Layout, true)
	if err != nil {
		return fmt.Errorf("invalid --until %q: %w", opts.Until, err)
	}
	analyzerOpts = append(analyzerOpts, analyzer.WithTimeRange(since, until))

	a, err := analyzer.NewAnalyzer(cfg, analyzerOpts...)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	files, err := resolveSources(args, cfg)
	if err != nil {
		return err
	}

	docs, err := parser.ReadFiles(ctx, files)
	if err != nil {
		return err
	}

	result, err := a.Analyze(ctx, docs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, opts.ConfigFile)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but don't fail the analysis
	sendWebhooks(ctx, logger, webhooks, report)

	return nil
}

// resolveSources picks history files from the arguments, the config, or the default.
func resolveSources(args []string, cfg *config.Config) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.LogSources
	}
	if len(patterns) == 0 {
		patterns = []string{config.DefaultHistoryFile}
	}

	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, fmt.Errorf("expanding history sources: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no history files matched patterns: %v", patterns)
	}
	return files, nil
}

// parseBound parses a --since/--until value. Date-only values cover the whole
// day, so an inclusive upper bound moves to the last instant of that day.
func parseBound(value, layout string, upper bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, l := range []string{layout, time.RFC3339, "2006-01-02 15:04"} {
		if t, err := time.Parse(l, value); err == nil {
			return t.UTC(), nil
		}
	}

	for _, l := range []string{"02.01.2006", "2006-01-02"} {
		if t, err := time.Parse(l, value); err == nil {
			if upper {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, logger *slog.Logger, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logger.Info("webhook sent", "webhook", name, "status", resp.StatusCode, "duration", resp.Duration)
		} else {
			logger.Error("webhook failed", "webhook", name, "error", resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		switch trigger {
		case "":
			trigger = config.WebhookTriggerAlways
		case config.WebhookTriggerAlways, config.WebhookTriggerNever:
		default:
			return nil, fmt.Errorf("invalid --webhook-trigger %q (must be always or never)", opts.WebhookTrigger)
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks, nil
}

// shouldFireWebhook determines if a webhook should fire for its trigger.
func shouldFireWebhook(trigger config.WebhookTrigger) bool {
	return trigger != config.WebhookTriggerNever
}
