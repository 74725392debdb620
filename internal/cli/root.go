// Package cli provides the command-line interface for deploytrend.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamus9/KSA-Version-History/internal/cli/commands"
	"github.com/jamus9/KSA-Version-History/internal/logging"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 2
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// RootOptions holds flags shared by every command.
type RootOptions struct {
	LogLevel  string
	LogFormat string
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	rootCmd := &cobra.Command{
		Use:   "deploytrend",
		Short: "Measure deployment cadence from chat history",
		Long: `deploytrend reads a chat history export and measures how often deployments happen.

Each deployment notice starts with a marker line (DeployBot by default). The
timestamp (DD.MM.YYYY HH:MM) is taken from the marker line or one of the five
lines after it. Repeated notices are counted once, and a least-squares line
of cumulative deployments against time gives the deploys-per-day rate.

Reports can be printed as text, JSON or CSV (for plotting) and posted to webhooks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logging.Init(cmd.ErrOrStderr(), opts.LogFormat, logging.ParseLevel(opts.LogLevel))
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", logging.FormatText, "Log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
