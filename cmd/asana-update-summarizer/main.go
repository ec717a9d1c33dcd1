package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lewinnovation/asana-update-summarizer/internal/asana"
	"github.com/lewinnovation/asana-update-summarizer/internal/config"
	"github.com/lewinnovation/asana-update-summarizer/internal/logging"
	"github.com/lewinnovation/asana-update-summarizer/internal/review"
	"github.com/lewinnovation/asana-update-summarizer/internal/ui"
)

var red = color.New(color.FgRed).SprintFunc()

var (
	flagMode         string
	flagFailFastPost bool
	flagNoClipboard  bool
	flagVerbose      bool
	flagBaseURL      string
)

var rootCmd = &cobra.Command{
	Use:   "asana-update-summarizer",
	Short: "Summarize today's Asana work as a Markdown table",
	Long: `asana-update-summarizer walks you through the tasks assigned to you that
changed in the last week: pick the ones you worked on today, give each a
status and a comment, optionally post the comment back to the task, and get
a Markdown summary table ready for the clipboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "review mode: sequential or batch")
	rootCmd.Flags().BoolVar(&flagFailFastPost, "fail-fast-post", false, "abort the run when posting a comment fails")
	rootCmd.Flags().BoolVar(&flagNoClipboard, "no-clipboard", false, "skip the clipboard export step")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to the log file")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "override the Asana API endpoint")
	_ = rootCmd.Flags().MarkHidden("base-url")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.WithOverrides(func(c *config.Config) {
		if cmd.Flags().Changed("mode") {
			c.ReviewMode = flagMode
		}
		if cmd.Flags().Changed("fail-fast-post") {
			c.FailFastPost = flagFailFastPost
		}
		if cmd.Flags().Changed("no-clipboard") {
			c.Clipboard = !flagNoClipboard
		}
		if cmd.Flags().Changed("verbose") {
			c.Verbose = flagVerbose
		}
		if cmd.Flags().Changed("base-url") {
			c.BaseURL = flagBaseURL
		}
	}))
	if err != nil {
		return err
	}

	logger := logging.NewComponentLogger("cli")
	asanaLogger := logging.NewComponentLogger("asana")
	if cfg.Verbose {
		logger.SetLevel(logging.DebugLevel)
		asanaLogger.SetLevel(logging.DebugLevel)
	}

	prompter, err := ui.NewPrompter()
	if err != nil {
		return err
	}

	if cfg.AccessToken == "" {
		token, err := prompter.InputSecret("Asana personal access token")
		if err != nil {
			return err
		}
		cfg.AccessToken = token
	}

	client, err := asana.NewClient(asana.Config{
		AccessToken: cfg.AccessToken,
		BaseURL:     cfg.BaseURL,
		Logger:      asanaLogger,
	})
	if err != nil {
		return err
	}

	var exporter review.Exporter
	if cfg.Clipboard {
		exporter = ui.ClipboardExporter{}
	}

	workflow := review.New(client, prompter, ui.NewDisplay(), exporter, logger, review.Options{
		Strategy:     review.Strategy(cfg.ReviewMode),
		FailFastPost: cfg.FailFastPost,
	})
	if _, err := workflow.Run(cmd.Context()); err != nil {
		return err
	}
	return nil
}

// main is the single error boundary: every failure below prints one
// diagnostic and exits non-zero.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+userMessage(err)))
		os.Exit(1)
	}
}

func userMessage(err error) string {
	if errors.Is(err, asana.ErrInvalidCredential) {
		return fmt.Sprintf("invalid credential (set ASANA_ACCESS_TOKEN): %v", err)
	}
	if errors.Is(err, ui.ErrNotInteractive) {
		return "this tool is interactive and needs a terminal"
	}
	return err.Error()
}
