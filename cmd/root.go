package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/export"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	clientID   string
	month      string
	timezone   string
	triggers   []string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	appConfig internal.Config
)

var (
	summary     bool
	outputPath  string
	includeTest bool
	format      string
)

// rootCmd renders transcripts when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "chat-transcripts <input>",
	Short: "Generate readable transcripts from widget chat log exports",
	Long: `Generate transcripts or a summary table from chat_logs exports.

The input is a CSV export of the chat_logs table, a SQLite snapshot created
with 'chat-transcripts import', or a postgres:// connection string. When no
input is given, DATABASE_URL is used.

Developer test sessions and sessions with a single trivial message are left
out unless --include-test is set. Use 'chat-transcripts classify' to see what
was excluded and why.

Examples:
  chat-transcripts chat_logs.csv                     # full transcripts
  chat-transcripts chat_logs.csv --summary           # summary table
  chat-transcripts chat_logs.csv -o out.txt          # write to file
  chat-transcripts chat_logs.csv --month 2026-02     # one month only
  chat-transcripts chat_logs.csv --include-test      # keep test sessions`,
	Args:          cobra.MaximumNArgs(1),
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if timezone != "" {
			cfg.Timezone = timezone
			if _, err := cfg.Location(); err != nil {
				return err
			}
		}
		appConfig = cfg
		return nil
	},
	RunE: runTranscripts,
}

func runTranscripts(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(args)
	if err != nil {
		return err
	}

	renderer, err := export.NewRenderer(format, summary)
	if err != nil {
		return err
	}

	var records []internal.ChatRecord
	var sessions []*internal.Session
	steps := []internal.ProgressStep{
		{
			Message: "Loading chat logs",
			Fn: func() error {
				var err error
				records, err = loadRecords(cmd, input)
				return err
			},
		},
		{
			Message: "Excluding test and minimal sessions",
			Fn: func() error {
				if includeTest {
					internal.LogDebug("Keeping test sessions (--include-test)")
				} else {
					excluded := newClassifier().Exclusions(internal.GroupSessions(records))
					records = internal.ExcludeSessions(records, excluded.Set())
				}
				sessions = internal.GroupSessions(records)
				return nil
			},
		},
	}
	if err := internal.RunSteps(cmd.ErrOrStderr(), steps); err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No matching sessions found.")
		return nil
	}

	return writeOutput(cmd, renderer, sessions)
}

func writeOutput(cmd *cobra.Command, renderer export.Renderer, sessions []*internal.Session) error {
	if outputPath == "" {
		if err := renderer.Render(sessions, cmd.OutOrStdout()); err != nil {
			return &internal.ExportError{Format: format, Path: "stdout", Err: err}
		}
		return nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return &internal.ExportError{Format: format, Path: outputPath, Err: err}
	}

	if err := renderer.Render(sessions, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: format, Path: outputPath, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: format, Path: outputPath, Err: err}
	}

	internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Written to %s", outputPath))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		internal.LogWarn("Failed to load .env: %v", err)
	}
	defer internal.SyncLogger()

	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		internal.SyncLogger()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $"+internal.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "Only include rows for this client_id")
	rootCmd.PersistentFlags().StringVar(&month, "month", "", "Only include rows from this month (YYYY-MM)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "Show times in this IANA time zone (default: as exported)")
	rootCmd.PersistentFlags().StringSliceVar(&triggers, "trigger", nil, "Trigger term marking test sessions (repeatable, replaces the defaults)")

	rootCmd.Flags().BoolVar(&summary, "summary", false, "Show a summary table instead of full transcripts")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.Flags().BoolVar(&includeTest, "include-test", false, "Include developer test and minimal sessions")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format ("+strings.Join(export.Formats, ", ")+")")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
