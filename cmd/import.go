package cmd

import (
	"fmt"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/spf13/cobra"
)

var (
	importReplace bool
)

// importCmd snapshots a CSV export into SQLite
var importCmd = &cobra.Command{
	Use:   "import <csv> <sqlite-db>",
	Short: "Import a chat_logs CSV export into a SQLite snapshot",
	Long: `Import a chat_logs CSV export into a local SQLite database.

The snapshot can be passed to chat-transcripts in place of the CSV. Rows are
appended unless --replace is set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, dbPath := args[0], args[1]

		records, err := internal.LoadCSVFile(csvPath)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("No rows found in %s", csvPath))
		}

		db, err := internal.CreateDatabase(dbPath)
		if err != nil {
			return &internal.SourceError{Source: dbPath, Op: "open", Err: err}
		}
		defer db.Close()

		storage := internal.NewStorage(db, dbPath)
		save := storage.SaveRecords
		if importReplace {
			save = storage.ReplaceRecords
		}
		if err := save(records); err != nil {
			return &internal.SourceError{Source: dbPath, Op: "write", Err: err}
		}
		if importReplace {
			internal.PrintInfo(cmd.ErrOrStderr(), fmt.Sprintf("Replaced existing rows in %s", dbPath))
		}

		total, err := storage.CountRecords()
		if err != nil {
			return &internal.SourceError{Source: dbPath, Op: "count", Err: err}
		}

		internal.LogInfo("Imported %d record(s) from %s", len(records), csvPath)
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Imported %d record(s) into %s (%d total)", len(records), dbPath, total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Remove existing rows before importing")
}
