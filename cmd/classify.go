package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/classify"
	"github.com/iksnae/chat-transcripts/internal/export"
	"github.com/spf13/cobra"
)

var (
	classifyAll bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	keptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// keptReason labels sessions that survive filtering in --all listings
const keptReason = "kept"

var classifyCmd = &cobra.Command{
	Use:   "classify [input]",
	Short: "Show which sessions are excluded and why",
	Long: `Run the test-session and minimal-session heuristics and list every
session they exclude, with the rule that fired and what it matched.

Use --all to list kept sessions as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := resolveInput(args)
		if err != nil {
			return err
		}

		records, err := loadRecords(cmd, input)
		if err != nil {
			return err
		}

		sessions := internal.GroupSessions(records)
		flags := newClassifier().Exclusions(sessions)

		displayClassification(cmd, sessions, flags)
		return nil
	},
}

func displayClassification(cmd *cobra.Command, sessions []*internal.Session, flags classify.Flags) {
	out := cmd.OutOrStdout()

	header := fmt.Sprintf("Excluded %d of %d session(s)", len(flags), len(sessions))
	_, _ = fmt.Fprintln(out, headerStyle.Render(header))
	if len(sessions) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Date")+"\t"+titleStyle.Render("Reason")+"\t"+titleStyle.Render("Detail")+"\t"+titleStyle.Render("Opener"))

	for _, s := range sessions {
		flag, excluded := flags[s.ID]
		if !excluded && !classifyAll {
			continue
		}

		reason := keptStyle.Render(keptReason)
		detail := ""
		if excluded {
			reason = reasonStyle.Render(string(flag.Reason))
			detail = export.Truncate(flag.Detail, 30)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			idStyle.Render(s.ShortID()),
			dateStyle.Render(s.StartedAt.Format("2006-01-02 15:04")),
			reason,
			detail,
			export.Opener(s))
	}
	_ = w.Flush()

	counts := make([]string, 0, 4)
	for _, reason := range []classify.Reason{classify.ReasonKeyword, classify.ReasonDuplicate, classify.ReasonSharedWord, classify.ReasonMinimal} {
		if n := flags.Count(reason); n > 0 {
			counts = append(counts, fmt.Sprintf("%s: %d", reason, n))
		}
	}
	if len(counts) > 0 {
		_, _ = fmt.Fprintf(out, "\n%s\n", strings.Join(counts, ", "))
	}
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyAll, "all", false, "List kept sessions too")
}
