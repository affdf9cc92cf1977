package cmd

import (
	"errors"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/classify"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("an input file is required (or set " + internal.EnvDatabaseURL + ")")

// resolveInput returns the positional input, falling back to the configured
// database URL
func resolveInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if appConfig.DatabaseURL != "" {
		return appConfig.DatabaseURL, nil
	}
	return "", errNoInput
}

// loadRecords loads input and applies the time zone, client and month filters
func loadRecords(cmd *cobra.Command, input string) ([]internal.ChatRecord, error) {
	var monthFilter *internal.Month
	if month != "" {
		m, err := internal.ParseMonth(month)
		if err != nil {
			return nil, err
		}
		monthFilter = &m
	}

	loc, err := appConfig.Location()
	if err != nil {
		return nil, err
	}

	records, err := internal.LoadRecords(cmd.Context(), input, clientID)
	if err != nil {
		return nil, err
	}
	records = internal.InLocation(records, loc)

	if clientID != "" {
		records = internal.FilterByClient(records, clientID)
		internal.LogDebug("%d record(s) for client %s", len(records), clientID)
	}
	if monthFilter != nil {
		records = internal.FilterByMonth(records, *monthFilter)
		internal.LogDebug("%d record(s) in %s", len(records), monthFilter)
	}

	return records, nil
}

// newClassifier builds the classifier from config, with --trigger taking precedence
func newClassifier() *classify.Classifier {
	opts := classify.Options{
		TriggerTerms:       appConfig.TriggerTerms,
		CommonWords:        appConfig.CommonWords,
		DuplicateMinLength: appConfig.DuplicateMinLength,
		MinimalMaxLength:   appConfig.MinimalMaxLength,
	}
	if len(triggers) > 0 {
		opts.TriggerTerms = triggers
	}
	return classify.New(opts)
}
