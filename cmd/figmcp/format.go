package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// OutputFormat selects how one-shot commands print results
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON, FormatHuman:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("invalid format %q (valid: json, human)", s)
}

// writeOutput prints v as indented JSON, or through human for FormatHuman.
func writeOutput(cmd *cobra.Command, format string, v any, human func(w io.Writer)) error {
	f, err := parseOutputFormat(format)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if f == FormatHuman {
		human(w)
		return nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("format output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
