package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"dynoctl/internal/dyno"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeDocument prints a daemon response document as indented JSON,
// falling back to the raw bytes when they refuse to re-indent.
func writeDocument(cmd *cobra.Command, doc dyno.Document) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), doc.Pretty())
	return err
}
