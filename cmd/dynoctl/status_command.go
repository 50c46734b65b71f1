package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dynoctl/internal/dispatch"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the status of a dynolog daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runSingleHost(cmd, dispatch.StatusCommand{}, func(cmd *cobra.Command, outcome dispatch.Outcome) error {
				if asJSON {
					return writeDocument(cmd, outcome.Response)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Daemon %s:\n", outcome.Host)
				fields, err := outcome.Response.Fields()
				if err != nil || len(fields) == 0 {
					fmt.Fprintln(out, outcome.Response.Pretty())
					return nil
				}

				rows := make([][]string, 0, len(fields))
				for _, field := range fields {
					rows = append(rows, []string{field.Key, field.Value})
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw response document")
	return cmd
}
