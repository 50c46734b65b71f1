package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dynoctl/internal/dispatch"
)

func newVersionCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Check the version of a dynolog daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runSingleHost(cmd, dispatch.VersionCommand{}, func(cmd *cobra.Command, outcome dispatch.Outcome) error {
				if asJSON {
					return writeDocument(cmd, outcome.Response)
				}

				out := cmd.OutOrStdout()
				if version, ok := outcome.Response.String("version"); ok {
					fmt.Fprintf(out, "Daemon %s reports version %s\n", outcome.Host, version)
					return nil
				}
				fmt.Fprintln(out, outcome.Response.Pretty())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw response document")
	return cmd
}
