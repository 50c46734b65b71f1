package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dynoctl/internal/dispatch"
)

func newDcgmCommand(ctx *commandContext) *cobra.Command {
	dcgmCmd := &cobra.Command{
		Use:   "dcgm",
		Short: "Control DCGM profiling on a daemon",
	}

	dcgmCmd.AddCommand(newDcgmPauseCommand(ctx))
	dcgmCmd.AddCommand(newDcgmResumeCommand(ctx))

	return dcgmCmd
}

func newDcgmPauseCommand(ctx *commandContext) *cobra.Command {
	var durationS int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause DCGM profiling so tools like Nsight Compute can run",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := dispatch.DcgmPauseCommand{DurationS: durationS}
			return ctx.runSingleHost(cmd, command, func(cmd *cobra.Command, outcome dispatch.Outcome) error {
				if asJSON {
					return writeDocument(cmd, outcome.Response)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Requested DCGM pause for %ds on %s\n", durationS, outcome.Host)
				fmt.Fprintln(out, outcome.Response.Pretty())
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&durationS, "duration-s", 300, "Duration to pause DCGM profiling in seconds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw response document")
	return cmd
}

func newDcgmResumeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume DCGM profiling",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runSingleHost(cmd, dispatch.DcgmResumeCommand{}, func(cmd *cobra.Command, outcome dispatch.Outcome) error {
				if asJSON {
					return writeDocument(cmd, outcome.Response)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Requested DCGM resume on %s\n", outcome.Host)
				fmt.Fprintln(out, outcome.Response.Pretty())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw response document")
	return cmd
}
