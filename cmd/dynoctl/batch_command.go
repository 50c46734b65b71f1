package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dynoctl/internal/dispatch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var hosts []string
	var asJSON bool

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run one command on multiple hosts concurrently",
	}

	flags := batchCmd.PersistentFlags()
	flags.StringSliceVar(&hosts, "hosts", nil, "Hosts to run the command on (repeatable or comma separated, port optional)")
	flags.BoolVar(&asJSON, "json", false, "Emit a JSON report")

	batchCmd.AddCommand(newBatchGputraceCommand(ctx, &hosts, &asJSON))
	batchCmd.AddCommand(newBatchStatusCommand(ctx, &hosts, &asJSON))
	batchCmd.AddCommand(newBatchVersionCommand(ctx, &hosts, &asJSON))

	return batchCmd
}

func newBatchGputraceCommand(ctx *commandContext, hosts *[]string, asJSON *bool) *cobra.Command {
	opts := &gputraceOptions{}

	cmd := &cobra.Command{
		Use:   "gputrace",
		Short: "Capture a GPU trace on every host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts.applyConfigDefaults(cmd, cfg)
			command, err := opts.command()
			if err != nil {
				return err
			}

			if !*asJSON {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Kineto config:")
				fmt.Fprintln(out, command.Config.String())
			}

			return ctx.runBatch(cmd, *hosts, command, batchRenderer(*asJSON))
		},
	}

	registerGputraceFlags(cmd, opts)
	return cmd
}

func newBatchStatusCommand(ctx *commandContext, hosts *[]string, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check daemon status on every host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runBatch(cmd, *hosts, dispatch.StatusCommand{}, batchRenderer(*asJSON))
		},
	}
}

func newBatchVersionCommand(ctx *commandContext, hosts *[]string, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Check daemon versions on every host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runBatch(cmd, *hosts, dispatch.VersionCommand{}, batchRenderer(*asJSON))
		},
	}
}

func batchRenderer(asJSON bool) func(*cobra.Command, dispatch.Report) error {
	return func(cmd *cobra.Command, report dispatch.Report) error {
		if asJSON {
			return writeJSON(cmd, batchJSONReport(report))
		}
		printBatchReport(cmd, report)
		return nil
	}
}

func printBatchReport(cmd *cobra.Command, report dispatch.Report) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, []string{
			result.Host,
			colorizeOutcome(batchOutcomeLabel(result), colorize),
			formatElapsed(result.Outcome.Elapsed),
			truncateDetail(batchDetail(result), 72),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Host", "Outcome", "Elapsed", "Detail"}, rows, 3))
	fmt.Fprintf(out, "%d/%d hosts succeeded (batch %s)\n", report.Succeeded(), len(report.Results), report.ID)
}

func batchOutcomeLabel(result dispatch.Result) string {
	switch {
	case result.Err != nil:
		return outcomeFailed
	case result.Outcome.NoMatch:
		return outcomeNoMatch
	default:
		return outcomeOK
	}
}

func batchDetail(result dispatch.Result) string {
	if result.Err != nil {
		return result.Err.Error()
	}
	if result.Outcome.NoMatch {
		return "no processes matched"
	}
	if n := len(result.Outcome.MatchedPIDs); n > 0 {
		return fmt.Sprintf("%d processes matched", n)
	}
	if version, ok := result.Outcome.Response.String("version"); ok {
		return "version " + version
	}
	return ""
}

func batchJSONReport(report dispatch.Report) map[string]any {
	results := make([]map[string]any, 0, len(report.Results))
	for _, result := range report.Results {
		entry := map[string]any{
			"host":    result.Host,
			"outcome": batchOutcomeLabel(result),
		}
		if result.Err != nil {
			entry["error"] = result.Err.Error()
		}
		if len(result.Outcome.MatchedPIDs) > 0 {
			entry["matched_pids"] = result.Outcome.MatchedPIDs
		}
		if len(result.Outcome.OutputFiles) > 0 {
			entry["output_files"] = result.Outcome.OutputFiles
		}
		results = append(results, entry)
	}
	return map[string]any{
		"batch_id":  report.ID,
		"operation": report.Operation,
		"succeeded": report.Succeeded(),
		"failed":    len(report.Failed()),
		"results":   results,
	}
}
