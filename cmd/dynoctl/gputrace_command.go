package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dynoctl/internal/config"
	"dynoctl/internal/dispatch"
	"dynoctl/internal/dyno"
	"dynoctl/internal/kineto"
)

// gputraceOptions collects the trace flags shared by the single-host
// command and the batch subcommand.
type gputraceOptions struct {
	jobID        uint64
	pids         string
	durationMS   uint64
	iterations   int64
	logFile      string
	startTime    uint64
	startRoundup uint64
	processLimit int

	recordShapes  bool
	profileMemory bool
	withStacks    bool
	withFlops     bool
	withModules   bool
}

func registerGputraceFlags(cmd *cobra.Command, opts *gputraceOptions) {
	flags := cmd.Flags()
	flags.Uint64Var(&opts.jobID, "job-id", 0, "Job id of the application to trace")
	flags.StringVar(&opts.pids, "pids", "0", "Comma-separated pids to capture a trace for")
	flags.Uint64Var(&opts.durationMS, "duration-ms", 500, "Duration of trace to collect in ms")
	flags.Int64Var(&opts.iterations, "iterations", -1, "Training iterations to collect, takes precedence over duration")
	flags.StringVar(&opts.logFile, "log-file", "", "Trace destination on the traced host (defaults to the configured path)")
	flags.Uint64Var(&opts.startTime, "profile-start-time", 0, "Unix timestamp for synchronized collection, in ms since epoch")
	flags.Uint64Var(&opts.startRoundup, "profile-start-iteration-roundup", 1, "Start an iteration based trace at a multiple of this value")
	flags.IntVar(&opts.processLimit, "process-limit", 3, "Max number of processes to profile")
	flags.BoolVar(&opts.recordShapes, "record-shapes", false, "Record PyTorch operator input shapes and types")
	flags.BoolVar(&opts.profileMemory, "profile-memory", false, "Profile PyTorch memory")
	flags.BoolVar(&opts.withStacks, "with-stacks", false, "Capture Python stacks in traces")
	flags.BoolVar(&opts.withFlops, "with-flops", false, "Annotate operators with analytical flops")
	flags.BoolVar(&opts.withModules, "with-modules", false, "Capture PyTorch operator modules in traces")
}

// applyConfigDefaults substitutes configured trace defaults for flags the
// operator left untouched.
func (o *gputraceOptions) applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("duration-ms") && cfg.Trace.DurationMS > 0 {
		o.durationMS = uint64(cfg.Trace.DurationMS)
	}
	if !flags.Changed("process-limit") && cfg.Trace.ProcessLimit > 0 {
		o.processLimit = cfg.Trace.ProcessLimit
	}
	if strings.TrimSpace(o.logFile) == "" {
		o.logFile = cfg.Trace.LogFile
	}
}

func (o *gputraceOptions) command() (dispatch.TraceCommand, error) {
	if strings.TrimSpace(o.logFile) == "" {
		return dispatch.TraceCommand{}, errors.New("a trace log file is required (--log-file or [trace] log_file)")
	}
	pids, err := dyno.ParsePIDs(o.pids)
	if err != nil {
		return dispatch.TraceCommand{}, err
	}
	return dispatch.TraceCommand{
		Config: kineto.Config{
			LogFile: o.logFile,
			Trigger: kineto.SelectTrigger(o.iterations, o.startRoundup, o.startTime, o.durationMS),
			Flags: kineto.Flags{
				RecordShapes:  o.recordShapes,
				ProfileMemory: o.profileMemory,
				WithStacks:    o.withStacks,
				WithFlops:     o.withFlops,
				WithModules:   o.withModules,
			},
		},
		JobID:        o.jobID,
		PIDs:         pids,
		ProcessLimit: o.processLimit,
	}, nil
}

func newGputraceCommand(ctx *commandContext) *cobra.Command {
	opts := &gputraceOptions{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "gputrace",
		Short: "Capture an on-demand GPU trace",
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

			if !asJSON {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Kineto config:")
				fmt.Fprintln(out, command.Config.String())
			}

			return ctx.runSingleHost(cmd, command, func(cmd *cobra.Command, outcome dispatch.Outcome) error {
				if asJSON {
					return writeJSON(cmd, gputraceReport(outcome))
				}
				printTraceOutcome(cmd.OutOrStdout(), outcome)
				return nil
			})
		},
	}

	registerGputraceFlags(cmd, opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON report")
	return cmd
}

func printTraceOutcome(out io.Writer, outcome dispatch.Outcome) {
	if outcome.NoMatch {
		fmt.Fprintln(out, "No processes were matched, please check --job-id or --pids flags")
		return
	}
	fmt.Fprintf(out, "Matched %d processes\n", len(outcome.MatchedPIDs))
	fmt.Fprintln(out, "Trace output files will be written to:")
	for _, file := range outcome.OutputFiles {
		fmt.Fprintf(out, "    %s\n", file)
	}
}

func gputraceReport(outcome dispatch.Outcome) map[string]any {
	matched := outcome.MatchedPIDs
	if matched == nil {
		matched = []int64{}
	}
	files := outcome.OutputFiles
	if files == nil {
		files = []string{}
	}
	return map[string]any{
		"host":         outcome.Host,
		"matched_pids": matched,
		"output_files": files,
		"no_match":     outcome.NoMatch,
	}
}
