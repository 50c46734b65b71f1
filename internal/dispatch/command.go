package dispatch

import (
	"time"

	"dynoctl/internal/dyno"
	"dynoctl/internal/kineto"
)

// Command is one daemon operation ready to send.
type Command interface {
	// Name identifies the operation in logs and the history ledger.
	Name() string
	// Payload returns the request object the session encodes.
	Payload() any
	// Finish inspects the daemon response and fills command-specific
	// outcome fields. It fails when the response lacks the shape the
	// operation promises.
	Finish(doc dyno.Document, outcome *Outcome) error
}

// Outcome is the structured result of one successful exchange.
type Outcome struct {
	Host      string
	Operation string
	Response  dyno.Document
	Elapsed   time.Duration

	// Trace results. MatchedPIDs lists the processes the daemon will
	// profile and OutputFiles their derived trace paths. NoMatch marks the
	// informational case where the filter matched nothing; the exchange
	// still counts as a success.
	MatchedPIDs []int64
	OutputFiles []string
	NoMatch     bool
}

// StatusCommand asks a daemon for its runtime state.
type StatusCommand struct{}

func (StatusCommand) Name() string { return "status" }

func (StatusCommand) Payload() any { return dyno.NewStatusRequest() }

func (StatusCommand) Finish(dyno.Document, *Outcome) error { return nil }

// VersionCommand asks a daemon for its build version.
type VersionCommand struct{}

func (VersionCommand) Name() string { return "version" }

func (VersionCommand) Payload() any { return dyno.NewVersionRequest() }

func (VersionCommand) Finish(dyno.Document, *Outcome) error { return nil }

// TraceCommand asks a daemon to start an on-demand GPU trace.
type TraceCommand struct {
	Config       kineto.Config
	JobID        uint64
	PIDs         []int64
	ProcessLimit int
}

func (c TraceCommand) Name() string { return "gputrace" }

func (c TraceCommand) Payload() any {
	return dyno.NewTraceRequest(c.Config.String(), c.JobID, c.PIDs, c.ProcessLimit)
}

func (c TraceCommand) Finish(doc dyno.Document, outcome *Outcome) error {
	pids, err := doc.MatchedProcesses()
	if err != nil {
		return err
	}
	outcome.MatchedPIDs = pids
	if len(pids) == 0 {
		outcome.NoMatch = true
		return nil
	}
	outcome.OutputFiles = make([]string, 0, len(pids))
	for _, pid := range pids {
		outcome.OutputFiles = append(outcome.OutputFiles, kineto.OutputFile(c.Config.LogFile, pid))
	}
	return nil
}

// DcgmPauseCommand pauses DCGM profiling for a fixed number of seconds.
type DcgmPauseCommand struct {
	DurationS int
}

func (c DcgmPauseCommand) Name() string { return "dcgm-pause" }

func (c DcgmPauseCommand) Payload() any { return dyno.NewDcgmPauseRequest(c.DurationS) }

func (DcgmPauseCommand) Finish(dyno.Document, *Outcome) error { return nil }

// DcgmResumeCommand resumes DCGM profiling.
type DcgmResumeCommand struct{}

func (DcgmResumeCommand) Name() string { return "dcgm-resume" }

func (DcgmResumeCommand) Payload() any { return dyno.NewDcgmResumeRequest() }

func (DcgmResumeCommand) Finish(dyno.Document, *Outcome) error { return nil }
