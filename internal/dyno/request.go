package dyno

import (
	"fmt"
	"strconv"
	"strings"
)

// Daemon operation names, carried as the "fn" discriminator in every
// request payload.
const (
	FnStatus     = "getStatus"
	FnVersion    = "getVersion"
	FnTrace      = "setKinetOnDemandRequest"
	FnDcgmPause  = "dcgmProfPause"
	FnDcgmResume = "dcgmProfResume"
)

// StatusRequest asks the daemon for its runtime state.
type StatusRequest struct {
	Fn string `json:"fn"`
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{Fn: FnStatus}
}

// VersionRequest asks the daemon for its build version.
type VersionRequest struct {
	Fn string `json:"fn"`
}

func NewVersionRequest() VersionRequest {
	return VersionRequest{Fn: FnVersion}
}

// TraceRequest asks the daemon to start an on-demand GPU trace. Config is
// the rendered KEY=VALUE block; its newlines become literal \n sequences
// during JSON encoding, which is what the daemon expects.
type TraceRequest struct {
	Fn           string  `json:"fn"`
	Config       string  `json:"config"`
	JobID        uint64  `json:"job_id"`
	PIDs         []int64 `json:"pids"`
	ProcessLimit int     `json:"process_limit"`
}

func NewTraceRequest(config string, jobID uint64, pids []int64, processLimit int) TraceRequest {
	return TraceRequest{
		Fn:           FnTrace,
		Config:       config,
		JobID:        jobID,
		PIDs:         pids,
		ProcessLimit: processLimit,
	}
}

// DcgmPauseRequest asks the daemon to pause DCGM profiling so tools like
// Nsight Compute can claim the GPU counters.
type DcgmPauseRequest struct {
	Fn        string `json:"fn"`
	DurationS int    `json:"duration_s"`
}

func NewDcgmPauseRequest(durationS int) DcgmPauseRequest {
	return DcgmPauseRequest{Fn: FnDcgmPause, DurationS: durationS}
}

// DcgmResumeRequest asks the daemon to resume DCGM profiling.
type DcgmResumeRequest struct {
	Fn string `json:"fn"`
}

func NewDcgmResumeRequest() DcgmResumeRequest {
	return DcgmResumeRequest{Fn: FnDcgmResume}
}

// ParsePIDs converts the comma-separated PID list accepted on the command
// line into the integer array the daemon expects. Empty entries are
// rejected rather than skipped so a stray comma surfaces as an error.
func ParsePIDs(value string) ([]int64, error) {
	parts := strings.Split(value, ",")
	pids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			return nil, fmt.Errorf("pid list %q contains an empty entry", value)
		}
		pid, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("pid %q is not an integer", trimmed)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
