package kineto

import (
	"fmt"
	"strings"
)

// Trigger is the policy that decides when the profiler starts and stops
// collecting. Exactly two implementations exist, DurationTrigger and
// IterationTrigger; the daemon accepts only those two shapes.
type Trigger interface {
	appendConfig(b *strings.Builder)
}

// DurationTrigger collects for a fixed wall-clock window.
type DurationTrigger struct {
	// StartTime is the synchronized start timestamp handed to every host in
	// a batch so their capture windows line up. Zero lets the daemon start
	// as soon as the request lands.
	StartTime uint64

	// DurationMS is the capture window in milliseconds.
	DurationMS uint64
}

func (t DurationTrigger) appendConfig(b *strings.Builder) {
	fmt.Fprintf(b, "PROFILE_START_TIME=%d\nACTIVITIES_DURATION_MSECS=%d", t.StartTime, t.DurationMS)
}

// IterationTrigger collects across a fixed number of training iterations,
// starting at the next iteration boundary rounded up to StartRoundup.
type IterationTrigger struct {
	StartRoundup uint64
	Iterations   int64
}

func (t IterationTrigger) appendConfig(b *strings.Builder) {
	fmt.Fprintf(b, "PROFILE_START_ITERATION=0\nPROFILE_START_ITERATION_ROUNDUP=%d\nACTIVITIES_ITERATIONS=%d", t.StartRoundup, t.Iterations)
}

// SelectTrigger picks the trigger policy from the raw request knobs: a
// positive iteration count selects iteration-based collection and takes
// precedence over the duration settings.
func SelectTrigger(iterations int64, startRoundup, startTime, durationMS uint64) Trigger {
	if iterations > 0 {
		return IterationTrigger{StartRoundup: startRoundup, Iterations: iterations}
	}
	return DurationTrigger{StartTime: startTime, DurationMS: durationMS}
}

// Flags mirrors Kineto's optional capture features. Every flag is rendered
// whether set or not; the profiler treats a missing key the same as false
// but the daemon's contract spells all five out.
type Flags struct {
	RecordShapes  bool
	ProfileMemory bool
	WithStacks    bool
	WithFlops     bool
	WithModules   bool
}

func (f Flags) appendConfig(b *strings.Builder) {
	fmt.Fprintf(b, "\nPROFILE_REPORT_INPUT_SHAPES=%t", f.RecordShapes)
	fmt.Fprintf(b, "\nPROFILE_PROFILE_MEMORY=%t", f.ProfileMemory)
	fmt.Fprintf(b, "\nPROFILE_WITH_STACK=%t", f.WithStacks)
	fmt.Fprintf(b, "\nPROFILE_WITH_FLOPS=%t", f.WithFlops)
	fmt.Fprintf(b, "\nPROFILE_WITH_MODULES=%t", f.WithModules)
}

// Config is one complete on-demand trace configuration.
type Config struct {
	// LogFile is the path on the traced host where Kineto writes the trace.
	// The daemon appends the matched PID before the extension; see
	// OutputFile.
	LogFile string

	Trigger Trigger
	Flags   Flags
}

// String renders the KEY=VALUE block the daemon forwards to the profiler.
// The caller is responsible for escaping when embedding the result in a
// JSON payload.
func (c Config) String() string {
	var b strings.Builder
	b.WriteString("ACTIVITIES_LOG_FILE=")
	b.WriteString(c.LogFile)
	b.WriteByte('\n')
	c.Trigger.appendConfig(&b)
	c.Flags.appendConfig(&b)
	return b.String()
}
