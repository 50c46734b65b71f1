// Package kineto renders the on-demand profiling configuration consumed by
// the tracing daemon's Kineto integration.
//
// The daemon hands the configuration to the profiler verbatim as a
// newline-joined KEY=VALUE block, so rendering is part of the wire contract:
// key order is fixed and identical inputs always produce byte-identical
// output. A Config combines the trace log destination, a trigger policy
// (duration-based or iteration-based, never both), and the capture flag set.
//
// Nothing in this package performs I/O. The dispatch layer embeds the
// rendered block in the trace request payload and the daemon echoes back the
// process IDs it matched; OutputFile maps those back to per-process trace
// paths.
package kineto
