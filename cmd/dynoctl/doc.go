// Package main hosts the dynoctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into framed
// JSON exchanges with dynolog monitoring daemons: status and version probes,
// on-demand GPU trace requests, DCGM profiling pause/resume, and concurrent
// multi-host batches. It centralizes configuration resolution, endpoint
// defaults, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
