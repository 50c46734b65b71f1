// Package dispatch issues daemon commands to one host or to a fleet.
//
// A Command pairs a request payload with the logic that reads the daemon's
// answer; Invoker runs one command against one normalized endpoint over a
// fresh session. RunBatch fans the same command out to many hosts with
// bounded concurrency, collects per-host results in submission order, and
// remembers the first failure to complete so a batch exits non-zero exactly
// when at least one host failed.
//
// Rendering stays out of this package: outcomes carry structured data and
// the command layer decides how to print it.
package dispatch
