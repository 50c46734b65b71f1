// Package history persists a local ledger of daemon exchanges.
//
// Every command appends one record per contacted host: the operation, the
// request payload, the response or error, and timing. The ledger is a
// best-effort convenience; writers log and move on when it is unavailable
// so a broken database never blocks a trace request.
//
// Storage is SQLite in WAL mode under the configured history directory,
// guarded by a lock file so concurrent dynoctl invocations queue up instead
// of tripping over each other.
package history
