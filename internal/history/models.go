package history

import (
	"time"

	"dynoctl/internal/dispatch"
)

// Outcome classifies how an exchange ended.
type Outcome string

const (
	// OutcomeOK marks a successful exchange.
	OutcomeOK Outcome = "ok"
	// OutcomeNoMatch marks a trace request whose filter matched no process.
	OutcomeNoMatch Outcome = "no-match"
	// OutcomeError marks a failed exchange.
	OutcomeError Outcome = "error"
)

// Record is one persisted daemon exchange.
type Record struct {
	ID        int64
	CreatedAt time.Time
	Operation string
	Host      string
	BatchID   string
	Request   string
	Response  string
	Outcome   Outcome
	Error     string
	Elapsed   time.Duration
}

// FromResult converts a dispatch result into a ledger record. requestJSON
// is the encoded payload that was (or would have been) sent; batchID is
// empty for single-host commands.
func FromResult(result dispatch.Result, requestJSON, batchID string) Record {
	record := Record{
		CreatedAt: time.Now().UTC(),
		Operation: result.Outcome.Operation,
		Host:      result.Host,
		BatchID:   batchID,
		Request:   requestJSON,
		Elapsed:   result.Outcome.Elapsed,
	}

	switch {
	case result.Err != nil:
		record.Outcome = OutcomeError
		record.Error = result.Err.Error()
	case result.Outcome.NoMatch:
		record.Outcome = OutcomeNoMatch
		record.Response = string(result.Outcome.Response.Raw())
	default:
		record.Outcome = OutcomeOK
		record.Response = string(result.Outcome.Response.Raw())
	}
	return record
}
