package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"dynoctl/internal/logging"
)

// Result is one host's contribution to a batch run.
type Result struct {
	Host    string
	Outcome Outcome
	Err     error
}

// Report aggregates a batch run. Results holds every host in submission
// order; FirstErr is the error of the first host whose exchange completed
// unsuccessfully, or nil when every host succeeded.
type Report struct {
	ID        string
	Operation string
	Results   []Result
	FirstErr  error
}

// Failed returns the results whose exchange errored, in submission order.
func (r Report) Failed() []Result {
	var failed []Result
	for _, result := range r.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// Succeeded counts the hosts whose exchange completed without error.
func (r Report) Succeeded() int {
	return len(r.Results) - len(r.Failed())
}

// BatchError is the aggregate failure of a batch run. It wraps the first
// per-host error in completion order and is the only error a finished
// batch surfaces to callers.
type BatchError struct {
	BatchID string
	Failed  int
	Total   int
	Err     error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d hosts failed: %v", e.Failed, e.Total, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Err returns nil when every host succeeded, otherwise a *BatchError
// wrapping the first failure in completion order.
func (r Report) Err() error {
	if r.FirstErr == nil {
		return nil
	}
	return &BatchError{
		BatchID: r.ID,
		Failed:  len(r.Failed()),
		Total:   len(r.Results),
		Err:     r.FirstErr,
	}
}

// RunBatch fans the command out to every host and waits for all of them.
// concurrency caps how many exchanges run at once; zero runs every host in
// parallel. One host's failure never stops the others.
func (inv *Invoker) RunBatch(ctx context.Context, hosts []string, command Command, concurrency int) Report {
	report := Report{
		ID:        uuid.NewString(),
		Operation: command.Name(),
		Results:   make([]Result, len(hosts)),
	}

	logger := inv.logger.With(logging.String(logging.FieldBatchID, report.ID))
	logger.Info("starting batch",
		logging.String(logging.FieldOperation, command.Name()),
		logging.Int("hosts", len(hosts)),
		logging.Int("concurrency", concurrency),
	)

	var semaphore chan struct{}
	if concurrency > 0 {
		semaphore = make(chan struct{}, concurrency)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, host := range hosts {
		wg.Add(1)
		go func(index int, host string) {
			defer wg.Done()

			if semaphore != nil {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()
			}

			outcome, err := inv.Invoke(ctx, host, command)
			report.Results[index] = Result{Host: host, Outcome: outcome, Err: err}

			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				logger.Warn("host failed",
					logging.String(logging.FieldHost, host),
					logging.Error(err),
				)
			}
		}(i, host)
	}

	wg.Wait()
	report.FirstErr = firstErr

	logger.Info("batch finished",
		logging.Int("succeeded", report.Succeeded()),
		logging.Int("failed", len(report.Failed())),
	)
	return report
}
