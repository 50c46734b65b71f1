package dispatch

import (
	"context"
	"log/slog"
	"time"

	"dynoctl/internal/dyno"
	"dynoctl/internal/logging"
)

// Invoker issues commands to daemons, opening a fresh session per exchange.
type Invoker struct {
	logger         *slog.Logger
	connectTimeout time.Duration
	requestTimeout time.Duration
}

// NewInvoker builds an invoker. connectTimeout bounds dial attempts;
// requestTimeout, when positive, bounds each full exchange. A zero request
// timeout lets trace requests block until the daemon answers.
func NewInvoker(logger *slog.Logger, connectTimeout, requestTimeout time.Duration) *Invoker {
	return &Invoker{
		logger:         logging.NewComponentLogger(logger, "dispatch"),
		connectTimeout: connectTimeout,
		requestTimeout: requestTimeout,
	}
}

// Invoke runs one command against one normalized "host:port" endpoint.
// The returned Outcome always carries the host and operation, even on
// failure, so callers can report which exchange broke.
func (inv *Invoker) Invoke(ctx context.Context, host string, command Command) (Outcome, error) {
	outcome := Outcome{Host: host, Operation: command.Name()}

	if inv.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.requestTimeout)
		defer cancel()
	}

	started := time.Now()
	session, err := dyno.Dial(ctx, host, inv.connectTimeout)
	if err != nil {
		return outcome, err
	}
	defer session.Close()

	inv.logger.Debug("sending request",
		logging.String(logging.FieldHost, host),
		logging.String(logging.FieldOperation, command.Name()),
	)

	doc, err := session.Send(ctx, command.Payload())
	if err != nil {
		return outcome, err
	}

	outcome.Response = doc
	if err := command.Finish(doc, &outcome); err != nil {
		return outcome, &dyno.ProtocolError{Host: host, Op: "decode response", Err: err}
	}
	outcome.Elapsed = time.Since(started)

	inv.logger.Debug("request completed",
		logging.String(logging.FieldHost, host),
		logging.String(logging.FieldOperation, command.Name()),
		logging.Duration("elapsed", outcome.Elapsed),
	)
	return outcome, nil
}
