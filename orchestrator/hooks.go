package orchestrator

import (
	"time"

	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/resilience"
	"github.com/byte4ever/employeegw/upstream"
)

func newHooks(log *logger.Logger, op string) *resilience.Hooks {
	log = log.With("operation", op)

	return &resilience.Hooks{
		OnRetry: func(attempt int, delay time.Duration, err error) {
			log.Warn("retrying upstream call",
				"attempt", attempt,
				"delay", delay,
				"kind", upstream.KindOf(err),
				"error", err,
			)
		},
		OnExhausted: func(attempts int, err error) {
			log.Warn("retries exhausted", "attempts", attempts, "error", err)
		},
		OnTerminal: func(err error) {
			log.Warn("terminal upstream failure", "kind", upstream.KindOf(err), "error", err)
		},
		OnFallbackUsed: func(err error) {
			log.Error("FALLBACK: "+op, "kind", upstream.KindOf(err), "error", err)
		},
		OnTimeout: func() {
			log.Warn("attempt timed out")
		},
		OnThrottled: func(wait time.Duration) {
			log.Debug("throttled by shared rate limit", "wait", wait)
		},
		OnCircuitOpen: func() {
			log.Warn("circuit opened")
		},
		OnCircuitHalfOpen: func() {
			log.Info("circuit half-open")
		},
		OnCircuitClose: func() {
			log.Info("circuit closed")
		},
	}
}
