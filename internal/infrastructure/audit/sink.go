// Package audit receives descriptions of payment-state changes. The core
// never inspects what the sink does with them.
package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// =====================================================
// AUDIT SINK
// =====================================================

type Entry struct {
	Action    string // e.g. payment.webhook
	Provider  string
	OrderID   string
	PaymentID string
	Detail    map[string]interface{} // must never contain credential values
}

type Sink interface {
	Record(ctx context.Context, entry Entry)
}

// LogSink writes audit entries as structured log lines.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "audit").Logger()}
}

func (s *LogSink) Record(_ context.Context, entry Entry) {
	event := s.logger.Info().
		Str("action", entry.Action).
		Str("provider", entry.Provider)
	if entry.OrderID != "" {
		event = event.Str("order_id", entry.OrderID)
	}
	if entry.PaymentID != "" {
		event = event.Str("payment_id", entry.PaymentID)
	}
	if len(entry.Detail) > 0 {
		event = event.Fields(entry.Detail)
	}
	event.Msg("audit")
}

// NopSink discards entries; used in tests.
type NopSink struct{}

func (NopSink) Record(context.Context, Entry) {}
