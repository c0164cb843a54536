package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"tradebook-importer/internal/trace"
)

// TradeMatched logs a completed round trip (always logged regardless of level)
func TradeMatched(ctx context.Context, symbol, direction string, qty int, entry, exit, pnl float64, fields ...any) {
	if trace.Enabled() {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.AddEvent("trade_matched", oteltrace.WithAttributes(
				attribute.String("symbol", symbol),
				attribute.String("direction", direction),
				attribute.Int("quantity", qty),
				attribute.Float64("entry_price", entry),
				attribute.Float64("exit_price", exit),
				attribute.Float64("pnl", pnl),
			))
		}
	}

	allFields := append([]any{
		"type", "TRADE",
		"symbol", symbol,
		"direction", direction,
		"quantity", qty,
		"entry_price", entry,
		"exit_price", exit,
		"pnl", pnl,
	}, fields...)
	logWithTrace(ctx, slog.LevelInfo, "Trade matched", 2, allFields...)
}

// Anomaly logs a data-quality finding surfaced as a warning to the caller
func Anomaly(ctx context.Context, symbol, kind string, fields ...any) {
	if trace.Enabled() {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.AddEvent("data_anomaly", oteltrace.WithAttributes(
				attribute.String("symbol", symbol),
				attribute.String("kind", kind),
			))
		}
	}

	allFields := append([]any{
		"type", "ANOMALY",
		"symbol", symbol,
		"kind", kind,
	}, fields...)
	logWithTrace(ctx, slog.LevelWarn, "Data anomaly", 2, allFields...)
}
