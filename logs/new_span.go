package logs

import (
	"context"
	"crypto/rand"
)

type unitKeyType struct{}

var unitKey = unitKeyType{}

// NewSpan starts a span for the named unit, usually a source file.
type NewSpan func(ctx context.Context, unit string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, unit string) (context.Context, Span) {

		var parent Span
		if v := ctx.Value(SpanKey); v != nil {
			parent = v.(Span)
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		if unit != "" {
			ctx = context.WithValue(ctx, unitKey, unit)
		}

		var args []any
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
