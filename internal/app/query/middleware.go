package query

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
)

const tracerName = "github.com/0xsj/overwatch-kernel/internal/app/query"

var attrQueryName = attribute.Key("query.name")

// WithTracing wraps a query handler in a span named after the query.
func WithTracing[Q query.Query, R any](next query.Handler[Q, R]) query.Handler[Q, R] {
	tracer := otel.Tracer(tracerName)

	return query.HandlerFunc[Q, R](func(ctx context.Context, qry Q) (R, error) {
		name := qry.QueryName()

		ctx, span := tracer.Start(ctx, "query.handle "+name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrQueryName.String(name)),
		)
		defer span.End()

		result, err := next.Handle(ctx, qry)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}

		span.SetStatus(codes.Ok, "")
		return result, nil
	})
}
