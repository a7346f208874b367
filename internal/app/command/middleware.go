package command

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/0xsj/overwatch-pkg/log"

	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
)

const tracerName = "github.com/0xsj/overwatch-kernel/internal/app/command"

var (
	attrCommandName = attribute.Key("command.name")
	attrCommandType = attribute.Key("command.type")
)

// WithLogging wraps a command handler and logs every dispatch and its outcome.
func WithLogging[C command.Command, R any](logger log.Logger, next command.Handler[C, R]) command.Handler[C, R] {
	return command.HandlerFunc[C, R](func(ctx context.Context, cmd C) (R, error) {
		name := cmd.CommandName()
		start := time.Now()

		result, err := next.Handle(ctx, cmd)
		if err != nil {
			logger.Error("command failed",
				log.String("command", name),
				log.String("duration", time.Since(start).String()),
				log.String("error", err.Error()),
			)
			return result, err
		}

		logger.Info("command handled",
			log.String("command", name),
			log.String("duration", time.Since(start).String()),
		)
		return result, nil
	})
}

// WithTracing wraps a command handler in an OpenTelemetry span named after the
// command. Errors are recorded on the span and returned unchanged.
func WithTracing[C command.Command, R any](next command.Handler[C, R]) command.Handler[C, R] {
	tracer := otel.Tracer(tracerName)

	return command.HandlerFunc[C, R](func(ctx context.Context, cmd C) (R, error) {
		name := cmd.CommandName()

		ctx, span := tracer.Start(ctx, "command.handle "+name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attrCommandName.String(name),
				attrCommandType.String(fmt.Sprintf("%T", cmd)),
			),
		)
		defer span.End()

		result, err := next.Handle(ctx, cmd)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}

		span.SetStatus(codes.Ok, "")
		return result, nil
	})
}
