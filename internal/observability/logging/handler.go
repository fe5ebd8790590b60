package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type HandlerOptions struct {
	Level         slog.Leveler
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
}

// Handler decorates records with service metadata, the request id and the
// active trace before passing them to a JSON handler.
type Handler struct {
	next          slog.Handler
	defaultModule Module
	projectID     string
}

func NewHandler(w io.Writer, opts HandlerOptions) *Handler {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
	}).WithAttrs([]slog.Attr{
		slog.String("service", opts.Service.Name),
		slog.String("version", opts.Service.Version),
		slog.String("env", string(opts.Environment)),
	})
	if opts.Service.Revision != "" {
		base = base.WithAttrs([]slog.Attr{slog.String("revision", opts.Service.Revision)})
	}

	return &Handler{
		next:          base,
		defaultModule: opts.DefaultModule,
		projectID:     opts.GCPProjectID,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
		record.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
	}

	return h.next.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		next:          h.next.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		next:          h.next.WithGroup(name),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}
