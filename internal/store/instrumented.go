package store

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
	"github.com/deardiary/deardiary/backend/go-services/pkg/metrics"
)

const tracerName = "deardiary/store"

type instrumented struct {
	next Gateway
}

// Instrumented wraps g with per-operation Prometheus metrics, client spans
// and debug logging.
func Instrumented(g Gateway) Gateway {
	return &instrumented{next: g}
}

func startSpan(ctx context.Context, collection, op string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "store."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.collection", collection), attribute.String("db.operation", op)),
	)
}

func observe(span trace.Span, collection, op string, start time.Time, err error, found bool) {
	defer span.End()
	outcome := "ok"
	switch {
	case errors.Is(err, ErrStoreUnavailable):
		outcome = "unavailable"
	case errors.Is(err, ErrInvalidIdentifier):
		outcome = "invalid_id"
	case err != nil:
		outcome = "error"
	case !found:
		outcome = "not_found"
	}
	metrics.StoreOperations.WithLabelValues(collection, op, outcome).Inc()
	metrics.StoreLatency.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("store.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logger.Debugf("store %s %s: %v", op, collection, err)
	}
}

func (i *instrumented) Create(ctx context.Context, collection string, fields Fields) (ID, error) {
	start := time.Now()
	ctx, span := startSpan(ctx, collection, "create")
	id, err := i.next.Create(ctx, collection, fields)
	observe(span, collection, "create", start, err, true)
	return id, err
}

func (i *instrumented) Get(ctx context.Context, collection, id string) (*Document, error) {
	start := time.Now()
	ctx, span := startSpan(ctx, collection, "get")
	d, err := i.next.Get(ctx, collection, id)
	observe(span, collection, "get", start, err, d != nil)
	return d, err
}

func (i *instrumented) List(ctx context.Context, collection string, opts ListOptions) ([]*Document, error) {
	start := time.Now()
	ctx, span := startSpan(ctx, collection, "list")
	docs, err := i.next.List(ctx, collection, opts)
	observe(span, collection, "list", start, err, true)
	return docs, err
}

func (i *instrumented) Update(ctx context.Context, collection, id string, fields Fields) (bool, error) {
	start := time.Now()
	ctx, span := startSpan(ctx, collection, "update")
	ok, err := i.next.Update(ctx, collection, id, fields)
	observe(span, collection, "update", start, err, ok)
	return ok, err
}

func (i *instrumented) Delete(ctx context.Context, collection, id string) (bool, error) {
	start := time.Now()
	ctx, span := startSpan(ctx, collection, "delete")
	ok, err := i.next.Delete(ctx, collection, id)
	observe(span, collection, "delete", start, err, ok)
	return ok, err
}

func (i *instrumented) Collections(ctx context.Context) ([]string, error) {
	if in, ok := i.next.(Inspector); ok {
		return in.Collections(ctx)
	}
	return nil, nil
}
