package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/models"
)

const (
	opAppend  = "append"
	opReadAll = "read_all"
	opTables  = "tables"
)

// Instrumented wraps a Store with metrics, tracing and an append rate limit.
// A rejected append waits for the limiter; it is never retried.
type Instrumented struct {
	store   Store
	metrics *metrics.Metrics
	tracer  trace.Tracer
	writes  *rate.Limiter
}

// NewInstrumented limits appends to writesPerMinute; zero or less disables the limit.
func NewInstrumented(store Store, m *metrics.Metrics, writesPerMinute int) *Instrumented {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if writesPerMinute > 0 {
		burst := writesPerMinute / 10
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(writesPerMinute)), burst)
	}
	return &Instrumented{
		store:   store,
		metrics: m,
		tracer:  otel.Tracer("github.com/verdix/verdix/internal/store"),
		writes:  limiter,
	}
}

func (i *Instrumented) observe(ctx context.Context, table, op string, call func(ctx context.Context) error) error {
	ctx, span := i.tracer.Start(ctx, "store."+op, trace.WithAttributes(attribute.String("table", table)))
	defer span.End()

	start := time.Now()
	err := call(ctx)
	i.metrics.ObserveStoreCall(table, op, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (i *Instrumented) Append(ctx context.Context, table string, values []interface{}) error {
	return i.observe(ctx, table, opAppend, func(ctx context.Context) error {
		if err := i.writes.Wait(ctx); err != nil {
			return errors.Wrap(err, "Write quota wait aborted")
		}
		return i.store.Append(ctx, table, values)
	})
}

func (i *Instrumented) ReadAll(ctx context.Context, table string) ([]models.Row, error) {
	var rows []models.Row
	err := i.observe(ctx, table, opReadAll, func(ctx context.Context) (err error) {
		rows, err = i.store.ReadAll(ctx, table)
		return err
	})
	return rows, err
}

func (i *Instrumented) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	err := i.observe(ctx, "", opTables, func(ctx context.Context) (err error) {
		tables, err = i.store.Tables(ctx)
		return err
	})
	return tables, err
}
