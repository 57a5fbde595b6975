package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

const tracerName = "github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/observability/service"

// Service decorates the herd service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core herd service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Report(ctx context.Context, days uint32) (domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "HerdService.Report", trace.WithAttributes(attribute.Int64("herd.days", int64(days))))
	defer span.End()

	s.logInfo(ctx, "simulating herd", slog.Uint64("herd.days", uint64(days)))
	report, err := s.inner.Report(ctx, days)
	if err != nil {
		return domain.Report{}, s.handleError(ctx, span, err, "failed to simulate herd", slog.Uint64("herd.days", uint64(days)))
	}
	s.record(ctx, span, "report", days, report.Stock, len(report.Herd))
	return report, nil
}

func (s *Service) Stock(ctx context.Context, days uint32) (domain.Products, error) {
	ctx, span := s.tracer.Start(ctx, "HerdService.Stock", trace.WithAttributes(attribute.Int64("herd.days", int64(days))))
	defer span.End()

	s.logInfo(ctx, "calculating stock", slog.Uint64("herd.days", uint64(days)))
	stock, err := s.inner.Stock(ctx, days)
	if err != nil {
		return domain.Products{}, s.handleError(ctx, span, err, "failed to calculate stock", slog.Uint64("herd.days", uint64(days)))
	}
	s.record(ctx, span, "stock", days, stock, -1)
	return stock, nil
}

func (s *Service) Herd(ctx context.Context, days uint32) ([]domain.YakView, error) {
	ctx, span := s.tracer.Start(ctx, "HerdService.Herd", trace.WithAttributes(attribute.Int64("herd.days", int64(days))))
	defer span.End()

	s.logInfo(ctx, "listing herd", slog.Uint64("herd.days", uint64(days)))
	herd, err := s.inner.Herd(ctx, days)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list herd", slog.Uint64("herd.days", uint64(days)))
	}
	span.SetAttributes(attribute.Int("herd.size", len(herd)))
	s.metrics.recordSimulation(ctx, "herd", days)
	return herd, nil
}

func (s *Service) record(ctx context.Context, span trace.Span, kind string, days uint32, stock domain.Products, herdSize int) {
	span.SetAttributes(
		attribute.Float64("stock.milk_liters", stock.Milk.Liters()),
		attribute.Int64("stock.wool", int64(stock.Wool)),
	)
	if herdSize >= 0 {
		span.SetAttributes(attribute.Int("herd.size", herdSize))
	}
	s.metrics.recordSimulation(ctx, kind, days)
	s.logInfo(ctx, "herd simulated",
		slog.String("kind", kind),
		slog.Uint64("herd.days", uint64(days)),
		slog.String("stock.milk", stock.Milk.String()),
		slog.Uint64("stock.wool", uint64(stock.Wool)),
	)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	simulations   metric.Int64Counter
	daysSimulated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	simulations, _ := m.Int64Counter("herd.service.simulations", metric.WithDescription("Number of herd simulations served"))
	daysSimulated, _ := m.Int64Counter("herd.service.days_simulated", metric.WithDescription("Total days requested across simulations"), metric.WithUnit("{day}"))
	return serviceMetrics{simulations: simulations, daysSimulated: daysSimulated}
}

func (m serviceMetrics) recordSimulation(ctx context.Context, kind string, days uint32) {
	if m.simulations != nil {
		m.simulations.Add(ctx, 1, metric.WithAttributes(attribute.String("simulation.kind", kind)))
	}
	if m.daysSimulated != nil {
		m.daysSimulated.Add(ctx, int64(days))
	}
}

var _ ports.Service = (*Service)(nil)
