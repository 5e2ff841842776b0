package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	grpcstatus "google.golang.org/grpc/status"
)

// UnaryMetricsInterceptor records per-method request counts and latency
// using the given meter provider. It runs before auth so rejected calls
// are counted too.
func UnaryMetricsInterceptor(provider metric.MeterProvider) (grpc.UnaryServerInterceptor, error) {
	meter := provider.Meter("pagos-servicing")

	requests, err := meter.Int64Counter(
		"servicing_requests_total",
		metric.WithDescription("Total gRPC requests handled by the servicing service"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"servicing_request_duration_seconds",
		metric.WithDescription("gRPC request latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := metric.WithAttributes(
			attribute.String("method", info.FullMethod),
			attribute.String("code", grpcstatus.Code(err).String()),
		)
		requests.Add(ctx, 1, attrs)
		duration.Record(ctx, time.Since(start).Seconds(), attrs)

		return resp, err
	}, nil
}
