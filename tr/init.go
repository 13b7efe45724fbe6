// Package tr wires OpenTelemetry tracing for reelpipe.
// Without OTEL_EXPORTER_OTLP_ENDPOINT every tracer is a noop.
package tr

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	hostPortRe = regexp.MustCompile(`^[\w.-]+:\d+$`)
	schemeRe   = regexp.MustCompile(`^(http|https)`)
)

// Init installs the global tracer provider and returns a shutdown func
// that flushes pending spans.
func Init(serviceName string) (shutdown func(), err error) {
	ctx := context.Background()

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() {}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otel resource: %w", err)
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}

	isLocal, err := isLoopbackAddress(endpoint)
	if err != nil {
		return nil, fmt.Errorf("figuring out if %q is a local address: %w", endpoint, err)
	} else if isLocal {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	if rawHeaders := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); rawHeaders != "" {
		opts = append(opts, otlptracegrpc.WithHeaders(parseOtelEnvHeaders(rawHeaders)))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating otlp trace grpc exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}, nil
}

func parseOtelEnvHeaders(fromEnv string) map[string]string {
	headers := map[string]string{}
	for _, pair := range strings.Split(fromEnv, ",") {
		key, val, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(val)
	}
	return headers
}

func isLoopbackAddress(endpoint string) (bool, error) {
	endpoint = strings.TrimSpace(endpoint)

	var hostname string
	if hostPortRe.MatchString(endpoint) {
		hostname, _, _ = strings.Cut(endpoint, ":")
	} else if schemeRe.MatchString(endpoint) {
		u, err := url.Parse(endpoint)
		if err != nil {
			return false, err
		}
		hostname = u.Hostname()
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return false, err
	}

	for _, ip := range ips {
		if !ip.IsLoopback() && !ip.IsPrivate() {
			return false, nil
		}
	}
	return true, nil
}
