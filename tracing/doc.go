// Package tracing wraps OpenTelemetry so that simulation runs and their ticks
// can be exported as spans. Applications that never call Init get the no-op
// global tracer provider.
package tracing
