// Package telemetry holds the logger and the OpenTelemetry instruments shared by
// the dynobject packages.
package telemetry

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/go-digitaltwin/go-dynobject")
var meter = otel.Meter("github.com/go-digitaltwin/go-dynobject")

var logger atomic.Pointer[slog.Logger]

// Logger returns the logger set by SetLogger, or slog.Default() if none was set.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger replaces the logger used by the dynobject packages. A nil logger
// restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

const (
	// payloadType is the attribute key associating each record with the Go type
	// of the payload involved (e.g. "[]int").
	payloadType = "dynobject.type"
	// operatorSymbol is the attribute key associating capability failures with the
	// operator that was denied (e.g. "<").
	operatorSymbol = "dynobject.operator"
)

var (
	// compilationDuration measures the time it took to compile the dispatch tables
	// of a payload type and of every type it is composed of.
	//
	// Each record is associated with payloadType.
	compilationDuration metric.Float64Histogram
	// tablesCompiled counts the dispatch tables built by the capability registry.
	// Each payload type is compiled once per process, so this is effectively the
	// number of distinct payload types seen.
	tablesCompiled metric.Int64Counter
	// capabilityFailures counts calls to an operator (or hash) that the payload
	// type does not support.
	//
	// Each record is associated with payloadType and operatorSymbol.
	capabilityFailures metric.Int64Counter
	// mismatchRecoveries counts comparisons between values of different concrete
	// types that were answered by the mismatch policy instead of the payload's own
	// operator.
	mismatchRecoveries metric.Int64Counter
)

func init() {
	var err error
	compilationDuration, err = meter.Float64Histogram(
		"dispatch.compilation.duration",
		metric.WithDescription("The duration of compiling the dispatch tables of a payload type, including the tables of its parts."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("dynobject: failed to init 'dispatch.compilation.duration' instrument")
	}

	tablesCompiled, err = meter.Int64Counter(
		"dispatch.tables.compiled",
		metric.WithDescription("The number of dispatch tables compiled for distinct payload types."),
	)
	if err != nil {
		panic("dynobject: failed to init 'dispatch.tables.compiled' instrument")
	}

	capabilityFailures, err = meter.Int64Counter(
		"dispatch.capability.failures",
		metric.WithDescription("The number of operator or hash calls denied because the payload type lacks the capability."),
	)
	if err != nil {
		panic("dynobject: failed to init 'dispatch.capability.failures' instrument")
	}

	mismatchRecoveries, err = meter.Int64Counter(
		"dynobject.type_mismatch.recoveries",
		metric.WithDescription("The number of comparisons between values of different concrete types answered by the mismatch policy."),
	)
	if err != nil {
		panic("dynobject: failed to init 'dynobject.type_mismatch.recoveries' instrument")
	}
}

// StartCompilation traces the compilation of the dispatch tables of the named
// type. The returned function ends the trace once the tables are published,
// given how many of them were new.
func StartCompilation(typ string) (end func(published int)) {
	attrs := attribute.NewSet(attribute.String(payloadType, typ))
	_, span := tracer.Start(context.Background(), "dispatch.compile", trace.WithAttributes(attrs.ToSlice()...))
	start := time.Now()
	return func(published int) {
		compilationDuration.Record(context.Background(), float64(time.Since(start).Microseconds())/1000, metric.WithAttributeSet(attrs))
		span.SetAttributes(attribute.Int("dispatch.tables.published", published))
		span.End()
	}
}

// TableCompiled records that a dispatch table was built for the named type.
func TableCompiled(typ, capabilities string) {
	ctx := context.Background()
	tablesCompiled.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(attribute.String(payloadType, typ))))
	Logger().Debug("Compiled dispatch table",
		slog.String("type", typ),
		slog.String("capabilities", capabilities),
	)
}

// CapabilityFailure records a denied operator call.
func CapabilityFailure(typ, op string) {
	attrs := attribute.NewSet(
		attribute.String(payloadType, typ),
		attribute.String(operatorSymbol, op),
	)
	capabilityFailures.Add(context.Background(), 1, metric.WithAttributeSet(attrs))
}

// MismatchRecovered records a comparison answered by the mismatch policy. It is
// called on hot paths, so the debug record is only built when enabled.
func MismatchRecovered(want, got string) {
	ctx := context.Background()
	mismatchRecoveries.Add(ctx, 1)
	if l := Logger(); l.Enabled(ctx, slog.LevelDebug) {
		l.Debug("Recovered from type mismatch",
			slog.String("want", want),
			slog.String("got", got),
		)
	}
}
