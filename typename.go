package dynobject

import (
	"log/slog"
	"reflect"

	"github.com/go-digitaltwin/go-dynobject/internal/telemetry"
)

// TypeNameOf returns the readable name of T, as reported by TypeName.
func TypeNameOf[T any]() string {
	return reflect.TypeFor[T]().String()
}

// SetLogger replaces the logger the package (and its sub-packages) logs to. By
// default, slog.Default() is used. A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	telemetry.SetLogger(l)
}
