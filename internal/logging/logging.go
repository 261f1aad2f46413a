// Package logging provides the optional diagnostic sink used by the store
// and settings layers. By default nothing is recorded; set FNORD_DEBUG to
// stream structured events to stderr.
package logging

import (
	"os"

	"go.uber.org/zap"
)

// Sink receives diagnostic events. Implementations must be safe for
// concurrent use.
type Sink interface {
	// Event records one named event with alternating key/value fields.
	Event(name string, fields ...any)
}

type nopSink struct{}

func (nopSink) Event(string, ...any) {}

// Nop returns a sink that discards every event.
func Nop() Sink {
	return nopSink{}
}

type zapSink struct {
	log *zap.SugaredLogger
}

func (s *zapSink) Event(name string, fields ...any) {
	s.log.Debugw(name, fields...)
}

// NewZapSink returns a sink backed by a zap development logger writing to
// stderr at debug level.
func NewZapSink() (Sink, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapSink{log: log.Sugar()}, nil
}

// FromEnv returns a zap-backed sink when FNORD_DEBUG is set, otherwise Nop.
func FromEnv() Sink {
	if os.Getenv("FNORD_DEBUG") == "" {
		return Nop()
	}
	s, err := NewZapSink()
	if err != nil {
		return Nop()
	}
	return s
}
