package regfeat

import (
	"github.com/rs/zerolog"
)

// ProgressEvent reports that Source has completed Step out of Total steps.
type ProgressEvent struct {
	Source string
	Step   int
	Total  int
}

// Fraction returns the completed fraction in [0, 1].
func (e ProgressEvent) Fraction() float64 {
	if e.Total <= 0 {
		return 1
	}
	return float64(e.Step) / float64(e.Total)
}

// StatusEvent carries a human readable status message.
type StatusEvent struct {
	Source  string
	Message string
}

// Listener receives progress and status notifications from an Analysis,
// including those raised by the feature being computed.
type Listener interface {
	ProgressChanged(e ProgressEvent)
	StatusChanged(e StatusEvent)
}

// ListenerFuncs adapts plain functions to the Listener interface. Nil
// functions are skipped.
type ListenerFuncs struct {
	Progress func(ProgressEvent)
	Status   func(StatusEvent)
}

func (l ListenerFuncs) ProgressChanged(e ProgressEvent) {
	if l.Progress != nil {
		l.Progress(e)
	}
}

func (l ListenerFuncs) StatusChanged(e StatusEvent) {
	if l.Status != nil {
		l.Status(e)
	}
}

// logListener forwards analysis events to a zerolog logger.
type logListener struct {
	logger zerolog.Logger
}

// NewLogListener returns a Listener logging status messages at info level
// and progress at debug level.
func NewLogListener(logger zerolog.Logger) Listener {
	return logListener{logger: logger}
}

func (l logListener) ProgressChanged(e ProgressEvent) {
	l.logger.Debug().
		Str("component", "regfeat").
		Str("source", e.Source).
		Int("step", e.Step).
		Int("total", e.Total).
		Float64("fraction", e.Fraction()).
		Msg("progress")
}

func (l logListener) StatusChanged(e StatusEvent) {
	l.logger.Info().
		Str("component", "regfeat").
		Str("source", e.Source).
		Msg(e.Message)
}
