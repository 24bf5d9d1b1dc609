package apiclient

import (
	"io"
	"log/slog"
)

// RequestEvent records metadata about a single API call.
type RequestEvent struct {
	Method    string
	Path      string
	Status    int
	Attempts  int
	LatencyMs int64
	CacheHit  bool
	Success   bool
	ErrorCode string
}

// Observer receives events about API calls for logging and metrics.
type Observer interface {
	OnRequestComplete(event RequestEvent)
}

// LogObserver writes request events as structured log records.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnRequestComplete(event RequestEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"cache_hit", event.CacheHit,
	}
	if !event.Success {
		o.logger.Warn("api_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnRequestComplete(RequestEvent) {}
