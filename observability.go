package fitforge

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fitforge/fitforge/internal/logging"
	"github.com/fitforge/fitforge/internal/metrics"
)

// NewPrometheusMetrics returns a MetricsCollector that registers its
// collectors on reg under the "fitforge" namespace on first use.
//
// Parameters:
//   - reg: Registerer; nil selects prometheus.DefaultRegisterer
//
// Returns:
//   - MetricsCollector: Collector for WithMetrics
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsCollector {
	return metrics.NewPrometheus(reg, "")
}

// NewSlogLogger adapts a *slog.Logger to Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return logging.NewSlog(l)
}

// NewTextLogger returns a Logger writing slog text records to w.
func NewTextLogger(w io.Writer, debug bool) Logger {
	return logging.NewSlogText(w, debug)
}
