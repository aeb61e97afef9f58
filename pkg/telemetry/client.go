package telemetry

import (
	"io"
	"log/slog"
	"net/http"
)

// telemetryLogger wraps slog.Logger to automatically prepend "[Telemetry]" to all messages
type telemetryLogger struct {
	logger *slog.Logger
}

// newTelemetryLogger creates a new telemetry logger that automatically prepends "[Telemetry]" to all messages
func newTelemetryLogger(logger *slog.Logger) *telemetryLogger {
	return &telemetryLogger{logger: logger}
}

// newDebugLogger returns the logger for the telemetry debug channel. With
// debug set it writes everything to w, otherwise it defers to slog.Default
// (which only records when forge runs with --debug).
func newDebugLogger(debug bool, w io.Writer) *telemetryLogger {
	if debug && w != nil {
		return newTelemetryLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return newTelemetryLogger(slog.Default())
}

// Debug logs a debug message with "[Telemetry]" prefix
func (tl *telemetryLogger) Debug(msg string, args ...any) {
	tl.logger.Debug("[Telemetry] "+msg, args...)
}

// Client posts reports to the collection endpoint.
type Client struct {
	logger     *telemetryLogger
	httpClient *http.Client
	endpoint   string
	version    string
}

func newClient(logger *telemetryLogger, settings Settings, version string, customHTTPClient ...*http.Client) *Client {
	var httpClient *http.Client
	if len(customHTTPClient) > 0 && customHTTPClient[0] != nil {
		httpClient = customHTTPClient[0]
	} else {
		httpClient = &http.Client{Timeout: settings.Timeout}
	}

	return &Client{
		logger:     logger,
		httpClient: httpClient,
		endpoint:   settings.Endpoint,
		version:    version,
	}
}
