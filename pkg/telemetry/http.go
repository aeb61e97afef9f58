package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/forge-dev/forge/pkg/useragent"
)

// eventURL returns {endpoint}/2/event/{eventType}.
func (c *Client) eventURL(eventType EventType) string {
	return fmt.Sprintf("%s/2/event/%s", c.endpoint, eventType)
}

// Send delivers one report. Delivery is best effort: the outcome is only
// logged and never returned.
func (c *Client) Send(ctx context.Context, eventType EventType, report any) {
	if c.endpoint == "" {
		c.logger.Debug("Skipping telemetry event - no endpoint", "event_type", eventType)
		return
	}

	if err := c.performHTTPRequest(ctx, eventType, report); err != nil {
		c.logger.Debug("Failed to send telemetry event", "error", err, "event_type", eventType)
		return
	}
	c.logger.Debug("Sent telemetry event", "event_type", eventType)
}

func (c *Client) performHTTPRequest(ctx context.Context, eventType EventType, report any) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.eventURL(eventType), bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", useragent.Format(c.version))

	c.logger.Debug("HTTP request details",
		"method", req.Method,
		"url", req.URL.String(),
		"payload", string(jsonData),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("HTTP error response", "status_code", resp.StatusCode, "status_text", resp.Status)
	}

	return nil
}
