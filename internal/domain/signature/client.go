package signature

import (
	"context"
	"log/slog"
)

// LoggingClient is the SigningClient used when no external integration is
// configured. It acknowledges every request and leaves completion to the
// callback endpoint, which is how test and staging environments drive the
// workflow end to end.
type LoggingClient struct {
	logger *slog.Logger
}

// NewLoggingClient creates a logging signing client.
func NewLoggingClient(logger *slog.Logger) *LoggingClient {
	return &LoggingClient{logger: logger}
}

// Send implements SigningClient.
func (c *LoggingClient) Send(_ context.Context, req SendRequest) (string, error) {
	c.logger.Info("signature request dispatched",
		"request", req.RequestID, "document", req.Name, "contact", req.Contact)
	return req.RequestID, nil
}
