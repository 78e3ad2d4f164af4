package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps the posthog client so callers never have to care
// whether tracking is configured. A wrapper around a nil client swallows every
// call.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient builds the analytics client. An empty API key yields
// a disabled wrapper rather than an error; billing deployments without
// analytics are normal.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Info("POSTHOG_API_KEY not set, API event tracking disabled")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("Failed to initialize posthog client, API event tracking disabled",
			slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("Posthog client initialized")
	return &PosthogClientWrapper{client: client, logger: logger}
}

// IsInitialized reports whether events will actually be sent.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue queues one event for the given user. Delivery is asynchronous and
// best effort; a failed capture never surfaces to the request path.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// Close flushes queued events. Call on shutdown.
func (w *PosthogClientWrapper) Close() {
	if w.client == nil {
		return
	}
	w.client.Close()
}
