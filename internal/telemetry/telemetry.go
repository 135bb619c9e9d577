// Package telemetry sends anonymous usage events. The distinct ID is the
// per-install machine ID; no tool content, file paths, or keys ever leave
// the machine. Disable entirely with telemetry.disabled in settings.yaml.
package telemetry

import (
	"log"

	"github.com/posthog/posthog-go"
)

const (
	apiKey   = "phc_kXzT4mGv9qYcJ1NfW2LoRb8aUdHe53PiQwSxD0VnE7M"
	endpoint = "https://us.i.posthog.com"
)

// Event names.
const (
	EventToolStarted      = "tool_started"
	EventToolStopped      = "tool_stopped"
	EventTrialStarted     = "trial_started"
	EventLicenseActivated = "license_activated"
)

// Client wraps the PostHog client. A nil Client is valid and drops every
// event, which is how opt-out and headless mode work.
type Client struct {
	ph         posthog.Client
	distinctID string
}

// New creates a telemetry client keyed by the machine ID. Returns nil when
// disabled or when the underlying client cannot be built; callers never
// need to check.
func New(machineID string, disabled bool) *Client {
	if disabled || machineID == "" {
		return nil
	}

	ph, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		return nil
	}

	return &Client{ph: ph, distinctID: machineID}
}

// Capture enqueues one event. Failures are logged and dropped; telemetry
// must never surface as a user-visible error.
func (c *Client) Capture(event string, props map[string]interface{}) {
	if c == nil {
		return
	}

	properties := posthog.NewProperties()
	for k, v := range props {
		properties.Set(k, v)
	}

	err := c.ph.Enqueue(posthog.Capture{
		DistinctId: c.distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		log.Printf("telemetry enqueue failed: %v", err)
	}
}

// CaptureTool is shorthand for tool lifecycle events.
func (c *Client) CaptureTool(event, toolID string) {
	c.Capture(event, map[string]interface{}{"tool": toolID})
}

// Close flushes pending events.
func (c *Client) Close() {
	if c == nil {
		return
	}
	_ = c.ph.Close()
}
