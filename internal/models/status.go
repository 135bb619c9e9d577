package models

// ToolStatus is the lifecycle state of a managed tool as shown to the user.
// The string values are a contract: they appear verbatim in saved state,
// tray tooltips and the dashboard, so they must not change.
type ToolStatus string

const (
	StatusRunning  ToolStatus = "Running"
	StatusStopped  ToolStatus = "Stopped"
	StatusStarting ToolStatus = "Starting..."
	StatusStopping ToolStatus = "Stopping..."
	StatusChecking ToolStatus = "Checking..."
)

// Pending reports whether the status is a transitional one, i.e. a command
// or check is in flight and the real state is not yet known.
func (s ToolStatus) Pending() bool {
	return s == StatusStarting || s == StatusStopping || s == StatusChecking
}

// Running reports whether the tool is confirmed running.
func (s ToolStatus) Running() bool {
	return s == StatusRunning
}
