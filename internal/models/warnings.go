package models

// WarningCode categorizes warnings by subsystem.
// W2xxx = quote fetching, W3xxx = settings, W5xxx = alert evaluation.
type WarningCode string

const (
	WarnSymbolFetchFailed WarningCode = "W2001" // symbol dropped from this refresh cycle
	WarnStaleResult       WarningCode = "W2002" // result arrived for a symbol no longer watched
	WarnSettingsReset     WarningCode = "W3001" // persisted settings were malformed, defaults used
	WarnNoWindowData      WarningCode = "W5001" // symbol has no points inside the alert window
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
