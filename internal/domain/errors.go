package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Log errors
	ErrBadDateKey   = errors.New("date key must be YYYY-MM-DD")
	ErrLogNotFound  = errors.New("no log for that date")
	ErrEmptyUpdates = errors.New("update batch is empty")

	// Enum validation
	ErrUnknownActivity         = errors.New("unknown activity type")
	ErrUnknownCommissionStatus = errors.New("unknown commission status")

	// Lead errors
	ErrLeadNotFound      = errors.New("lead not found")
	ErrUnknownLeadStatus = errors.New("unknown lead status")

	// Share codes
	ErrBadShareCode = errors.New("share code is invalid or corrupted")

	// Cloud sync
	ErrSyncDisabled = errors.New("cloud sync is not configured")
)
