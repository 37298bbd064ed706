package service

import "errors"

// Precondition outcomes surfaced to handlers. These are expected results
// of the lifecycle rules, not transport failures: the handler maps each to
// a specific 4xx message and no write has occurred.
var (
	ErrInvalidCredentials  = errors.New("invalid employee id or password")
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestNotPending   = errors.New("request is no longer pending")
	ErrRequestNotFinalized = errors.New("request must be rejected, completed or canceled before deletion")
	ErrIllegalTransition   = errors.New("status transition not allowed")
	ErrInvalidStatus       = errors.New("unknown request status")
	ErrForbidden           = errors.New("not allowed to modify this request")
)
