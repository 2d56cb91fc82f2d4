package models

import "errors"

// Sentinel errors forming the failure taxonomy for the whole application.
// Layers wrap these with fmt.Errorf("...: %w", ...) so callers can classify
// failures with errors.Is without depending on SDK error types.
var (
	// ErrConfig indicates a missing or invalid required configuration value
	// (for example the Gemini API key). Fatal at startup, never retried.
	ErrConfig = errors.New("configuration error")

	// ErrNotFound indicates a referenced remote resource (typically a file
	// search store) does not exist. Propagated to the caller, who must
	// correct the identifier or omit it.
	ErrNotFound = errors.New("not found")

	// ErrAuth indicates the remote service rejected the credential.
	ErrAuth = errors.New("authentication failed")

	// ErrTransient indicates a remote service, network, or quota failure.
	// The core performs no retries; the error propagates unmodified.
	ErrTransient = errors.New("transient service error")

	// ErrValidation indicates a missing or malformed caller-supplied argument,
	// such as an empty store identifier or an unreadable source file.
	ErrValidation = errors.New("validation failed")
)
