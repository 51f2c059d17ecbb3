package llm

import "errors"

// Error code constants for standardized error handling across the relay.
// Validation codes are user-correctable (400-class); ErrCodeUpstream is a
// 500-class failure and is never retried automatically.
const (
	ErrCodeMissingCredential   = "missing_credential"
	ErrCodeEmptyHistory        = "empty_history"
	ErrCodeMissingEndpoint     = "missing_endpoint"
	ErrCodeUnsupportedProvider = "unsupported_provider"
	ErrCodeUpstream            = "upstream_error"
)

// RelayError represents a typed error from the chat relay.
// Use the IsXxx helpers below to classify errors without inspecting fields.
type RelayError struct {
	Code    string // One of the ErrCode* constants.
	Message string // Human-readable description, safe to surface to callers.
	Err     error  // Underlying error (may be nil).
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// NewRelayError creates a typed relay error.
func NewRelayError(code, message string, err error) *RelayError {
	return &RelayError{Code: code, Message: message, Err: err}
}

// IsMissingCredential reports whether err is a missing-API-key failure.
func IsMissingCredential(err error) bool {
	return hasCode(err, ErrCodeMissingCredential)
}

// IsEmptyHistory reports whether err is an empty-message-history failure.
func IsEmptyHistory(err error) bool {
	return hasCode(err, ErrCodeEmptyHistory)
}

// IsMissingEndpoint reports whether err is a custom-provider-without-endpoint failure.
func IsMissingEndpoint(err error) bool {
	return hasCode(err, ErrCodeMissingEndpoint)
}

// IsUnsupportedProvider reports whether err names a provider outside the known set.
func IsUnsupportedProvider(err error) bool {
	return hasCode(err, ErrCodeUnsupportedProvider)
}

// IsUpstreamError reports whether the provider rejected the call or returned
// an unparseable envelope.
func IsUpstreamError(err error) bool {
	return hasCode(err, ErrCodeUpstream)
}

// IsUserCorrectable reports whether the caller can fix the request
// (validation failures, as opposed to upstream/provider failures).
func IsUserCorrectable(err error) bool {
	var re *RelayError
	return errors.As(err, &re) && re.Code != ErrCodeUpstream
}

func hasCode(err error, code string) bool {
	var re *RelayError
	return errors.As(err, &re) && re.Code == code
}
