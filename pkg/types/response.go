// Package types holds the wire envelopes shared by the API layer and its
// consumers. Fixed-shape endpoints (token exchange, the public listing)
// bypass the envelopes entirely.
package types

// SuccessEnvelope wraps successful responses as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error payload. Details carries field-level
// validation problems when the error code allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps failures as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
