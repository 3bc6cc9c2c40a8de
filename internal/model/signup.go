package model

import "net/http"

// SignupOutcome is the result of posting to the reminder endpoint.
type SignupOutcome struct {
	// Endpoint is the URL the form was posted to.
	Endpoint string

	// StatusCode is the HTTP status code, or 0 when no response arrived.
	StatusCode int

	// StatusText is the reason phrase (e.g. "OK", "Not Found").
	StatusText string

	// Success is true only for status code 200.
	Success bool

	// Err is set when the request failed before any response was received.
	Err error
}

// NewSignupOutcome classifies a received response.
func NewSignupOutcome(endpoint string, code int, text string) *SignupOutcome {
	return &SignupOutcome{
		Endpoint:   endpoint,
		StatusCode: code,
		StatusText: text,
		Success:    code == http.StatusOK,
	}
}

// NoResponse returns the outcome for a request that never got a response.
func NoResponse(endpoint string, err error) *SignupOutcome {
	return &SignupOutcome{
		Endpoint: endpoint,
		Err:      err,
	}
}

// Responded reports whether the server answered at all.
func (s *SignupOutcome) Responded() bool {
	return s.Err == nil
}
