// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// EmailCheckRequest is the body of POST /identity/config/v2/actions/EmailCheck/invoke.
// Email is a pointer so an absent or null field can be told apart from "".
type EmailCheckRequest struct {
	Email *string `json:"email"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// InfoResponse describes the running mock.
type InfoResponse struct {
	Service         string `json:"service"`
	Version         string `json:"version"`
	Fixtures        string `json:"fixtures"`
	FixturesVersion string `json:"fixtures_version"`
}
