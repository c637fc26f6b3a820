package dto

// ErrorResponse is the uniform error payload returned by every endpoint.
// Code is a stable numeric identifier clients can branch on.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
