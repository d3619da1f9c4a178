package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse body of mutations that return nothing else.
type MessageResponse struct {
	Message string `json:"message"`
}
