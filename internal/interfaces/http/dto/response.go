package dto

import "time"

// Response is the envelope every endpoint answers with
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
	ErrorCode string      `json:"error_code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	}
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code, message string) Response {
	return Response{
		Success:   false,
		Message:   message,
		Timestamp: timestamp(),
		ErrorCode: code,
	}
}

// NewErrorResponseWithDetails creates an error envelope carrying
// field-level details
func NewErrorResponseWithDetails(code, message string, details interface{}) Response {
	resp := NewErrorResponse(code, message)
	resp.Details = details
	return resp
}

// IDRequest binds an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
