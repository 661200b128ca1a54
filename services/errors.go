package services

import "net/http"

// ChatError carries the HTTP status and stable error code a handler should
// surface for a failed operation. Internal detail stays in Cause and is
// logged, never returned to clients.
type ChatError struct {
	StatusCode int
	ErrorCode  string
	Cause      error
}

func (e *ChatError) Error() string {
	if e == nil {
		return "chat_failed"
	}
	return e.ErrorCode
}

func (e *ChatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func badRequest(code string) *ChatError {
	return &ChatError{StatusCode: http.StatusBadRequest, ErrorCode: code}
}

func notFound(code string, cause error) *ChatError {
	return &ChatError{StatusCode: http.StatusNotFound, ErrorCode: code, Cause: cause}
}

func internal(code string, cause error) *ChatError {
	return &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: code, Cause: cause}
}
