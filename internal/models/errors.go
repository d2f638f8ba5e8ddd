package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Handlers map these to HTTP statuses.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternal      = "INTERNAL_ERROR"
	CodeSelfFollow    = "SELF_FOLLOW"
	CodeAlreadyFollow = "ALREADY_FOLLOWING"
	CodeAlreadyPend   = "ALREADY_PENDING"
	CodeRequestGone   = "REQUEST_NOT_FOUND"
	CodeDuplicateEdge = "DUPLICATE_EDGE"
	// CodeAccountPrivate is the account-level privacy failure (forbidden semantics).
	CodeAccountPrivate = "ACCOUNT_PRIVATE"
	// CodeContentPrivate is the post-level privacy failure. It is surfaced with
	// not-found semantics so the existence of a private post is never leaked.
	CodeContentPrivate = "CONTENT_PRIVATE"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewSelfFollowError rejects follow requests whose actor and target are the same user.
func NewSelfFollowError() *AppError {
	return &AppError{
		Code:    CodeSelfFollow,
		Message: "You cannot follow yourself",
	}
}

// NewAlreadyFollowingError signals an existing accepted edge for the ordered pair.
func NewAlreadyFollowingError() *AppError {
	return &AppError{
		Code:    CodeAlreadyFollow,
		Message: "You are already following this user",
	}
}

// NewAlreadyPendingError signals an existing pending edge for the ordered pair.
func NewAlreadyPendingError() *AppError {
	return &AppError{
		Code:    CodeAlreadyPend,
		Message: "You already have a pending follow request for this user",
	}
}

// NewRequestNotFoundError signals that no pending follow request matches.
func NewRequestNotFoundError() *AppError {
	return &AppError{
		Code:    CodeRequestGone,
		Message: "Follow request not found",
	}
}

// NewDuplicateEdgeError reports a lost race on edge creation: a concurrent
// insert for the same ordered pair won. Callers should re-read the edge and
// surface AlreadyFollowing/AlreadyPending instead where possible.
func NewDuplicateEdgeError(err error) *AppError {
	return &AppError{
		Code:    CodeDuplicateEdge,
		Message: "A follow relationship for this user already exists",
		Err:     err,
	}
}

// NewAccountPrivateError is the account-privacy tier failure (403 semantics).
func NewAccountPrivateError() *AppError {
	return &AppError{
		Code:    CodeAccountPrivate,
		Message: "This account is private",
	}
}

// NewContentPrivateError is the post-privacy tier failure (404 semantics;
// the message deliberately matches a plain missing post).
func NewContentPrivateError() *AppError {
	return &AppError{
		Code:    CodeContentPrivate,
		Message: "Post not found",
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		// Over the wire a private post is indistinguishable from a missing one.
		if appErr.Code == CodeContentPrivate {
			response.Code = CodeNotFound
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
