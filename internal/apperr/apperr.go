package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain error that knows which HTTP status it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

var (
	ErrInsufficientMembers  = New(http.StatusBadRequest, "group must have at least 3 members")
	ErrNotAGroup            = New(http.StatusBadRequest, "this is not a group chat")
	ErrNotAuthorized        = New(http.StatusForbidden, "you are not allowed to do that")
	ErrMemberLimitExceeded  = New(http.StatusBadRequest, "group members limit reached")
	ErrMinimumSizeViolation = New(http.StatusBadRequest, "group must have at least 3 members")
	ErrEmptyMessage         = New(http.StatusBadRequest, "message must have content or attachments")
	ErrTooManyAttachments   = New(http.StatusBadRequest, "attachments can't be more than 5")
	ErrNotAMember           = New(http.StatusForbidden, "you are not a member of this chat")
	ErrDuplicateRequest     = New(http.StatusBadRequest, "friend request already exists")
	ErrRequestNotYours      = New(http.StatusUnauthorized, "you are not authorized to respond to this request")

	ErrChatNotFound    = New(http.StatusNotFound, "chat not found")
	ErrUserNotFound    = New(http.StatusNotFound, "user not found")
	ErrRequestNotFound = New(http.StatusNotFound, "friend request not found")
)

// Status extracts the HTTP status carried by err, or 500 for anything
// that is not a domain error.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show a client. Internal
// failures are never leaked.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
