package repository

import (
	"net/http"
	"strconv"
)

// Result is the outcome envelope every repository and service operation
// returns. StatusCode mirrors HTTP semantics so the REST boundary can map
// it to a response without re-deriving the outcome.
type Result struct {
	Succeeded  bool   `json:"succeeded"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error,omitempty"`
}

// TypedResult carries a single payload alongside the outcome.
type TypedResult[T any] struct {
	Result
	Data T `json:"data,omitempty"`
}

// ListResult carries a page of items plus the counts list views render.
// DisplayCount caps at "999+" so clients never paint a five-digit badge.
type ListResult[T any] struct {
	Result
	Items        []T    `json:"items"`
	TotalCount   int64  `json:"totalCount"`
	UnreadCount  int64  `json:"unreadCount"`
	DisplayCount string `json:"displayCount,omitempty"`
}

// CountResult carries a bare count.
type CountResult struct {
	Result
	Count int64 `json:"count"`
}

// NavigationResult wraps a single item with its position within the list
// the client navigated from. Position fields are zeroed when the caller
// did not supply list context.
type NavigationResult[T any] struct {
	Result
	Data         T      `json:"data,omitempty"`
	CurrentIndex int    `json:"currentIndex"`
	TotalCount   int64  `json:"totalCount"`
	HasNext      bool   `json:"hasNext"`
	HasPrevious  bool   `json:"hasPrevious"`
	NextID       string `json:"nextId,omitempty"`
	PreviousID   string `json:"previousId,omitempty"`
}

func OkResult() Result {
	return Result{Succeeded: true, StatusCode: http.StatusOK}
}

func OkMessageResult(message string) Result {
	return Result{Succeeded: true, StatusCode: http.StatusOK, Error: message}
}

func CreatedResult() Result {
	return Result{Succeeded: true, StatusCode: http.StatusCreated}
}

func InvalidResult(message string) Result {
	return Result{Succeeded: false, StatusCode: http.StatusBadRequest, Error: message}
}

func ForbiddenResult(message string) Result {
	return Result{Succeeded: false, StatusCode: http.StatusForbidden, Error: message}
}

func NotFoundResult(message string) Result {
	return Result{Succeeded: false, StatusCode: http.StatusNotFound, Error: message}
}

func InternalResult(err error) Result {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Result{Succeeded: false, StatusCode: http.StatusInternalServerError, Error: msg}
}

// DisplayCount renders an unread badge value, capping at 999.
func DisplayCount(count int64) string {
	if count > 999 {
		return "999+"
	}
	return strconv.FormatInt(count, 10)
}
