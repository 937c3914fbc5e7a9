// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string matching. For example, ErrPostExists signals that the
// one-post-per-user rule blocked a create.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by user creation when the email address is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrPostExists is returned when a user who already owns a post tries
// to create another one. The UNIQUE index on posts.user_id raises this
// even under concurrent creates.
var ErrPostExists = errors.New("post already exists for user")

// ErrSelfRequest is returned when a user tries to send a connection
// request to themselves.
var ErrSelfRequest = errors.New("cannot send request to yourself")

// DuplicateRequestError is returned when a request already exists for
// the same ordered (sender, receiver) pair. It carries the status of
// the existing request so the client can report it.
type DuplicateRequestError struct {
    Status string
}

func (e *DuplicateRequestError) Error() string {
    return "request already " + e.Status
}
