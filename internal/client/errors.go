package client

import "fmt"

// Operation names a repository call.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// RepositoryError is returned for every failed call against the expense API.
type RepositoryError struct {
	Op  Operation
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s expenses: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// StatusError is the cause of a RepositoryError when the API answered with a
// non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d", e.Code)
	}

	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}
