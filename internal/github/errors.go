package github

import (
	"errors"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/api"
)

// NotFoundError is returned when a looked-up repository does not exist.
type NotFoundError struct {
	Owner string
	Name  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s/%s", e.Owner, e.Name)
}

// NetworkError wraps a transport-level failure talking to GitHub.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SearchError is returned when GitHub reports a GraphQL error for a query.
// Message holds the first error GitHub reported.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed: %s", e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// MutationError is returned when a star or subscription change fails.
type MutationError struct {
	Op  string
	ID  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// queryError converts an error from the GraphQL client into a SearchError
// when GitHub answered with GraphQL errors, or a NetworkError otherwise.
func queryError(err error) error {
	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) {
		msg := gqlErr.Error()
		if len(gqlErr.Errors) > 0 {
			msg = gqlErr.Errors[0].Message
		}
		return &SearchError{Message: msg, Err: err}
	}
	return &NetworkError{Err: err}
}

// isNotFoundResponse reports whether GitHub answered with a NOT_FOUND error.
func isNotFoundResponse(err error) bool {
	var gqlErr *api.GraphQLError
	if !errors.As(err, &gqlErr) {
		return false
	}
	for _, item := range gqlErr.Errors {
		if item.Type == "NOT_FOUND" {
			return true
		}
	}
	return false
}
