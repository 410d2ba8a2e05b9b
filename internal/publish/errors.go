package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Kind classifies a publish failure for logging and retry decisions.
type Kind string

const (
	KindAuth           Kind = "auth"
	KindRemoteConflict Kind = "remote_conflict"
	KindTimeout        Kind = "timeout"
	KindOther          Kind = "other"
)

// Error is a classified publish failure, annotated with the pipeline step
// (stage, commit, push) it occurred in.
type Error struct {
	Kind Kind
	Step string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("publish %s failed (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps err with the failure kind inferred from it.
func classify(step string, err error) *Error {
	return &Error{Kind: kindOf(err), Step: step, Err: err}
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod):
		return KindAuth
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "non-fast-forward"):
		return KindRemoteConflict
	case strings.Contains(msg, "authentication"), strings.Contains(msg, "authorization"):
		return KindAuth
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return KindTimeout
	default:
		return KindOther
	}
}
