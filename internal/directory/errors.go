package directory

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork covers transport failures, non-2xx responses and errors
	// reported by the service itself.
	KindNetwork Kind = iota + 1
	// KindParse covers response bodies that are not the expected JSON.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against an *Error of the matching Kind.
var (
	ErrNetwork = errors.New("directory: network error")
	ErrParse   = errors.New("directory: parse error")
)

// Error is returned by FetchUsers for every failure.
type Error struct {
	Kind   Kind
	Op     string
	Status int // HTTP status when the server answered, else 0
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrNetwork and ErrParse by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func networkError(op string, status int, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Status: status, Err: err}
}

func parseError(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}
