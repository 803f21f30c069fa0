package contract

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	ValidationError ErrorKind = iota + 1
	AuthorizationError
	StateError
	EconomicError
)

func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case AuthorizationError:
		return "authorization"
	case StateError:
		return "state"
	case EconomicError:
		return "economic"
	}
	return "unknown"
}

// Error is a rejected transaction. Its message is what lands in the
// transaction's logs; every other error aborts the replay.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: ValidationError, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(msg string) error {
	return &Error{Kind: AuthorizationError, Message: msg}
}

func stateErr(msg string) error {
	return &Error{Kind: StateError, Message: msg}
}

func economic(msg string) error {
	return &Error{Kind: EconomicError, Message: msg}
}

// errTokenMissing means a pool outlived its token, which the ledger never allows.
func errTokenMissing(symbol string) error {
	return errors.Errorf("token %s of an existing reward pool not found", symbol)
}
