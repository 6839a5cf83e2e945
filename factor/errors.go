package factor

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrExhausted is returned when every attempt produced an odd period, a
// trivial square root, or a retryable oracle failure. Callers may retry
// with a larger attempt budget or a different backend.
var ErrExhausted = errors.New("factor: attempts exhausted")

// InvalidInputError reports a modulus the reduction cannot succeed on.
// It is surfaced before any oracle call is made.
type InvalidInputError struct {
	N      *big.Int
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("factor: invalid modulus %s: %s", e.N.String(), e.Reason)
}
