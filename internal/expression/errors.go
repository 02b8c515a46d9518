package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation is returned when a line contains no supported operator.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidOperand is matched by every *OperandError.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrUnknownOperator is returned by Evaluate for an Operator outside the
	// supported set.
	ErrUnknownOperator = errors.New("unknown operator")
)

// OperandError reports an operand that is not a numeric literal
type OperandError struct {
	Text string `json:"text"`
	Err  error  `json:"-"`
}

// Error implements the error interface
func (e *OperandError) Error() string {
	if e.Err == nil || errors.Is(e.Err, ErrInvalidOperand) {
		return fmt.Sprintf("invalid operand %q", e.Text)
	}
	return fmt.Sprintf("invalid operand %q: %v", e.Text, e.Err)
}

func (e *OperandError) Unwrap() error { return e.Err }

func (e *OperandError) Is(target error) bool { return target == ErrInvalidOperand }
