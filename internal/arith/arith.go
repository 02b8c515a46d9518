// Package arith implements the four arithmetic operations the calculator
// supports. Division reports a zero divisor as an Outcome instead of
// producing Inf or panicking.
package arith

import "errors"

// ErrDivisionByZero is the error carried by the division-by-zero Outcome.
var ErrDivisionByZero = errors.New("Division by zero")

// Kind tags the variant held by an Outcome
type Kind int

const (
	KindNumber Kind = iota
	KindDivisionByZero
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDivisionByZero:
		return "division_by_zero"
	default:
		return "unknown"
	}
}

// Outcome is the result of an arithmetic operation: either a number or the
// division-by-zero marker.
type Outcome struct {
	kind  Kind
	value float64
}

// Number wraps v in a numeric Outcome.
func Number(v float64) Outcome {
	return Outcome{kind: KindNumber, value: v}
}

// DivisionByZero returns the zero-divisor Outcome.
func DivisionByZero() Outcome {
	return Outcome{kind: KindDivisionByZero}
}

func (o Outcome) Kind() Kind { return o.kind }

// Value returns the numeric value and whether the Outcome holds one.
func (o Outcome) Value() (float64, bool) {
	if o.kind != KindNumber {
		return 0, false
	}
	return o.value, true
}

// Err returns nil for numeric outcomes.
func (o Outcome) Err() error {
	if o.kind == KindDivisionByZero {
		return ErrDivisionByZero
	}
	return nil
}

// String renders the Outcome the way the calculator prints it after
// "Result: ".
func (o Outcome) String() string {
	if err := o.Err(); err != nil {
		return "Error: " + err.Error()
	}
	return FormatNumber(o.value)
}

func Add(x, y float64) float64 { return x + y }

func Subtract(x, y float64) float64 { return x - y }

func Multiply(x, y float64) float64 { return x * y }

// Divide returns x / y, or the division-by-zero Outcome when y is zero
// (either sign).
func Divide(x, y float64) Outcome {
	if y == 0 {
		return DivisionByZero()
	}
	return Number(x / y)
}
