package expression

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is a parsed calculation: an operator and its two operands.
type Request struct {
	Operator Operator `json:"operator"`
	Left     float64  `json:"left"`
	Right    float64  `json:"right"`
}

// Parse classifies line, splits it at the operator and parses both operands.
func Parse(line string) (Request, error) {
	op, err := Classify(line)
	if err != nil {
		return Request{}, err
	}

	leftText, rightText := Split(line, op)

	left, err := ParseOperand(leftText)
	if err != nil {
		return Request{}, fmt.Errorf("left operand: %w", err)
	}

	right, err := ParseOperand(rightText)
	if err != nil {
		return Request{}, fmt.Errorf("right operand: %w", err)
	}

	return Request{Operator: op, Left: left, Right: right}, nil
}

// ParseOperand parses a floating-point literal. Besides decimal and exponent
// forms it accepts the words inf, infinity and nan in any case with an
// optional sign. Hexadecimal literals are rejected. Out-of-range values
// saturate to ±Inf or 0 rather than failing.
func ParseOperand(s string) (float64, error) {
	text := strings.TrimSpace(s)
	unsigned := strings.TrimLeft(text, "+-")

	switch {
	case text == "":
		return 0, &OperandError{Text: s, Err: ErrInvalidOperand}
	case len(text)-len(unsigned) > 1:
		return 0, &OperandError{Text: s, Err: ErrInvalidOperand}
	case hasHexPrefix(unsigned):
		return 0, &OperandError{Text: s, Err: ErrInvalidOperand}
	case strings.EqualFold(unsigned, "nan"):
		return math.NaN(), nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, &OperandError{Text: s, Err: err}
	}
	return f, nil
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
