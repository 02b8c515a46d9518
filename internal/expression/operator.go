package expression

import "strings"

// Operator is the arithmetic action selected by an input line. Its value is
// the character that denotes it.
type Operator string

const (
	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
	OperatorMultiply Operator = "*"
	OperatorDivide   Operator = "/"
)

// classifyOrder is the order operators are tested in. The first one present
// anywhere in the line wins, regardless of where it appears, so "3-2+1" is an
// addition.
var classifyOrder = []Operator{
	OperatorAdd,
	OperatorSubtract,
	OperatorMultiply,
	OperatorDivide,
}

// Operators returns the supported operators in classification order.
func Operators() []Operator {
	ops := make([]Operator, len(classifyOrder))
	copy(ops, classifyOrder)
	return ops
}

func (o Operator) String() string { return string(o) }

// Name returns the lower-case operation name used in logs.
func (o Operator) Name() string {
	switch o {
	case OperatorAdd:
		return "add"
	case OperatorSubtract:
		return "subtract"
	case OperatorMultiply:
		return "multiply"
	case OperatorDivide:
		return "divide"
	default:
		return "unknown"
	}
}

// Classify returns the operator of line. It fails with ErrInvalidOperation
// when none of the four operator characters is present.
func Classify(line string) (Operator, error) {
	for _, op := range classifyOrder {
		if strings.Contains(line, string(op)) {
			return op, nil
		}
	}
	return "", ErrInvalidOperation
}

// Split cuts line at the first occurrence of op and trims both halves. Any
// later occurrence of op stays in the right-hand side.
func Split(line string, op Operator) (left, right string) {
	left, right, _ = strings.Cut(line, string(op))
	return strings.TrimSpace(left), strings.TrimSpace(right)
}
