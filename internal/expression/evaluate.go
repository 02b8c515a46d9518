package expression

import (
	"fmt"

	"github.com/lacquerai/calq/internal/arith"
)

// Evaluate applies the request's operator to its operands.
func Evaluate(req Request) (arith.Outcome, error) {
	switch req.Operator {
	case OperatorAdd:
		return arith.Number(arith.Add(req.Left, req.Right)), nil
	case OperatorSubtract:
		return arith.Number(arith.Subtract(req.Left, req.Right)), nil
	case OperatorMultiply:
		return arith.Number(arith.Multiply(req.Left, req.Right)), nil
	case OperatorDivide:
		return arith.Divide(req.Left, req.Right), nil
	default:
		return arith.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownOperator, string(req.Operator))
	}
}
