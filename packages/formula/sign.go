package formula

// Sign is the multiplier an addition or subtraction applies to its right
// operand
type Sign int

const (
	Plus  Sign = 1
	Minus Sign = -1
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// SignOf returns the sign for an Add or Subtract token kind
func SignOf(kind Kind) (Sign, bool) {
	switch kind {
	case KindAdd:
		return Plus, true
	case KindSubtract:
		return Minus, true
	default:
		return 0, false
	}
}

// OperationSign is an Add or Subtract node. a chain like 1 - 2 + 3 becomes
// a sum of signed operands: +1, -2, +3.
type OperationSign struct {
	Sign Sign
	Pos  int
}

// NewOperationSign builds the node for an Add or Subtract token
func NewOperationSign(tok Token) (OperationSign, bool) {
	sign, ok := SignOf(tok.Kind)
	if !ok {
		return OperationSign{}, false
	}
	return OperationSign{Sign: sign, Pos: tok.Pos}, true
}

// Apply multiplies x by the sign
func (o OperationSign) Apply(x float64) float64 {
	return float64(o.Sign) * x
}

// SignedOperand is an operand with the sign of the operator before it
type SignedOperand struct {
	Sign  Sign
	Value Primitive
}

// SumSigned adds the operands with their signs. an error value among them
// is returned unchanged as the error, and text that is not numeric is a
// #VALUE! error value.
func SumSigned(operands ...SignedOperand) (float64, error) {
	values := make([]Primitive, len(operands))
	for i, op := range operands {
		values[i] = op.Value
	}

	total := 0.0
	i := 0
	for v, err := range CoerceSequence(values...) {
		if err != nil {
			return 0, err
		}
		num, ok := v.(float64)
		if !ok {
			return 0, NewSpreadsheetError(ErrorCodeValue, "", map[string]any{"value": v})
		}
		sign := operands[i].Sign
		if sign == 0 {
			sign = Plus
		}
		total += float64(sign) * num
		i++
	}
	return total, nil
}
