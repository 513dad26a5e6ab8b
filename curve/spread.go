package curve

import "fmt"

// SpreadOp combines the values of the curves in a SpreadCurve.
type SpreadOp string

const (
	SpreadAdd      SpreadOp = "ADD"
	SpreadMultiply SpreadOp = "MULTIPLY"
)

// SpreadCurve evaluates a base curve combined with one or more spread curves.
type SpreadCurve struct {
	op     SpreadOp
	curves []Curve
}

// NewSpread composes base with spreads under op.
func NewSpread(op SpreadOp, base Curve, spreads ...Curve) (*SpreadCurve, error) {
	if op != SpreadAdd && op != SpreadMultiply {
		return nil, fmt.Errorf("curve.NewSpread: unknown op %q", op)
	}
	if base == nil || len(spreads) == 0 {
		return nil, fmt.Errorf("curve.NewSpread: %w: need a base and at least one spread curve", ErrInvalidCurve)
	}
	curves := make([]Curve, 0, len(spreads)+1)
	curves = append(curves, base)
	for i, s := range spreads {
		if s == nil {
			return nil, fmt.Errorf("curve.NewSpread: %w: spread %d is nil", ErrInvalidCurve, i)
		}
		curves = append(curves, s)
	}
	return &SpreadCurve{op: op, curves: curves}, nil
}

func (c *SpreadCurve) Value(t float64) float64 {
	v := c.curves[0].Value(t)
	for _, s := range c.curves[1:] {
		switch c.op {
		case SpreadAdd:
			v += s.Value(t)
		case SpreadMultiply:
			v *= s.Value(t)
		}
	}
	return v
}

// Op returns the combining operation.
func (c *SpreadCurve) Op() SpreadOp {
	return c.op
}

// Base returns the curve the spreads are applied to.
func (c *SpreadCurve) Base() Curve {
	return c.curves[0]
}
