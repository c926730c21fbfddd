package part

import (
	"math"

	"tlog.app/go/errors"
)

type (
	Adder      struct{}
	Subtractor struct{}
	Multiplier struct{}
	Divider    struct{}

	// Comparator outputs 1 if the first input is greater than the second, 0 otherwise.
	Comparator struct{}

	And struct{}

	// IfGate routes its data input by the control input.
	// Input 0 is the control, input 1 is the data.
	// Control rounding to 0 sends data to output 0, anything else to output 1.
	// The other output carries 0.
	IfGate struct{}

	Constant struct {
		Value float64
	}

	Resistor struct {
		Resistance float64 // ohms
	}
)

func (Adder) Evaluate(in []float64) ([]float64, error) {
	return binary(Adder{}, in, func(a, b float64) float64 { return a + b })
}

func (Subtractor) Evaluate(in []float64) ([]float64, error) {
	return binary(Subtractor{}, in, func(a, b float64) float64 { return a - b })
}

func (Multiplier) Evaluate(in []float64) ([]float64, error) {
	return binary(Multiplier{}, in, func(a, b float64) float64 { return a * b })
}

func (Divider) Evaluate(in []float64) ([]float64, error) {
	return binary(Divider{}, in, func(a, b float64) float64 { return a / b })
}

func (Comparator) Evaluate(in []float64) ([]float64, error) {
	return nil, errors.Wrap(ErrUnimplemented, "Comparator")
}

func (And) Evaluate(in []float64) ([]float64, error) {
	return nil, errors.Wrap(ErrUnimplemented, "And")
}

func (g IfGate) Evaluate(in []float64) ([]float64, error) {
	if err := CheckArity(g, in); err != nil {
		return nil, err
	}

	if math.Round(in[0]) == 0 {
		return []float64{in[1], 0}, nil
	}

	return []float64{0, in[1]}, nil
}

func (c Constant) Evaluate(in []float64) ([]float64, error) {
	if err := CheckArity(c, in); err != nil {
		return nil, err
	}

	return []float64{c.Value}, nil
}

// Evaluate gives the current through the resistor for the input voltage.
func (r Resistor) Evaluate(in []float64) ([]float64, error) {
	if err := CheckArity(r, in); err != nil {
		return nil, err
	}

	return []float64{in[0] / r.Resistance}, nil
}

func binary(p Part, in []float64, op func(a, b float64) float64) ([]float64, error) {
	if err := CheckArity(p, in); err != nil {
		return nil, err
	}

	return []float64{op(in[0], in[1])}, nil
}

func (Adder) Name() string      { return "Adder" }
func (Subtractor) Name() string { return "Subtractor" }
func (Multiplier) Name() string { return "Multiplier" }
func (Divider) Name() string    { return "Divider" }
func (Comparator) Name() string { return "Comparator" }
func (And) Name() string        { return "And" }
func (IfGate) Name() string     { return "IfGate" }
func (Constant) Name() string   { return "Constant" }
func (Resistor) Name() string   { return "Resistor" }

func (Adder) InputPinCount() int      { return 2 }
func (Subtractor) InputPinCount() int { return 2 }
func (Multiplier) InputPinCount() int { return 2 }
func (Divider) InputPinCount() int    { return 2 }
func (Comparator) InputPinCount() int { return 2 }
func (And) InputPinCount() int        { return 2 }
func (IfGate) InputPinCount() int     { return 2 }
func (Constant) InputPinCount() int   { return 0 }
func (Resistor) InputPinCount() int   { return 1 }

func (Adder) OutputPinCount() int      { return 1 }
func (Subtractor) OutputPinCount() int { return 1 }
func (Multiplier) OutputPinCount() int { return 1 }
func (Divider) OutputPinCount() int    { return 1 }
func (Comparator) OutputPinCount() int { return 1 }
func (And) OutputPinCount() int        { return 1 }
func (IfGate) OutputPinCount() int     { return 2 }
func (Constant) OutputPinCount() int   { return 1 }
func (Resistor) OutputPinCount() int   { return 1 }

func (p Adder) Clone() Part      { return p }
func (p Subtractor) Clone() Part { return p }
func (p Multiplier) Clone() Part { return p }
func (p Divider) Clone() Part    { return p }
func (p Comparator) Clone() Part { return p }
func (p And) Clone() Part        { return p }
func (p IfGate) Clone() Part     { return p }
func (p Constant) Clone() Part   { return p }
func (p Resistor) Clone() Part   { return p }
