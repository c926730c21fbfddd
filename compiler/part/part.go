// Package part defines circuit elements.
//
// Every element has a fixed number of input and output pins and a pure
// evaluation function over real-valued samples. Evaluation is used for
// simulating assembled circuits only, never during compilation.
package part

import (
	"fmt"

	"tlog.app/go/errors"
)

type (
	Part interface {
		Evaluate(in []float64) ([]float64, error)

		InputPinCount() int
		OutputPinCount() int

		Name() string

		// Clone returns an independent deep copy.
		Clone() Part
	}

	ArityError struct {
		Part string
		Want int
		Got  int
	}
)

var ErrUnimplemented = errors.New("unimplemented")

// Lookup returns a fresh primitive by its display name.
func Lookup(name string) (Part, bool) {
	switch name {
	case "Adder":
		return Adder{}, true
	case "Subtractor":
		return Subtractor{}, true
	case "Multiplier":
		return Multiplier{}, true
	case "Divider":
		return Divider{}, true
	case "Comparator":
		return Comparator{}, true
	case "And":
		return And{}, true
	case "IfGate":
		return IfGate{}, true
	case "Constant":
		return Constant{}, true
	case "Resistor":
		return Resistor{Resistance: 1}, true
	default:
		return nil, false
	}
}

func CheckArity(p Part, in []float64) error {
	if len(in) != p.InputPinCount() {
		return ArityError{Part: p.Name(), Want: p.InputPinCount(), Got: len(in)}
	}

	return nil
}

func (e ArityError) Error() string {
	return fmt.Sprintf("%v: %d inputs expected, got %d", e.Part, e.Want, e.Got)
}
