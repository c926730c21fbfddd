package circuit

import (
	"fmt"

	"github.com/NoodlesOfWrath/ACL/compiler/set"
)

type (
	PinError struct {
		Pin    Pin
		Output bool
		Reason string
	}
)

// Validate checks pin discipline of the whole graph.
//
// Every wire connects allocated pins. Program inputs and pins internal to
// embedded circuits are never driven from here. Every primitive part input,
// every exposed input of an embedded circuit and every program output is
// driven by exactly one wire.
func (c *Circuit) Validate() error {
	required := set.MakeBits[Pin]()
	forbidden := set.MakeBits[Pin]()

	for i, p := range c.Parts {
		info := c.Infos[i]

		sub, ok := p.(*Circuit)
		if !ok {
			for k := 0; k < p.InputPinCount(); k++ {
				required.Set(info.Input + Pin(k))
			}

			continue
		}

		exposed := set.MakeBits[Pin]()

		for _, b := range sub.ProgramInputs {
			exposed.Set(b.In)
		}

		for k := Pin(0); k < sub.nextIn; k++ {
			if exposed.IsSet(k) {
				required.Set(info.Input + k)
			} else {
				forbidden.Set(info.Input + k)
			}
		}
	}

	for _, b := range c.ProgramInputs {
		forbidden.Set(b.In)
	}

	for _, b := range c.ProgramOutputs {
		required.Set(b.In)
	}

	driven := set.MakeBits[Pin]()

	for _, w := range c.Wires {
		if w.From < 0 || w.From >= c.nextOut {
			return PinError{Pin: w.From, Output: true, Reason: "wire from unallocated pin"}
		}

		if w.To < 0 || w.To >= c.nextIn {
			return PinError{Pin: w.To, Reason: "wire to unallocated pin"}
		}

		if forbidden.IsSet(w.To) {
			return PinError{Pin: w.To, Reason: "boundary or embedded internal pin driven"}
		}

		if !driven.Add(w.To) {
			return PinError{Pin: w.To, Reason: "driven more than once"}
		}
	}

	var err error

	required.Range(func(p Pin) bool {
		if driven.IsSet(p) {
			return true
		}

		err = PinError{Pin: p, Reason: "not driven"}

		return false
	})

	return err
}

func (e PinError) Error() string {
	space := "input"
	if e.Output {
		space = "output"
	}

	return fmt.Sprintf("%v pin %d: %v", space, e.Pin, e.Reason)
}
