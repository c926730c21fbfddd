// Package circuit is the compilation target: a graph of parts wired by indexed pins.
//
// A Circuit has two numbering spaces, input pins and output pins.
// Both are allocated monotonically starting from 0 and never reused.
// A wire always goes from an output pin to an input pin.
//
// Program inputs and outputs are boundary pins without a backing part.
// Each takes one slot in both spaces: for a program input the input pin is
// what the embedder drives and the output pin is what the circuit body reads;
// for a program output the input pin is driven from inside and the output pin
// is what the embedder reads.
package circuit

import (
	"github.com/NoodlesOfWrath/ACL/compiler/part"
)

type (
	Pin int

	PartInfo struct {
		Input  Pin
		Output Pin
	}

	Wire struct {
		From Pin // output pin
		To   Pin // input pin
	}

	Boundary struct {
		In  Pin
		Out Pin
	}

	Circuit struct {
		Label string // display name, usually the function name

		Parts []part.Part
		Infos []PartInfo

		Wires []Wire

		ProgramInputs  []Boundary
		ProgramOutputs []Boundary

		nextIn  Pin
		nextOut Pin
	}
)

const NoPin Pin = -1

var _ part.Part = (*Circuit)(nil)

func New(name string) *Circuit {
	return &Circuit{Label: name}
}

// AddPart appends p and reserves contiguous blocks of its input and output pins.
func (c *Circuit) AddPart(p part.Part) PartInfo {
	info := PartInfo{
		Input:  c.nextIn,
		Output: c.nextOut,
	}

	c.nextIn += Pin(p.InputPinCount())
	c.nextOut += Pin(p.OutputPinCount())

	c.Parts = append(c.Parts, p)
	c.Infos = append(c.Infos, info)

	return info
}

func (c *Circuit) AddProgramInput() Boundary {
	b := c.boundary()

	c.ProgramInputs = append(c.ProgramInputs, b)

	return b
}

func (c *Circuit) AddProgramOutput() Boundary {
	b := c.boundary()

	c.ProgramOutputs = append(c.ProgramOutputs, b)

	return b
}

func (c *Circuit) boundary() Boundary {
	b := Boundary{In: c.nextIn, Out: c.nextOut}

	c.nextIn++
	c.nextOut++

	return b
}

// Connect records a wire. Fan-in is checked by Validate, not here.
func (c *Circuit) Connect(from, to Pin) {
	c.Wires = append(c.Wires, Wire{From: from, To: to})
}

func (c *Circuit) InputPinCount() int  { return int(c.nextIn) }
func (c *Circuit) OutputPinCount() int { return int(c.nextOut) }

func (c *Circuit) Name() string {
	if c.Label == "" {
		return "Circuit"
	}

	return c.Label
}

func (c *Circuit) Clone() part.Part {
	return c.Copy()
}

// Copy is Clone returning the concrete type.
func (c *Circuit) Copy() *Circuit {
	n := &Circuit{
		Label:          c.Label,
		Parts:          make([]part.Part, len(c.Parts)),
		Infos:          append([]PartInfo(nil), c.Infos...),
		Wires:          append([]Wire(nil), c.Wires...),
		ProgramInputs:  append([]Boundary(nil), c.ProgramInputs...),
		ProgramOutputs: append([]Boundary(nil), c.ProgramOutputs...),
		nextIn:         c.nextIn,
		nextOut:        c.nextOut,
	}

	for i, p := range c.Parts {
		n.Parts[i] = p.Clone()
	}

	return n
}
