package circuit

import (
	"fmt"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"

	"github.com/NoodlesOfWrath/ACL/compiler/part"
)

type (
	CycleError struct {
		Circuit string
		Left    int
	}

	// element is a part or a boundary pin during evaluation.
	element struct {
		in, nin   Pin
		out, nout Pin

		p part.Part // nil for boundary
	}
)

// Evaluate computes all output pins from all input pins.
// Input pins driven by wires take the value of their driver,
// the others take the value from in.
func (c *Circuit) Evaluate(in []float64) (_ []float64, err error) {
	if err = part.CheckArity(c, in); err != nil {
		return nil, err
	}

	if err = c.Validate(); err != nil {
		return nil, errors.Wrap(err, "%v", c.Name())
	}

	els := c.elements()

	owner := make([]int, c.nextOut)
	for id, e := range els {
		for k := Pin(0); k < e.nout; k++ {
			owner[e.out+k] = id
		}
	}

	drv := make([]Pin, c.nextIn)
	for i := range drv {
		drv[i] = NoPin
	}

	for _, w := range c.Wires {
		drv[w.To] = w.From
	}

	indeg := make([]int, len(els))
	succ := make([][]int, len(els))

	for id, e := range els {
		for k := Pin(0); k < e.nin; k++ {
			d := drv[e.in+k]
			if d == NoPin {
				continue
			}

			indeg[id]++
			succ[owner[d]] = append(succ[owner[d]], id)
		}
	}

	ready := heap.Heap[int]{Less: func(d []int, i, j int) bool { return d[i] < d[j] }}

	for id := range els {
		if indeg[id] == 0 {
			ready.Push(id)
		}
	}

	inv := append([]float64(nil), in...)
	outv := make([]float64, c.nextOut)

	done := 0

	for ready.Len() != 0 {
		id := ready.Pop()
		e := els[id]

		args := make([]float64, e.nin)

		for k := Pin(0); k < e.nin; k++ {
			p := e.in + k

			if d := drv[p]; d != NoPin {
				inv[p] = outv[d]
			}

			args[k] = inv[p]
		}

		res := args

		if e.p != nil {
			res, err = e.p.Evaluate(args)
			if err != nil {
				return nil, errors.Wrap(err, "%v: part %d", c.Name(), id)
			}
		}

		copy(outv[e.out:e.out+e.nout], res)

		done++

		for _, s := range succ[id] {
			indeg[s]--

			if indeg[s] == 0 {
				ready.Push(s)
			}
		}
	}

	if done != len(els) {
		return nil, CycleError{Circuit: c.Name(), Left: len(els) - done}
	}

	return outv, nil
}

// Run drives program inputs with args in order and returns program outputs.
func (c *Circuit) Run(args []float64) ([]float64, error) {
	if len(args) != len(c.ProgramInputs) {
		return nil, part.ArityError{Part: c.Name(), Want: len(c.ProgramInputs), Got: len(args)}
	}

	in := make([]float64, c.nextIn)

	for i, b := range c.ProgramInputs {
		in[b.In] = args[i]
	}

	out, err := c.Evaluate(in)
	if err != nil {
		return nil, err
	}

	res := make([]float64, len(c.ProgramOutputs))

	for i, b := range c.ProgramOutputs {
		res[i] = out[b.Out]
	}

	return res, nil
}

func (c *Circuit) elements() []element {
	els := make([]element, 0, len(c.Parts)+len(c.ProgramInputs)+len(c.ProgramOutputs))

	for i, p := range c.Parts {
		els = append(els, element{
			in:   c.Infos[i].Input,
			nin:  Pin(p.InputPinCount()),
			out:  c.Infos[i].Output,
			nout: Pin(p.OutputPinCount()),
			p:    p,
		})
	}

	for _, l := range [][]Boundary{c.ProgramInputs, c.ProgramOutputs} {
		for _, b := range l {
			els = append(els, element{in: b.In, nin: 1, out: b.Out, nout: 1})
		}
	}

	return els
}

func (e CycleError) Error() string {
	return fmt.Sprintf("%v: combinational cycle, %d elements unreachable", e.Circuit, e.Left)
}
