package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/NoodlesOfWrath/ACL/compiler/part"
)

// sum builds a circuit returning the sum of its two inputs.
func sum(t testing.TB) *Circuit {
	c := New("sum")

	a := c.AddProgramInput()
	b := c.AddProgramInput()

	add := c.AddPart(part.Adder{})

	c.Connect(a.Out, add.Input)
	c.Connect(b.Out, add.Input+1)

	o := c.AddProgramOutput()

	c.Connect(add.Output, o.In)

	require.NoError(t, c.Validate())

	return c
}

func TestAllocation(t *testing.T) {
	c := New("")

	assert.Equal(t, "Circuit", c.Name())

	a := c.AddProgramInput()
	assert.Equal(t, Boundary{In: 0, Out: 0}, a)

	g := c.AddPart(part.IfGate{})
	assert.Equal(t, PartInfo{Input: 1, Output: 1}, g)

	k := c.AddPart(part.Constant{Value: 1})
	assert.Equal(t, PartInfo{Input: 3, Output: 3}, k)

	r := c.AddPart(part.Resistor{Resistance: 1})
	assert.Equal(t, PartInfo{Input: 3, Output: 4}, r)

	o := c.AddProgramOutput()
	assert.Equal(t, Boundary{In: 4, Out: 5}, o)

	assert.Equal(t, 5, c.InputPinCount())
	assert.Equal(t, 6, c.OutputPinCount())
}

func TestRun(t *testing.T) {
	c := sum(t)

	res, err := c.Run([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, res)

	_, err = c.Run([]float64{3})
	var ae part.ArityError
	assert.True(t, errors.As(err, &ae))
}

func TestEmbedded(t *testing.T) {
	tmpl := sum(t)

	top := New("main")

	x := top.AddProgramInput()

	calls := []*Circuit{tmpl.Copy(), tmpl.Copy()}
	var outs []Pin

	for i, sub := range calls {
		info := top.AddPart(sub)

		if i == 0 {
			top.Connect(x.Out, info.Input+sub.ProgramInputs[0].In)
			top.Connect(x.Out, info.Input+sub.ProgramInputs[1].In)
		} else {
			top.Connect(outs[0], info.Input+sub.ProgramInputs[0].In)
			top.Connect(x.Out, info.Input+sub.ProgramInputs[1].In)
		}

		outs = append(outs, info.Output+sub.ProgramOutputs[0].Out)
	}

	o := top.AddProgramOutput()
	top.Connect(outs[1], o.In)

	require.NoError(t, top.Validate())

	res, err := top.Run([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, []float64{15}, res)

	t.Logf("netlist:\n%s", top)
}

func TestValidate(t *testing.T) {
	t.Run("undriven", func(t *testing.T) {
		c := New("c")
		a := c.AddProgramInput()
		add := c.AddPart(part.Adder{})
		c.Connect(a.Out, add.Input)

		var pe PinError
		require.True(t, errors.As(c.Validate(), &pe))
		assert.Equal(t, add.Input+1, pe.Pin)
	})

	t.Run("double_driven", func(t *testing.T) {
		c := sum(t)
		c.Connect(c.ProgramInputs[0].Out, c.ProgramOutputs[0].In)

		var pe PinError
		require.True(t, errors.As(c.Validate(), &pe))
		assert.Equal(t, c.ProgramOutputs[0].In, pe.Pin)
	})

	t.Run("program_input_driven", func(t *testing.T) {
		c := sum(t)
		c.Connect(c.ProgramOutputs[0].Out, c.ProgramInputs[0].In)

		assert.Error(t, c.Validate())
	})

	t.Run("unallocated", func(t *testing.T) {
		c := sum(t)
		c.Connect(100, 0)

		var pe PinError
		require.True(t, errors.As(c.Validate(), &pe))
		assert.True(t, pe.Output)
	})

	t.Run("embedded_internal", func(t *testing.T) {
		tmpl := sum(t)

		c := New("c")
		a := c.AddProgramInput()
		info := c.AddPart(tmpl.Copy())

		c.Connect(a.Out, info.Input+tmpl.ProgramInputs[0].In)
		c.Connect(a.Out, info.Input+tmpl.ProgramInputs[1].In)
		c.Connect(a.Out, info.Input+tmpl.Infos[0].Input)

		assert.Error(t, c.Validate())
	})
}

func TestCycle(t *testing.T) {
	c := New("loop")

	a := c.AddProgramInput()
	add := c.AddPart(part.Adder{})

	c.Connect(a.Out, add.Input)
	c.Connect(add.Output, add.Input+1)

	require.NoError(t, c.Validate())

	_, err := c.Run([]float64{1})

	var ce CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "loop", ce.Circuit)
}

func TestCopyIsolation(t *testing.T) {
	tmpl := sum(t)

	top := New("top")
	top.AddPart(tmpl)

	cp := top.Copy()

	cp.Connect(0, 0)
	cp.Parts[0].(*Circuit).Connect(0, 0)
	cp.Parts[0].(*Circuit).AddPart(part.Adder{})

	assert.Len(t, top.Wires, 0)
	assert.Len(t, tmpl.Wires, 3)
	assert.Len(t, tmpl.Parts, 1)
	assert.NotSame(t, tmpl, cp.Parts[0])
}

func TestAppendText(t *testing.T) {
	c := sum(t)
	c.AddPart(part.Constant{Value: 2})
	c.AddPart(part.Resistor{Resistance: 1.5})

	text := c.String()

	assert.Contains(t, text, "circuit sum  inputs 6  outputs 6\n")
	assert.Contains(t, text, "part   0  Adder in2..3 out2\n")
	assert.Contains(t, text, "part   1  Constant(2) out4\n")
	assert.Contains(t, text, "part   2  Resistor(1.5 ohm) in5 out5\n")
	assert.Contains(t, text, "wire   out2 -> in4\n")
}
