package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"
)

func TestArithmetic(t *testing.T) {
	for _, tc := range []struct {
		p    Part
		in   []float64
		want float64
	}{
		{Adder{}, []float64{3, 4}, 7},
		{Subtractor{}, []float64{3, 4}, -1},
		{Multiplier{}, []float64{3, 4}, 12},
		{Divider{}, []float64{3, 4}, 0.75},
		{Resistor{Resistance: 2}, []float64{5}, 2.5},
		{Constant{Value: 9}, nil, 9},
	} {
		t.Run(tc.p.Name(), func(t *testing.T) {
			out, err := tc.p.Evaluate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, []float64{tc.want}, out)
		})
	}
}

func TestIfGate(t *testing.T) {
	var g IfGate

	out, err := g.Evaluate([]float64{0, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0}, out)

	out, err = g.Evaluate([]float64{1, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5}, out)

	out, err = g.Evaluate([]float64{0.4, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0}, out, "control rounds to 0")

	out, err = g.Evaluate([]float64{-3, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5}, out)
}

func TestUnimplemented(t *testing.T) {
	_, err := Comparator{}.Evaluate([]float64{1, 2})
	assert.True(t, errors.Is(err, ErrUnimplemented))

	_, err = And{}.Evaluate([]float64{1, 1})
	assert.True(t, errors.Is(err, ErrUnimplemented))
}

func TestArity(t *testing.T) {
	_, err := Adder{}.Evaluate([]float64{1})

	var ae ArityError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, ArityError{Part: "Adder", Want: 2, Got: 1}, ae)

	_, err = IfGate{}.Evaluate([]float64{1, 2, 3})
	assert.Error(t, err)

	_, err = Constant{}.Evaluate([]float64{1})
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"Adder", "Subtractor", "Multiplier", "Divider", "Comparator", "And", "IfGate", "Constant", "Resistor"} {
		p, ok := Lookup(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, name, p.Name())
			assert.Equal(t, p, p.Clone())
		}
	}

	_, ok := Lookup("Capacitor")
	assert.False(t, ok)

	p, _ := Lookup("Resistor")
	out, err := p.Evaluate([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, out)
}
