package circuit

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/tlog/tlwire"

	"github.com/NoodlesOfWrath/ACL/compiler/part"
)

// AppendText appends human readable netlist.
// Embedded circuits are printed nested after their owner.
func (c *Circuit) AppendText(b []byte) []byte {
	return c.appendText(b, 0)
}

func (c *Circuit) appendText(b []byte, d int) []byte {
	b = app(b, d, "circuit %s  inputs %d  outputs %d\n", c.Name(), c.nextIn, c.nextOut)

	for i, x := range c.ProgramInputs {
		b = app(b, d+1, "input  %d  in%d -> out%d\n", i, x.In, x.Out)
	}

	for i, x := range c.ProgramOutputs {
		b = app(b, d+1, "output %d  in%d -> out%d\n", i, x.In, x.Out)
	}

	for i, p := range c.Parts {
		info := c.Infos[i]

		b = app(b, d+1, "part   %d  %s", i, p.Name())

		switch p := p.(type) {
		case part.Constant:
			b = hfmt.Appendf(b, "(%v)", p.Value)
		case part.Resistor:
			b = hfmt.Appendf(b, "(%v ohm)", p.Resistance)
		}

		b = appRange(b, " in", info.Input, p.InputPinCount())
		b = appRange(b, " out", info.Output, p.OutputPinCount())
		b = append(b, '\n')
	}

	for _, w := range c.Wires {
		b = app(b, d+1, "wire   out%d -> in%d\n", w.From, w.To)
	}

	for _, p := range c.Parts {
		if sub, ok := p.(*Circuit); ok {
			b = sub.appendText(b, d+1)
		}
	}

	return b
}

func (c *Circuit) String() string {
	return string(c.AppendText(nil))
}

func appRange(b []byte, pref string, st Pin, n int) []byte {
	switch n {
	case 0:
		return b
	case 1:
		return hfmt.Appendf(b, "%s%d", pref, st)
	default:
		return hfmt.Appendf(b, "%s%d..%d", pref, st, st+Pin(n)-1)
	}
}

func (w Wire) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt64(b, "from", int64(w.From))
	b = e.AppendKeyInt64(b, "to", int64(w.To))

	return b
}

func (p PartInfo) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt64(b, "in", int64(p.Input))
	b = e.AppendKeyInt64(b, "out", int64(p.Output))

	return b
}

func app(b []byte, d int, f string, args ...any) []byte {
	for i := 0; i < d; i++ {
		b = append(b, '\t')
	}

	return hfmt.Appendf(b, f, args...)
}
