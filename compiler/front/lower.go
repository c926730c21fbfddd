package front

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
	"github.com/NoodlesOfWrath/ACL/compiler/circuit"
	"github.com/NoodlesOfWrath/ACL/compiler/part"
)

var gates = map[ast.Operator]string{
	ast.Plus:     "Adder",
	ast.Minus:    "Subtractor",
	ast.Multiply: "Multiplier",
	ast.Divide:   "Divider",
}

func (t *Translator) lowerBlock(ctx context.Context, f *funContext, body []ast.Node) error {
	for i, s := range body {
		err := t.lowerStmt(ctx, f, s)
		if err != nil {
			return errors.Wrap(err, "stmt %d", i)
		}
	}

	return nil
}

func (t *Translator) lowerStmt(ctx context.Context, f *funContext, s ast.Node) (err error) {
	switch s := s.(type) {
	case *ast.Return:
		_, err = t.lowerReturn(ctx, f, s)
		if err != nil {
			return errors.Wrap(err, "return")
		}
	case *ast.IfStatement:
		err = t.lowerIf(ctx, f, s)
		if err != nil {
			return errors.Wrap(err, "if")
		}
	case *ast.Let:
		v, err := t.operand(ctx, f, s.Value)
		if err != nil {
			return errors.Wrap(err, "let %v", s.Name)
		}

		err = f.bind(s.Name, v)
		if err != nil {
			return errors.Wrap(err, "let %v", s.Name)
		}
	case ast.Expr:
		_, err = t.lowerExpr(ctx, f, s)
		if err != nil {
			return err
		}
	case nil:
	default:
		return UnsupportedNodeError{Node: s}
	}

	return nil
}

// lowerExpr returns the output pin carrying the expression value.
// A call to a function without return value yields NoPin.
func (t *Translator) lowerExpr(ctx context.Context, f *funContext, x ast.Expr) (p circuit.Pin, err error) {
	switch x := x.(type) {
	case *ast.Identifier:
		return f.resolve(x.Name)
	case *ast.Value:
		if x.Kind != ast.IntKind {
			return circuit.NoPin, UnimplementedError{Feature: "string values"}
		}

		info := f.AddPart(part.Constant{Value: float64(x.Int)})

		return info.Output, nil
	case *ast.ParenExpression:
		return t.lowerExpr(ctx, f, x.X)
	case *ast.Dyadic:
		return t.lowerDyadic(ctx, f, x)
	case *ast.FunctionCall:
		p, err = t.lowerCall(ctx, f, x)
		if err != nil {
			return circuit.NoPin, errors.Wrap(err, "call %v", x.Name)
		}

		return p, nil
	default:
		return circuit.NoPin, UnsupportedNodeError{Node: x}
	}
}

// operand is lowerExpr for places a value is required.
func (t *Translator) operand(ctx context.Context, f *funContext, x ast.Expr) (circuit.Pin, error) {
	p, err := t.lowerExpr(ctx, f, x)
	if err != nil {
		return circuit.NoPin, err
	}

	if p == circuit.NoPin {
		name := ""
		if c, ok := unparen(x).(*ast.FunctionCall); ok {
			name = c.Name
		}

		return circuit.NoPin, VoidValueError{Function: name}
	}

	return p, nil
}

func (t *Translator) lowerDyadic(ctx context.Context, f *funContext, x *ast.Dyadic) (circuit.Pin, error) {
	l, err := t.operand(ctx, f, x.Left)
	if err != nil {
		return circuit.NoPin, errors.Wrap(err, "left")
	}

	r, err := t.operand(ctx, f, x.Right)
	if err != nil {
		return circuit.NoPin, errors.Wrap(err, "right")
	}

	g, err := gateFor(x.Op)
	if err != nil {
		return circuit.NoPin, err
	}

	info := f.AddPart(g)

	f.Connect(l, info.Input)
	f.Connect(r, info.Input+1)

	return info.Output, nil
}

func gateFor(op ast.Operator) (part.Part, error) {
	name, ok := gates[op]
	if !ok {
		return nil, UnsupportedOperatorError{Op: op}
	}

	p, ok := part.Lookup(name)
	if !ok {
		return nil, UnimplementedError{Feature: name}
	}

	return p, nil
}

func (t *Translator) lowerCall(ctx context.Context, f *funContext, x *ast.FunctionCall) (circuit.Pin, error) {
	args := make([]circuit.Pin, len(x.Args))

	for i, a := range x.Args {
		p, err := t.operand(ctx, f, a)
		if err != nil {
			return circuit.NoPin, errors.Wrap(err, "arg %d", i)
		}

		args[i] = p
	}

	tmpl, err := t.template(ctx, x.Name)
	if err != nil {
		return circuit.NoPin, err
	}

	if len(tmpl.ProgramInputs) != len(args) {
		return circuit.NoPin, ArityMismatchError{Function: x.Name, Expected: len(tmpl.ProgramInputs), Got: len(args)}
	}

	sub := tmpl.Copy()
	info := f.AddPart(sub)

	for i, a := range args {
		f.Connect(a, info.Input+sub.ProgramInputs[i].In)
	}

	tlog.SpanFromContext(ctx).V("call").Printw("embed", "caller", f.name, "callee", x.Name, "at", info, "in_pins", sub.InputPinCount(), "out_pins", sub.OutputPinCount())

	if len(sub.ProgramOutputs) == 0 {
		return circuit.NoPin, nil
	}

	return info.Output + sub.ProgramOutputs[0].Out, nil
}

func (t *Translator) lowerReturn(ctx context.Context, f *funContext, s *ast.Return) (circuit.Pin, error) {
	v, err := t.operand(ctx, f, s.Value)
	if err != nil {
		return circuit.NoPin, err
	}

	if len(f.guards) != 0 {
		f.pending = append(f.pending, guarded{ctrl: f.guards[len(f.guards)-1], value: v})

		return v, nil
	}

	for i := len(f.pending) - 1; i >= 0; i-- {
		g := f.pending[i]
		v = f.mux(g.ctrl, g.value, v)
	}

	f.pending = f.pending[:0]

	out := f.AddProgramOutput()

	f.Connect(v, out.In)

	return out.Out, nil
}

func (t *Translator) lowerIf(ctx context.Context, f *funContext, s *ast.IfStatement) error {
	c, err := t.operand(ctx, f, s.Cond)
	if err != nil {
		return errors.Wrap(err, "cond")
	}

	if len(f.guards) != 0 {
		c = f.and(f.guards[len(f.guards)-1], c)
	}

	f.guards = append(f.guards, c)
	defer func() {
		f.guards = f.guards[:len(f.guards)-1]
	}()

	f.enterScope()

	err = t.lowerBlock(ctx, f, s.Body)
	if err != nil {
		return errors.Wrap(err, "body")
	}

	f.exitScope()

	return nil
}

// and yields b when a is truthy and 0 otherwise.
func (f *funContext) and(a, b circuit.Pin) circuit.Pin {
	info := f.AddPart(part.IfGate{})

	f.Connect(a, info.Input)
	f.Connect(b, info.Input+1)

	return info.Output + 1
}

// mux yields v when c is truthy and e otherwise.
func (f *funContext) mux(c, v, e circuit.Pin) circuit.Pin {
	then := f.and(c, v)

	other := f.AddPart(part.IfGate{})

	f.Connect(c, other.Input)
	f.Connect(e, other.Input+1)

	sum := f.AddPart(part.Adder{})

	f.Connect(then, sum.Input)
	f.Connect(other.Output, sum.Input+1)

	return sum.Output
}

func unparen(x ast.Expr) ast.Expr {
	for {
		p, ok := x.(*ast.ParenExpression)
		if !ok {
			return x
		}

		x = p.X
	}
}
