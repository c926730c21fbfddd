// Package front lowers AST into circuits.
//
// Every function except main is compiled once into a template circuit.
// Each call site embeds an independent deep copy of the template.
// main is compiled last into the returned top-level circuit.
package front

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
	"github.com/NoodlesOfWrath/ACL/compiler/circuit"
)

type (
	// Translator holds the state of one compilation.
	// It's not safe for concurrent use; use one Translator per goroutine.
	Translator struct {
		funcs     map[string]*circuit.Circuit
		defs      map[string]*ast.FunctionDefinition
		compiling map[string]struct{}
	}

	funContext struct {
		*circuit.Circuit

		name string

		scopes []*Scope

		guards  []circuit.Pin
		pending []guarded
	}

	// guarded is a return inside an if body waiting for the fallback value.
	guarded struct {
		ctrl  circuit.Pin
		value circuit.Pin
	}
)

const MainFunc = "main"

func New() *Translator {
	return &Translator{}
}

func Compile(ctx context.Context, p *ast.Program) (*circuit.Circuit, error) {
	return New().Compile(ctx, p)
}

func (t *Translator) Compile(ctx context.Context, p *ast.Program) (c *circuit.Circuit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: compile program", "defs", len(p.Defs))
	defer tr.Finish("err", &err)

	t.funcs = make(map[string]*circuit.Circuit)
	t.defs = make(map[string]*ast.FunctionDefinition)
	t.compiling = make(map[string]struct{})

	var main *ast.FunctionDefinition
	var queue []*ast.FunctionDefinition

	for _, d := range p.Defs {
		f, ok := d.(*ast.FunctionDefinition)
		if !ok {
			return nil, UnsupportedNodeError{Node: d}
		}

		if f.Name == MainFunc {
			if main != nil {
				return nil, ErrDuplicateMain
			}

			main = f

			continue
		}

		if _, ok := t.defs[f.Name]; ok {
			return nil, DuplicateFunctionError{Name: f.Name}
		}

		t.defs[f.Name] = f
		queue = append(queue, f)
	}

	if main == nil {
		return nil, ErrMissingMain
	}

	for _, f := range queue {
		if _, ok := t.funcs[f.Name]; ok {
			continue
		}

		_, err = t.compileFunc(ctx, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	c, err = t.compileFunc(ctx, main)
	if err != nil {
		return nil, errors.Wrap(err, "func %v", main.Name)
	}

	return c, nil
}

// Template returns compiled function by name.
func (t *Translator) Template(name string) (*circuit.Circuit, bool) {
	c, ok := t.funcs[name]
	return c, ok
}

// template returns the function template, compiling it first if needed.
func (t *Translator) template(ctx context.Context, name string) (*circuit.Circuit, error) {
	if name == MainFunc {
		return nil, UndefinedFunctionError{Name: name}
	}

	if c, ok := t.funcs[name]; ok {
		return c, nil
	}

	if _, ok := t.compiling[name]; ok {
		return nil, RecursiveCallError{Name: name}
	}

	d, ok := t.defs[name]
	if !ok {
		return nil, UndefinedFunctionError{Name: name}
	}

	c, err := t.compileFunc(ctx, d)
	if err != nil {
		return nil, errors.Wrap(err, "func %v", name)
	}

	return c, nil
}

func (t *Translator) compileFunc(ctx context.Context, d *ast.FunctionDefinition) (c *circuit.Circuit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile function", "name", d.Name, "args", len(d.Args))
	defer tr.Finish("err", &err)

	t.compiling[d.Name] = struct{}{}
	defer delete(t.compiling, d.Name)

	f := &funContext{
		Circuit: circuit.New(d.Name),
		name:    d.Name,
	}

	f.enterScope()

	for _, a := range d.Args {
		in := f.AddProgramInput()

		err = f.bind(a.Name, in.Out)
		if errors.As(err, &RedefinedError{}) {
			return nil, DuplicateParamError{Function: d.Name, Name: a.Name}
		}
		if err != nil {
			return nil, errors.Wrap(err, "param %v", a.Name)
		}
	}

	err = t.lowerBlock(ctx, f, d.Body)
	if err != nil {
		return nil, err
	}

	if len(f.pending) != 0 {
		return nil, UnimplementedError{Feature: "conditional return without a following unconditional return"}
	}

	f.exitScope()

	err = f.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	tr.Printw("compiled", "parts", len(f.Parts), "wires", len(f.Wires),
		"inputs", len(f.ProgramInputs), "outputs", len(f.ProgramOutputs),
		"in_pins", f.InputPinCount(), "out_pins", f.OutputPinCount())

	if tr.If("dump_circuit") {
		tr.Printw("netlist", "text", f.String())
	}

	if d.Name != MainFunc {
		t.funcs[d.Name] = f.Circuit
	}

	return f.Circuit, nil
}
