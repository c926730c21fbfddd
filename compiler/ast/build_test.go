package ast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/NoodlesOfWrath/ACL/compiler/parse"
	"github.com/NoodlesOfWrath/ACL/compiler/syntax"
)

func build(t *testing.T, src string) *Program {
	ctx := context.Background()

	x, err := parse.Parse(ctx, "test.acl", []byte(src))
	require.NoError(t, err)

	p, err := Build(ctx, x)
	require.NoError(t, err)

	return p
}

func TestBuild(t *testing.T) {
	p := build(t, `
fn add(a: int, b: int) -> int {
	return a + b;
}

fn main(x: int, y: int) -> int {
	let s = add(x, (y));
	if s {
		return 1;
	}
	return s * 2;
}
`)

	require.Len(t, p.Defs, 2)

	add := p.Function("add")
	require.NotNil(t, add)
	assert.Equal(t, []Param{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}, add.Args)
	assert.Equal(t, Type("int"), add.ReturnType)

	require.Len(t, add.Body, 1)
	ret := add.Body[0].(*Return)
	d := ret.Value.(*Dyadic)
	assert.Equal(t, Plus, d.Op)
	assert.Equal(t, "a", d.Left.(*Identifier).Name)
	assert.Equal(t, "b", d.Right.(*Identifier).Name)

	main := p.Function("main")
	require.NotNil(t, main)
	require.Len(t, main.Body, 3)

	let := main.Body[0].(*Let)
	assert.Equal(t, "s", let.Name)

	call := let.Value.(*FunctionCall)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
	assert.IsType(t, &ParenExpression{}, call.Args[1])

	ifs := main.Body[1].(*IfStatement)
	assert.Equal(t, "s", ifs.Cond.(*Identifier).Name)
	require.Len(t, ifs.Body, 1)
	assert.Equal(t, int32(1), ifs.Body[0].(*Return).Value.(*Value).Int)

	last := main.Body[2].(*Return).Value.(*Dyadic)
	assert.Equal(t, Multiply, last.Op)

	assert.Nil(t, p.Function("sub"))
}

func TestBuildValues(t *testing.T) {
	p := build(t, `fn main() { f("q\"s", 2147483647); }`)

	call := p.Defs[0].(*FunctionDefinition).Body[0].(*FunctionCall)

	s := call.Args[0].(*Value)
	assert.Equal(t, StringKind, s.Kind)
	assert.Equal(t, `q"s`, s.String)

	n := call.Args[1].(*Value)
	assert.Equal(t, IntKind, n.Kind)
	assert.Equal(t, int32(2147483647), n.Int)
}

func TestBuildIntOverflow(t *testing.T) {
	ctx := context.Background()

	x, err := parse.Parse(ctx, "", []byte(`fn main() { return 2147483648; }`))
	require.NoError(t, err)

	_, err = Build(ctx, x)
	assert.Error(t, err)
}

func TestBuildNormalizesIdentifiers(t *testing.T) {
	p := build(t, "fn main(cafe\u0301: int) { return caf\u00e9; }")

	f := p.Defs[0].(*FunctionDefinition)
	assert.Equal(t, "caf\u00e9", f.Args[0].Name)
	assert.Equal(t, "caf\u00e9", f.Body[0].(*Return).Value.(*Identifier).Name)
}

func TestUnrecognizedSyntax(t *testing.T) {
	ctx := context.Background()

	for _, n := range []*syntax.Node{
		nil,
		syntax.New(syntax.Params, 0, 0, ""),
		syntax.New(syntax.Program, 0, 0, "", syntax.New(syntax.ValueType, 3, 6, "int")),
		syntax.New(syntax.Program, 0, 0, "",
			syntax.New(syntax.FunctionDef, 0, 0, "",
				syntax.New(syntax.PrimaryIdentifier, 0, 4, "main"),
				syntax.New(syntax.FunctionBody, 0, 0, "",
					syntax.New(syntax.ReturnStatement, 0, 0, "",
						syntax.New(syntax.Expression, 0, 0, "",
							syntax.New(syntax.Params, 7, 8, "")))))),
	} {
		_, err := Build(ctx, n)

		var ue UnrecognizedSyntaxError
		assert.True(t, errors.As(err, &ue), "%v", err)
	}

	_, err := Build(ctx, syntax.New(syntax.Program, 0, 0, "", syntax.New(syntax.ValueType, 3, 6, "int")))

	var ue UnrecognizedSyntaxError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, UnrecognizedSyntaxError{Rule: syntax.ValueType, Pos: 3}, ue)
}

func TestOperators(t *testing.T) {
	for op := Plus; op < numOperators; op++ {
		x, ok := ParseOperator(op.Symbol())
		assert.True(t, ok)
		assert.Equal(t, op, x)
	}

	_, ok := ParseOperator("%")
	assert.False(t, ok)

	assert.Equal(t, "Equal", Equal.String())
	assert.True(t, GreaterThan.IsComparison())
	assert.False(t, Divide.IsComparison())
}
