package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
	"github.com/NoodlesOfWrath/ACL/compiler/parse"
)

const src = `fn add(a: int, b: int) -> int {
	return a + b * (a - b);
}

fn main(x: int) -> int {
	let y = add(x, 2);
	if y {
		return y / 2;
	}
	g("s");
	return (x + y) * 3;
}
`

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	p := parseProgram(t, src)

	b, err := Format(ctx, nil, p)
	require.NoError(t, err)
	assert.Equal(t, src, string(b))

	p2 := parseProgram(t, string(b))

	b2, err := Format(ctx, nil, p2)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(b2))
}

func TestExprParens(t *testing.T) {
	ctx := context.Background()

	a := &ast.Identifier{Name: "a"}
	b := &ast.Identifier{Name: "b"}
	c := &ast.Identifier{Name: "c"}

	for _, tc := range []struct {
		x    ast.Expr
		want string
	}{
		{&ast.Dyadic{Left: &ast.Dyadic{Left: a, Op: ast.Plus, Right: b}, Op: ast.Multiply, Right: c}, "(a + b) * c"},
		{&ast.Dyadic{Left: a, Op: ast.Minus, Right: &ast.Dyadic{Left: b, Op: ast.Minus, Right: c}}, "a - (b - c)"},
		{&ast.Dyadic{Left: &ast.Dyadic{Left: a, Op: ast.Minus, Right: b}, Op: ast.Minus, Right: c}, "a - b - c"},
		{&ast.Dyadic{Left: a, Op: ast.Equal, Right: ast.IntValue(1)}, "a == 1"},
		{&ast.FunctionCall{Name: "f", Args: []ast.Expr{ast.StringValue("x"), a}}, `f("x", a)`},
	} {
		b, err := Format(ctx, nil, tc.x)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}
}

func TestStatement(t *testing.T) {
	ctx := context.Background()

	b, err := Format(ctx, nil, &ast.Let{Name: "v", Value: ast.IntValue(3)})
	require.NoError(t, err)
	assert.Equal(t, "let v = 3;\n", string(b))

	_, err = Format(ctx, nil, 5)
	assert.Error(t, err)
}

func parseProgram(t *testing.T, text string) *ast.Program {
	ctx := context.Background()

	x, err := parse.Parse(ctx, "", []byte(text))
	require.NoError(t, err)

	p, err := ast.Build(ctx, x)
	require.NoError(t, err)

	return p
}
