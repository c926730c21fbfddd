package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
)

func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x any, d int) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x, d)
	case *ast.FunctionDefinition:
		return formatFunc(ctx, b, x, d)
	case ast.Expr:
		return formatExpr(ctx, b, x, 0)
	case ast.Node:
		return formatBlock(ctx, b, []ast.Node{x}, d)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program, d int) (_ []byte, err error) {
	for i, n := range x.Defs {
		if i != 0 {
			b = append(b, '\n')
		}

		f, ok := n.(*ast.FunctionDefinition)
		if !ok {
			return nil, errors.New("unsupported top-level node: %T", n)
		}

		b, err = formatFunc(ctx, b, f, d)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return b, nil
}

func formatFunc(ctx context.Context, b []byte, x *ast.FunctionDefinition, d int) ([]byte, error) {
	b = app(b, d, "fn %v(", x.Name)

	for i, a := range x.Args {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = app(b, 0, "%v: %v", a.Name, a.Type)
	}

	b = append(b, ")"...)

	if x.ReturnType != "" {
		b = app(b, 0, " -> %v", x.ReturnType)
	}

	b = append(b, " {\n"...)

	b, err := formatBlock(ctx, b, x.Body, d+1)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	b = app(b, d, "}\n")

	return b, nil
}

func formatBlock(ctx context.Context, b []byte, body []ast.Node, d int) (_ []byte, err error) {
	for _, s := range body {
		switch s := s.(type) {
		case *ast.Return:
			b = app(b, d, "return ")

			b, err = formatExpr(ctx, b, s.Value, 0)
			if err != nil {
				return nil, errors.Wrap(err, "return")
			}

			b = append(b, ";\n"...)
		case *ast.Let:
			b = app(b, d, "let %v = ", s.Name)

			b, err = formatExpr(ctx, b, s.Value, 0)
			if err != nil {
				return nil, errors.Wrap(err, "let %v", s.Name)
			}

			b = append(b, ";\n"...)
		case *ast.IfStatement:
			b = app(b, d, "if ")

			b, err = formatExpr(ctx, b, s.Cond, 0)
			if err != nil {
				return nil, errors.Wrap(err, "cond")
			}

			b = append(b, " {\n"...)

			b, err = formatBlock(ctx, b, s.Body, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "then block")
			}

			b = app(b, d, "}\n")
		case ast.Expr:
			b = app(b, d, "")

			b, err = formatExpr(ctx, b, s, 0)
			if err != nil {
				return nil, errors.Wrap(err, "expr")
			}

			b = append(b, ";\n"...)
		default:
			return nil, errors.New("unsupported stmt: %T", s)
		}
	}

	return b, nil
}

// formatExpr prints x, parenthesizing dyadic operands binding weaker than prec.
func formatExpr(ctx context.Context, b []byte, x ast.Expr, prec int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Identifier:
		b = append(b, x.Name...)
	case *ast.Value:
		b = append(b, x.Literal()...)
	case *ast.ParenExpression:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.X, 0)
		if err != nil {
			return nil, errors.Wrap(err, "paren")
		}

		b = append(b, ')')
	case *ast.FunctionCall:
		b = append(b, x.Name...)
		b = append(b, '(')

		for i, a := range x.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b, err = formatExpr(ctx, b, a, 0)
			if err != nil {
				return nil, errors.Wrap(err, "call %v arg %d", x.Name, i)
			}
		}

		b = append(b, ')')
	case *ast.Dyadic:
		p := precedence(x.Op)

		if p < prec {
			b = append(b, '(')
		}

		b, err = formatExpr(ctx, b, x.Left, p)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = app(b, 0, " %s ", x.Op.Symbol())

		b, err = formatExpr(ctx, b, x.Right, p+1)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		if p < prec {
			b = append(b, ')')
		}
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func precedence(op ast.Operator) int {
	switch op {
	case ast.Multiply, ast.Divide:
		return 3
	case ast.Plus, ast.Minus:
		return 2
	default:
		return 1
	}
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
