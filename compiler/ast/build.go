package ast

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/syntax"
)

type (
	UnrecognizedSyntaxError struct {
		Rule syntax.Rule
		Pos  int
	}
)

// Build converts parse tree into AST.
func Build(ctx context.Context, n *syntax.Node) (p *Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "ast: build")
	defer tr.Finish("err", &err)

	if n == nil || n.Rule != syntax.Program {
		return nil, unrecognized(n)
	}

	p = &Program{Base: base(n)}

	for _, ch := range n.Children {
		x, err := buildNode(ctx, ch)
		if err != nil {
			return nil, errors.Wrap(err, "at pos 0x%x", ch.Pos)
		}

		if x == nil {
			continue
		}

		p.Defs = append(p.Defs, x)
	}

	tr.Printw("program", "defs", len(p.Defs))

	return p, nil
}

func buildNode(ctx context.Context, n *syntax.Node) (Node, error) {
	switch n.Rule {
	case syntax.EOI:
		return nil, nil
	case syntax.FunctionDef:
		return buildFunc(ctx, n)
	default:
		return buildStmt(ctx, n)
	}
}

func buildFunc(ctx context.Context, n *syntax.Node) (f *FunctionDefinition, err error) {
	f = &FunctionDefinition{Base: base(n)}

	for _, ch := range n.Children {
		switch ch.Rule {
		case syntax.PrimaryIdentifier:
			f.Name = ident(ch)
		case syntax.Params:
			for _, p := range ch.Children {
				if p.Rule != syntax.Param || len(p.Children) != 2 {
					return nil, errors.Wrap(unrecognized(p), "params")
				}

				f.Args = append(f.Args, Param{
					Name: ident(p.Children[0]),
					Type: Type(p.Children[1].Text),
				})
			}
		case syntax.ReturnType:
			if t := ch.Child(0); t != nil {
				f.ReturnType = Type(t.Text)
			} else {
				f.ReturnType = Type(ch.Text)
			}
		case syntax.FunctionBody:
			f.Body, err = buildBody(ctx, ch)
			if err != nil {
				return nil, errors.Wrap(err, "func %v", f.Name)
			}
		default:
			return nil, errors.Wrap(unrecognized(ch), "func %v", f.Name)
		}
	}

	if f.Name == "" {
		return nil, errors.New("function name expected at pos 0x%x", n.Pos)
	}

	tlog.SpanFromContext(ctx).V("ast").Printw("function", "name", f.Name, "args", len(f.Args), "stmts", len(f.Body))

	return f, nil
}

func buildBody(ctx context.Context, n *syntax.Node) (body []Node, err error) {
	for _, ch := range n.Children {
		x, err := buildStmt(ctx, ch)
		if err != nil {
			return nil, errors.Wrap(err, "at pos 0x%x", ch.Pos)
		}

		if x == nil {
			continue
		}

		body = append(body, x)
	}

	return body, nil
}

func buildStmt(ctx context.Context, n *syntax.Node) (Node, error) {
	switch n.Rule {
	case syntax.ReturnStatement:
		if len(n.Children) != 1 {
			return nil, unrecognized(n)
		}

		x, err := buildExpr(ctx, n.Children[0])
		if err != nil {
			return nil, errors.Wrap(err, "return")
		}

		return &Return{Base: base(n), Value: x}, nil
	case syntax.IfStatement:
		if len(n.Children) != 2 || n.Children[1].Rule != syntax.FunctionBody {
			return nil, unrecognized(n)
		}

		cond, err := buildExpr(ctx, n.Children[0])
		if err != nil {
			return nil, errors.Wrap(err, "if cond")
		}

		body, err := buildBody(ctx, n.Children[1])
		if err != nil {
			return nil, errors.Wrap(err, "if body")
		}

		return &IfStatement{Base: base(n), Cond: cond, Body: body}, nil
	case syntax.LetStatement:
		if len(n.Children) != 2 {
			return nil, unrecognized(n)
		}

		x, err := buildExpr(ctx, n.Children[1])
		if err != nil {
			return nil, errors.Wrap(err, "let")
		}

		return &Let{Base: base(n), Name: ident(n.Children[0]), Value: x}, nil
	case syntax.EOI:
		return nil, nil
	case syntax.Expression,
		syntax.Dyadic,
		syntax.PrimaryExpression,
		syntax.PrimaryIdentifier,
		syntax.FunctionCall,
		syntax.Value:
		return buildExpr(ctx, n)
	default:
		return nil, unrecognized(n)
	}
}

func buildExpr(ctx context.Context, n *syntax.Node) (Expr, error) {
	switch n.Rule {
	case syntax.Expression:
		if len(n.Children) != 1 {
			return nil, unrecognized(n)
		}

		return buildExpr(ctx, n.Children[0])
	case syntax.PrimaryExpression:
		if len(n.Children) != 1 {
			return nil, unrecognized(n)
		}

		x, err := buildExpr(ctx, n.Children[0])
		if err != nil {
			return nil, err
		}

		if n.Children[0].Rule == syntax.Expression {
			return &ParenExpression{Base: base(n), X: x}, nil
		}

		return x, nil
	case syntax.Dyadic:
		if len(n.Children) != 3 || n.Children[1].Rule != syntax.Operator {
			return nil, unrecognized(n)
		}

		op, ok := ParseOperator(n.Children[1].Text)
		if !ok {
			return nil, errors.New("unknown operator %q at pos 0x%x", n.Children[1].Text, n.Children[1].Pos)
		}

		l, err := buildExpr(ctx, n.Children[0])
		if err != nil {
			return nil, errors.Wrap(err, "%v left", op.Symbol())
		}

		r, err := buildExpr(ctx, n.Children[2])
		if err != nil {
			return nil, errors.Wrap(err, "%v right", op.Symbol())
		}

		return &Dyadic{Base: base(n), Left: l, Op: op, Right: r}, nil
	case syntax.PrimaryIdentifier:
		return &Identifier{Base: base(n), Name: ident(n)}, nil
	case syntax.FunctionCall:
		if len(n.Children) == 0 || n.Children[0].Rule != syntax.PrimaryIdentifier {
			return nil, unrecognized(n)
		}

		c := &FunctionCall{Base: base(n), Name: ident(n.Children[0])}

		for i, a := range n.Children[1:] {
			x, err := buildExpr(ctx, a)
			if err != nil {
				return nil, errors.Wrap(err, "call %v arg %d", c.Name, i)
			}

			c.Args = append(c.Args, x)
		}

		return c, nil
	case syntax.Value:
		if len(n.Children) != 1 {
			return nil, unrecognized(n)
		}

		return buildValue(n.Children[0])
	case syntax.Int, syntax.String:
		return buildValue(n)
	default:
		return nil, unrecognized(n)
	}
}

func buildValue(n *syntax.Node) (*Value, error) {
	switch n.Rule {
	case syntax.Int:
		v, err := strconv.ParseInt(n.Text, 10, 32)
		if err != nil {
			return nil, errors.Wrap(err, "parse int")
		}

		x := IntValue(int32(v))
		x.Base = base(n)

		return x, nil
	case syntax.String:
		s, err := strconv.Unquote(n.Text)
		if err != nil {
			return nil, errors.Wrap(err, "parse string")
		}

		x := StringValue(s)
		x.Base = base(n)

		return x, nil
	default:
		return nil, unrecognized(n)
	}
}

func ident(n *syntax.Node) string {
	return norm.NFC.String(n.Text)
}

func base(n *syntax.Node) Base {
	return Base{Pos: n.Pos, End: n.End}
}

func unrecognized(n *syntax.Node) error {
	if n == nil {
		return UnrecognizedSyntaxError{Rule: -1}
	}

	return UnrecognizedSyntaxError{Rule: n.Rule, Pos: n.Pos}
}

func (e UnrecognizedSyntaxError) Error() string {
	return fmt.Sprintf("unrecognized syntax: %v at pos 0x%x", e.Rule, e.Pos)
}
