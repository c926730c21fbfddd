package parse

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/syntax"
)

type (
	State struct {
		name string
		b    []byte
	}
)

// Binary operators by precedence, lowest first.
var levels = [][]string{
	{"==", "!=", "<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/"},
}

func ParseFile(ctx context.Context, name string) (*syntax.Node, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, data)
}

func Parse(ctx context.Context, name string, text []byte) (x *syntax.Node, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	s := New(name, text)

	return s.Parse(ctx)
}

func New(name string, text []byte) *State {
	return &State{
		name: name,
		b:    text,
	}
}

func (s *State) Parse(ctx context.Context) (x *syntax.Node, err error) {
	x = syntax.New(syntax.Program, 0, len(s.b), string(s.b))

	for i := 0; ; {
		tk, tst, _ := s.next(ctx, i)
		if tk == nil {
			x.Children = append(x.Children, syntax.New(syntax.EOI, tst, tst, ""))
			break
		}

		var f *syntax.Node

		f, i, err = s.parseFunc(ctx, i)
		if err != nil {
			return nil, errors.Wrap(err, "%v", s.name)
		}

		x.Children = append(x.Children, f)
	}

	return x, nil
}

func (s *State) parseFunc(ctx context.Context, st int) (f *syntax.Node, i int, err error) {
	tk, fst, i := s.next(ctx, st)
	if tk != Keyword("fn") {
		return nil, fst, NewUnexpected(tk, fst, Keyword("fn"))
	}

	tk, tst, i := s.next(ctx, i)
	name, ok := tk.(Ident)
	if !ok {
		return nil, tst, NewUnexpected(tk, tst, Ident(""))
	}

	f = syntax.New(syntax.FunctionDef, fst, 0, "", s.node(syntax.PrimaryIdentifier, tst, i))

	params, i, err := s.parseParams(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "func %s: params", name)
	}

	f.Children = append(f.Children, params)

	tk, _, j := s.next(ctx, i)
	if tk == Punct("->") {
		tk, tst, i = s.next(ctx, j)
		if _, ok := tk.(Ident); !ok {
			return nil, tst, errors.Wrap(NewUnexpected(tk, tst, Ident("")), "func %s: return type", name)
		}

		vt := s.node(syntax.ValueType, tst, i)
		f.Children = append(f.Children, syntax.New(syntax.ReturnType, tst, i, vt.Text, vt))
	}

	body, i, err := s.parseBody(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "func %s", name)
	}

	f.Children = append(f.Children, body)

	f.End = i
	f.Text = string(s.b[f.Pos:i])

	tlog.SpanFromContext(ctx).V("parse").Printw("func", "name", name, "pos", f.Pos, "end", f.End)

	return f, i, nil
}

func (s *State) parseParams(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != Char('(') {
		return nil, tst, NewUnexpected(tk, tst, Char('('))
	}

	x = syntax.New(syntax.Params, tst, 0, "")

	for first := true; ; first = false {
		tk, tst, j := s.next(ctx, i)
		if tk == Char(')') {
			i = j
			break
		}

		if !first {
			if tk != Char(',') {
				return nil, tst, NewUnexpected(tk, tst, Char(','), Char(')'))
			}

			i = j
		}

		var p *syntax.Node

		p, i, err = s.parseParam(ctx, i)
		if err != nil {
			return nil, i, err
		}

		x.Children = append(x.Children, p)
	}

	x.End = i
	x.Text = string(s.b[x.Pos:i])

	return x, i, nil
}

func (s *State) parseParam(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	tk, nst, i := s.next(ctx, st)
	if _, ok := tk.(Ident); !ok {
		return nil, nst, NewUnexpected(tk, nst, Ident(""))
	}

	name := s.node(syntax.PrimaryIdentifier, nst, i)

	tk, tst, i := s.next(ctx, i)
	if tk != Char(':') {
		return nil, tst, NewUnexpected(tk, tst, Char(':'))
	}

	tk, tst, i = s.next(ctx, i)
	if _, ok := tk.(Ident); !ok {
		return nil, tst, NewUnexpected(tk, tst, Ident(""))
	}

	typ := s.node(syntax.ValueType, tst, i)

	return syntax.New(syntax.Param, nst, i, string(s.b[nst:i]), name, typ), i, nil
}

func (s *State) parseBody(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != Char('{') {
		return nil, tst, NewUnexpected(tk, tst, Char('{'))
	}

	x = syntax.New(syntax.FunctionBody, tst, 0, "")

	for {
		tk, tst, j := s.next(ctx, i)
		if tk == Char('}') {
			i = j
			break
		}

		if tk == nil {
			return nil, tst, NewUnexpected(tk, tst, Char('}'))
		}

		var stmt *syntax.Node

		stmt, i, err = s.parseStatement(ctx, i)
		if err != nil {
			return nil, i, err
		}

		x.Children = append(x.Children, stmt)
	}

	x.End = i
	x.Text = string(s.b[x.Pos:i])

	return x, i, nil
}

func (s *State) parseStatement(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk {
	case Keyword("return"):
		e, i, err := s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "return")
		}

		i, err = s.expect(ctx, i, Char(';'))
		if err != nil {
			return nil, i, errors.Wrap(err, "return")
		}

		return syntax.New(syntax.ReturnStatement, tst, i, string(s.b[tst:i]), e), i, nil
	case Keyword("if"):
		cond, i, err := s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "if cond")
		}

		body, i, err := s.parseBody(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "if body")
		}

		return syntax.New(syntax.IfStatement, tst, i, string(s.b[tst:i]), cond, body), i, nil
	case Keyword("let"):
		tk, nst, i := s.next(ctx, i)
		if _, ok := tk.(Ident); !ok {
			return nil, nst, NewUnexpected(tk, nst, Ident(""))
		}

		name := s.node(syntax.PrimaryIdentifier, nst, i)

		i, err = s.expect(ctx, i, Char('='))
		if err != nil {
			return nil, i, errors.Wrap(err, "let %s", name.Text)
		}

		e, i, err := s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "let %s", name.Text)
		}

		i, err = s.expect(ctx, i, Char(';'))
		if err != nil {
			return nil, i, errors.Wrap(err, "let %s", name.Text)
		}

		return syntax.New(syntax.LetStatement, tst, i, string(s.b[tst:i]), name, e), i, nil
	}

	e, i, err := s.parseExpr(ctx, st)
	if err != nil {
		return nil, i, err
	}

	i, err = s.expect(ctx, i, Char(';'))
	if err != nil {
		return nil, i, err
	}

	return e, i, nil
}

func (s *State) parseExpr(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	x, i, err = s.parseLevel(ctx, st, 0)
	if err != nil {
		return nil, i, err
	}

	return syntax.New(syntax.Expression, x.Pos, i, string(s.b[x.Pos:i]), x), i, nil
}

func (s *State) parseLevel(ctx context.Context, st, lvl int) (x *syntax.Node, i int, err error) {
	if lvl == len(levels) {
		return s.parsePrimary(ctx, st)
	}

	x, i, err = s.parseLevel(ctx, st, lvl+1)
	if err != nil {
		return nil, i, err
	}

	for {
		tk, tst, e := s.next(ctx, i)

		op, ok := operator(tk)
		if !ok || !contains(levels[lvl], op) {
			break
		}

		var r *syntax.Node

		r, i, err = s.parseLevel(ctx, e, lvl+1)
		if err != nil {
			return nil, i, errors.Wrap(err, "%s right", op)
		}

		opn := syntax.New(syntax.Operator, tst, e, op)

		x = syntax.New(syntax.Dyadic, x.Pos, i, string(s.b[x.Pos:i]), x, opn, r)
	}

	return x, i, nil
}

func (s *State) parsePrimary(ctx context.Context, st int) (x *syntax.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	wrap := func(ch *syntax.Node) *syntax.Node {
		return syntax.New(syntax.PrimaryExpression, ch.Pos, ch.End, ch.Text, ch)
	}

	switch tk := tk.(type) {
	case Char:
		if tk != '(' {
			break
		}

		e, i, err := s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "paren")
		}

		i, err = s.expect(ctx, i, Char(')'))
		if err != nil {
			return nil, i, err
		}

		return syntax.New(syntax.PrimaryExpression, tst, i, string(s.b[tst:i]), e), i, nil
	case Ident:
		id := s.node(syntax.PrimaryIdentifier, tst, i)

		if nt, _, _ := s.next(ctx, i); nt != Char('(') {
			return wrap(id), i, nil
		}

		call, i, err := s.parseCall(ctx, id, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "call %s", tk)
		}

		return wrap(call), i, nil
	case Number:
		v := syntax.New(syntax.Value, tst, i, string(tk), s.node(syntax.Int, tst, i))

		return wrap(v), i, nil
	case Str:
		v := syntax.New(syntax.Value, tst, i, string(tk), s.node(syntax.String, tst, i))

		return wrap(v), i, nil
	}

	return nil, tst, NewUnexpected(tk, tst, Char('('), Ident(""), Number(""), Str(""))
}

func (s *State) parseCall(ctx context.Context, id *syntax.Node, st int) (x *syntax.Node, i int, err error) {
	i, err = s.expect(ctx, st, Char('('))
	if err != nil {
		return nil, i, err
	}

	x = syntax.New(syntax.FunctionCall, id.Pos, 0, "", id)

	for first := true; ; first = false {
		tk, tst, j := s.next(ctx, i)
		if tk == Char(')') {
			i = j
			break
		}

		if !first {
			if tk != Char(',') {
				return nil, tst, NewUnexpected(tk, tst, Char(','), Char(')'))
			}

			i = j
		}

		var a *syntax.Node

		a, i, err = s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "arg %d", len(x.Children)-1)
		}

		x.Children = append(x.Children, a)
	}

	x.End = i
	x.Text = string(s.b[x.Pos:i])

	return x, i, nil
}

func (s *State) expect(ctx context.Context, st int, want Token) (i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != want {
		return tst, NewUnexpected(tk, tst, want)
	}

	return i, nil
}

func (s *State) node(r syntax.Rule, pos, end int) *syntax.Node {
	return syntax.New(r, pos, end, string(s.b[pos:end]))
}

func operator(tk Token) (string, bool) {
	switch tk := tk.(type) {
	case Punct:
		return string(tk), true
	case Char:
		return string(tk), true
	default:
		return "", false
	}
}

func contains(l []string, x string) bool {
	for _, y := range l {
		if y == x {
			return true
		}
	}

	return false
}
