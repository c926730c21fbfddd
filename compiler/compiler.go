package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
	"github.com/NoodlesOfWrath/ACL/compiler/circuit"
	"github.com/NoodlesOfWrath/ACL/compiler/front"
	"github.com/NoodlesOfWrath/ACL/compiler/parse"
)

func CompileFile(ctx context.Context, name string) (c *circuit.Circuit, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

func Compile(ctx context.Context, name string, text []byte) (c *circuit.Circuit, err error) {
	p, err := Parse(ctx, name, text)
	if err != nil {
		return nil, err
	}

	c, err = front.Compile(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}

	return c, nil
}

func ParseFile(ctx context.Context, name string) (p *ast.Program, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Parse(ctx, name, text)
}

// Parse turns program text into abstract syntax tree.
func Parse(ctx context.Context, name string, text []byte) (p *ast.Program, err error) {
	x, err := parse.Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	p, err = ast.Build(ctx, x)
	if err != nil {
		return nil, errors.Wrap(err, "build ast")
	}

	return p, nil
}
