package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler"
	"github.com/NoodlesOfWrath/ACL/compiler/format"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print formatted abstract syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "print circuit netlist",
		Action:      compileAct,
		Args:        cli.Args{},
	}

	runCmd := &cli.Command{
		Name:        "run",
		Description: "compile and simulate the circuit",
		Action:      runAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("inputs,i", "", "comma separated program inputs"),
		},
	}

	app := &cli.Command{
		Name:        "acl",
		Description: "acl compiles functions into circuits",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbose,v", "", "verbosity topics"),
		},
		Commands: []*cli.Command{
			parseCmd,
			compileCmd,
			runCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	if v := c.String("verbose"); v != "" {
		tlog.SetVerbosity(v)
	}

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		p, err := compiler.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		b, err := format.Format(ctx, nil, p)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		fmt.Printf("%s", b)
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		circ, err := compiler.CompileFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		fmt.Printf("%s", circ.AppendText(nil))
	}

	return nil
}

func runAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	args, err := parseInputs(c.String("inputs"))
	if err != nil {
		return errors.Wrap(err, "inputs")
	}

	for _, a := range c.Args {
		circ, err := compiler.CompileFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		res, err := circ.Run(args)
		if err != nil {
			return errors.Wrap(err, "run %v", a)
		}

		tlog.Printw("run", "file", a, "inputs", args, "outputs", res)

		for _, r := range res {
			fmt.Printf("%v\n", r)
		}
	}

	return nil
}

func parseInputs(s string) (r []float64, err error) {
	if s == "" {
		return nil, nil
	}

	for _, x := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, errors.Wrap(err, "input %q", x)
		}

		r = append(r, v)
	}

	return r, nil
}
