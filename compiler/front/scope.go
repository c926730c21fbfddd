package front

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/NoodlesOfWrath/ACL/compiler/circuit"
)

type (
	// Scope maps names to output pins.
	// It is a full copy of its parent, so lookups never walk a chain.
	Scope struct {
		vars  map[string]circuit.Pin
		local map[string]struct{}

		depth int

		from loc.PC
	}
)

func (f *funContext) enterScope() {
	s := &Scope{
		vars:  make(map[string]circuit.Pin),
		local: make(map[string]struct{}),
		from:  loc.Caller(1),
	}

	if top := f.top(); top != nil {
		for name, p := range top.vars {
			s.vars[name] = p
		}

		s.depth = top.depth + 1
	}

	f.scopes = append(f.scopes, s)

	tlog.V("scope").Printw("enter scope", "func", f.name, "d", s.depth, "vars", len(s.vars), "from", loc.Callers(1, 3))
}

func (f *funContext) exitScope() {
	s := f.top()

	f.scopes = f.scopes[:len(f.scopes)-1]

	tlog.V("scope").Printw("exit scope", "func", f.name, "d", s.depth, "vars", s.vars, "entered", s.from)
}

func (f *funContext) bind(name string, p circuit.Pin) error {
	s := f.top()

	if _, ok := s.local[name]; ok {
		return RedefinedError{Name: name}
	}

	s.local[name] = struct{}{}
	s.vars[name] = p

	tlog.V("scope,bind").Printw("bind", "func", f.name, "d", s.depth, "name", name, "pin", p, "from", loc.Callers(1, 3))

	return nil
}

func (f *funContext) resolve(name string) (circuit.Pin, error) {
	s := f.top()

	if s != nil {
		if p, ok := s.vars[name]; ok {
			return p, nil
		}
	}

	return circuit.NoPin, UndefinedVariableError{Name: name}
}

func (f *funContext) top() *Scope {
	if len(f.scopes) == 0 {
		return nil
	}

	return f.scopes[len(f.scopes)-1]
}
