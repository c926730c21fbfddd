package ast

type (
	Node interface {
		node()
	}

	Expr interface {
		Node
		expr()
	}

	Base struct {
		Pos int
		End int
	}

	Type string

	Program struct {
		Base `tlog:",embed"`

		Defs []Node
	}

	FunctionDefinition struct {
		Base `tlog:",embed"`

		Name       string
		Args       []Param
		ReturnType Type // "" if omitted
		Body       []Node
	}

	Param struct {
		Name string
		Type Type
	}

	Return struct {
		Base `tlog:",embed"`

		Value Expr
	}

	IfStatement struct {
		Base `tlog:",embed"`

		Cond Expr
		Body []Node
	}

	Let struct {
		Base `tlog:",embed"`

		Name  string
		Value Expr
	}

	Dyadic struct {
		Base `tlog:",embed"`

		Left  Expr
		Op    Operator
		Right Expr
	}

	ParenExpression struct {
		Base `tlog:",embed"`

		X Expr
	}

	Identifier struct {
		Base `tlog:",embed"`

		Name string
	}

	FunctionCall struct {
		Base `tlog:",embed"`

		Name string
		Args []Expr
	}
)

func (*Program) node()            {}
func (*FunctionDefinition) node() {}
func (*Return) node()             {}
func (*IfStatement) node()        {}
func (*Let) node()                {}
func (*Dyadic) node()             {}
func (*ParenExpression) node()    {}
func (*Identifier) node()         {}
func (*FunctionCall) node()       {}
func (*Value) node()              {}

func (*Dyadic) expr()          {}
func (*ParenExpression) expr() {}
func (*Identifier) expr()      {}
func (*FunctionCall) expr()    {}
func (*Value) expr()           {}

func (b Base) Position() int { return b.Pos }

// Function returns the definition named name or nil.
func (p *Program) Function(name string) *FunctionDefinition {
	for _, d := range p.Defs {
		if f, ok := d.(*FunctionDefinition); ok && f.Name == name {
			return f
		}
	}

	return nil
}
