// Package syntax defines the parse tree handed from the grammar to AST construction.
package syntax

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	Rule int

	Node struct {
		Rule Rule
		Pos  int
		End  int

		Text string

		Children []*Node
	}
)

const (
	Program Rule = iota
	FunctionDef
	Params
	Param
	ReturnType
	ValueType
	FunctionBody
	FunctionCall
	ReturnStatement
	Expression
	PrimaryExpression
	Dyadic
	PrimaryIdentifier
	Value
	Int
	String
	IfStatement
	EOI

	Operator
	LetStatement

	numRules
)

var ruleNames = [...]string{
	Program:           "program",
	FunctionDef:       "function_def",
	Params:            "params",
	Param:             "param",
	ReturnType:        "return_type",
	ValueType:         "value_type",
	FunctionBody:      "function_body",
	FunctionCall:      "function_call",
	ReturnStatement:   "return_statement",
	Expression:        "expression",
	PrimaryExpression: "primary_expression",
	Dyadic:            "dyadic",
	PrimaryIdentifier: "primary_identifier",
	Value:             "value",
	Int:               "int",
	String:            "string",
	IfStatement:       "if_statement",
	EOI:               "EOI",
	Operator:          "operator",
	LetStatement:      "let_statement",
}

func New(r Rule, pos, end int, text string, ch ...*Node) *Node {
	return &Node{
		Rule:     r,
		Pos:      pos,
		End:      end,
		Text:     text,
		Children: ch,
	}
}

func (r Rule) String() string {
	if r >= 0 && r < numRules {
		return ruleNames[r]
	}

	return fmt.Sprintf("rule(%d)", int(r))
}

func (r Rule) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, r.String())
}

// Child returns i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}
