package ast

import (
	"fmt"
	"strconv"

	"tlog.app/go/tlog/tlwire"
)

type (
	ValueKind int

	// Value is a literal. Only Int values flow through circuits.
	Value struct {
		Base `tlog:",embed"`

		Kind   ValueKind
		Int    int32
		String string
	}

	Operator int
)

const (
	IntKind ValueKind = iota
	StringKind
)

const (
	Plus Operator = iota
	Minus
	Multiply
	Divide
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	numOperators
)

var opSymbols = [...]string{
	Plus:               "+",
	Minus:              "-",
	Multiply:           "*",
	Divide:             "/",
	Equal:              "==",
	NotEqual:           "!=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
}

var opNames = [...]string{
	Plus:               "Plus",
	Minus:              "Minus",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
}

func IntValue(v int32) *Value {
	return &Value{Kind: IntKind, Int: v}
}

func StringValue(s string) *Value {
	return &Value{Kind: StringKind, String: s}
}

func (v *Value) Literal() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(int64(v.Int), 10)
	case StringKind:
		return strconv.Quote(v.String)
	default:
		return fmt.Sprintf("value(%d)", int(v.Kind))
	}
}

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case StringKind:
		return "String"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseOperator(sym string) (Operator, bool) {
	for op, s := range opSymbols {
		if s == sym {
			return Operator(op), true
		}
	}

	return -1, false
}

func (op Operator) Symbol() string {
	if op >= 0 && op < numOperators {
		return opSymbols[op]
	}

	return "?"
}

func (op Operator) String() string {
	if op >= 0 && op < numOperators {
		return opNames[op]
	}

	return fmt.Sprintf("Operator(%d)", int(op))
}

func (op Operator) IsComparison() bool {
	return op >= Equal && op < numOperators
}

func (op Operator) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, op.Symbol())
}
