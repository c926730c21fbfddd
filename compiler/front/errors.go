package front

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/NoodlesOfWrath/ACL/compiler/ast"
)

type (
	UndefinedVariableError struct {
		Name string
	}

	UndefinedFunctionError struct {
		Name string
	}

	DuplicateFunctionError struct {
		Name string
	}

	DuplicateParamError struct {
		Function string
		Name     string
	}

	RedefinedError struct {
		Name string
	}

	UnsupportedOperatorError struct {
		Op ast.Operator
	}

	ArityMismatchError struct {
		Function string
		Expected int
		Got      int
	}

	RecursiveCallError struct {
		Name string
	}

	VoidValueError struct {
		Function string
	}

	UnimplementedError struct {
		Feature string
	}

	UnsupportedNodeError struct {
		Node ast.Node
	}
)

var (
	ErrMissingMain   = errors.New("missing main function")
	ErrDuplicateMain = errors.New("duplicate main function")
)

func (e UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %v", e.Name)
}

func (e UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function: %v", e.Name)
}

func (e DuplicateFunctionError) Error() string {
	return fmt.Sprintf("duplicate function definition: %v", e.Name)
}

func (e DuplicateParamError) Error() string {
	return fmt.Sprintf("%v: duplicate parameter: %v", e.Function, e.Name)
}

func (e RedefinedError) Error() string {
	return fmt.Sprintf("name redefined in the same scope: %v", e.Name)
}

func (e UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator: %v (%v)", e.Op, e.Op.Symbol())
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("%v: %d arguments expected, got %d", e.Function, e.Expected, e.Got)
}

func (e RecursiveCallError) Error() string {
	return fmt.Sprintf("recursive call: %v", e.Name)
}

func (e VoidValueError) Error() string {
	return fmt.Sprintf("%v returns no value", e.Function)
}

func (e UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented: %v", e.Feature)
}

func (e UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %T", e.Node)
}
