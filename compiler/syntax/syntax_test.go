package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleNames(t *testing.T) {
	for r := Program; r < numRules; r++ {
		assert.NotEmpty(t, ruleNames[r], "rule %d", int(r))
	}

	assert.Equal(t, "function_def", FunctionDef.String())
	assert.Equal(t, "EOI", EOI.String())
	assert.Equal(t, "rule(100)", Rule(100).String())
}

func TestChild(t *testing.T) {
	n := New(Expression, 0, 1, "x", New(PrimaryIdentifier, 0, 1, "x"))

	assert.Equal(t, PrimaryIdentifier, n.Child(0).Rule)
	assert.Nil(t, n.Child(1))
	assert.Nil(t, n.Child(-1))
	assert.Nil(t, (*Node)(nil).Child(0))
}
