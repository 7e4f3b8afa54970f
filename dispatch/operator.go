package dispatch

import (
	"fmt"
	"strings"
)

// An Operator identifies one of the capabilities a payload type may support.
type Operator uint8

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpHash

	numComparisons = int(OpHash)
	numOperators   = int(OpHash) + 1
)

var operatorSymbols = [numOperators]string{
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpGreater:      ">",
	OpLessEqual:    "<=",
	OpGreaterEqual: ">=",
	OpHash:         "hash",
}

// String returns the operator's symbol, e.g. "<=".
func (op Operator) String() string {
	if int(op) < numOperators {
		return operatorSymbols[op]
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// IsComparison reports whether op is one of the six comparison operators.
func (op Operator) IsComparison() bool {
	return int(op) < numComparisons
}

// Capabilities is a set of operators.
type Capabilities uint8

// Has reports whether op is in the set.
func (c Capabilities) Has(op Operator) bool {
	return int(op) < numOperators && c&(1<<op) != 0
}

func (c Capabilities) with(op Operator) Capabilities {
	return c | 1<<op
}

// String lists the operators in the set, e.g. "{==, !=, hash}".
func (c Capabilities) String() string {
	var symbols []string
	for op := Operator(0); int(op) < numOperators; op++ {
		if c.Has(op) {
			symbols = append(symbols, op.String())
		}
	}
	return "{" + strings.Join(symbols, ", ") + "}"
}

// AllCapabilities contains every operator.
const AllCapabilities Capabilities = 1<<numOperators - 1
