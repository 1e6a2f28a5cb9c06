package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davidbz/ember/internal/domain"
)

// Condition steps evaluate a constrained predicate instead of arbitrary
// expression text. The grammar is closed and has no access to the host
// environment:
//
//	<lhs> <op> <rhs>
//
//	lhs: context.<key> | results.count | results.last
//	op:  == != < <= > >=
//	rhs: a quoted string or a bare literal (number or word)
//
// Relational operators require both sides to be numeric.

// predicateEnv is the data a predicate may reference.
type predicateEnv struct {
	Context map[string]string
	Results []*domain.MessageResponse
}

// two-char operators must be matched before their one-char prefixes.
var operators = []string{"==", "!=", "<=", ">=", "<", ">"}

// evalPredicate parses and evaluates a predicate expression against env.
func evalPredicate(expr string, env predicateEnv) (bool, error) {
	op, lhsText, rhsText, err := splitPredicate(expr)
	if err != nil {
		return false, err
	}

	lhs, err := resolveOperand(lhsText, env)
	if err != nil {
		return false, err
	}
	rhs, err := resolveOperand(rhsText, env)
	if err != nil {
		return false, err
	}

	lhsNum, lhsIsNum := asNumber(lhs)
	rhsNum, rhsIsNum := asNumber(rhs)

	if lhsIsNum && rhsIsNum {
		return compareNumbers(op, lhsNum, rhsNum), nil
	}

	switch op {
	case "==":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	default:
		return false, fmt.Errorf("operator %q requires numeric operands in %q", op, expr)
	}
}

func splitPredicate(expr string) (op, lhs, rhs string, err error) {
	for _, candidate := range operators {
		idx := strings.Index(expr, candidate)
		if idx < 0 {
			continue
		}
		lhs = strings.TrimSpace(expr[:idx])
		rhs = strings.TrimSpace(expr[idx+len(candidate):])
		if lhs == "" || rhs == "" {
			return "", "", "", fmt.Errorf("malformed predicate: %q", expr)
		}
		return candidate, lhs, rhs, nil
	}
	return "", "", "", fmt.Errorf("no comparison operator in predicate: %q", expr)
}

// resolveOperand maps an operand to its string value. Field references are
// looked up in the environment; quoted strings are unquoted; anything else
// is a literal.
func resolveOperand(operand string, env predicateEnv) (string, error) {
	switch {
	case operand == "results.count":
		return strconv.Itoa(len(env.Results)), nil

	case operand == "results.last":
		for i := len(env.Results) - 1; i >= 0; i-- {
			if env.Results[i] != nil {
				return env.Results[i].Text(), nil
			}
		}
		return "", nil

	case strings.HasPrefix(operand, "context."):
		key := strings.TrimPrefix(operand, "context.")
		return env.Context[key], nil

	case strings.HasPrefix(operand, "results."):
		return "", fmt.Errorf("unknown results field: %q", operand)

	case len(operand) >= 2 && (operand[0] == '"' || operand[0] == '\''):
		if operand[len(operand)-1] != operand[0] {
			return "", fmt.Errorf("unterminated string literal: %s", operand)
		}
		return operand[1 : len(operand)-1], nil

	default:
		return operand, nil
	}
}

func asNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

func compareNumbers(op string, lhs, rhs float64) bool {
	switch op {
	case "==":
		return lhs == rhs
	case "!=":
		return lhs != rhs
	case "<":
		return lhs < rhs
	case "<=":
		return lhs <= rhs
	case ">":
		return lhs > rhs
	case ">=":
		return lhs >= rhs
	default:
		return false
	}
}
