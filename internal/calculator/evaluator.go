package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrInvalidExpression = errors.New("invalid expression")
)

// Result strings shown on the calculator display.
const (
	ResultError    = "Error"
	ResultInfinity = "Infinity"
	ResultNaN      = "NaN"
)

// operators maps display glyphs to ASCII and pads every operator with spaces.
// govaluate reads a run of operator characters as a single token, so "2*-3"
// must reach it as "2 * - 3".
var operators = strings.NewReplacer(
	"×", " * ", "÷", " / ", "−", " - ",
	"*", " * ", "/", " / ", "-", " - ", "+", " + ",
)

// Evaluate parses expr as plain arithmetic and returns its value. Only numbers,
// + - * /, parentheses and spaces are accepted, so no variable or function
// lookup can ever happen.
func Evaluate(expr string) (float64, error) {
	expr = strings.TrimSpace(operators.Replace(expr))
	if expr == "" {
		return 0, ErrEmptyExpression
	}
	for _, r := range expr {
		if !allowed(r) {
			return 0, ErrInvalidExpression
		}
	}

	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, ErrInvalidExpression
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return 0, ErrInvalidExpression
	}
	v, ok := result.(float64)
	if !ok {
		return 0, ErrInvalidExpression
	}
	return v, nil
}

func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case strings.ContainsRune(".+-*/() ", r):
		return true
	}
	return false
}

// Format renders a value the way the display shows it.
func Format(v float64) string {
	switch {
	case math.IsInf(v, 0):
		return ResultInfinity
	case math.IsNaN(v):
		return ResultNaN
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Result evaluates expr and formats the outcome, collapsing every failure
// into ResultError.
func Result(expr string) string {
	v, err := Evaluate(expr)
	if err != nil {
		return ResultError
	}
	return Format(v)
}
