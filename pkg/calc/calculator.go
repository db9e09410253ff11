// Package calc implements the calculator engine: a small state machine that
// evaluates a running two-operand expression and keeps a bounded history.
//
// Values are float64 throughout. Chained operations may accumulate
// floating-point error; that is accepted behavior.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// HistoryLimit is the maximum number of history entries kept.
const HistoryLimit = 10

// ErrInvalidInput is returned for keys the engine does not understand.
// The state is unchanged when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// Operator is a pending binary operation.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
	OpModulo   Operator = "%"
)

// ParseOperator maps a key to an Operator. Common ASCII and typographic
// aliases are accepted.
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSubtract, nil
	case "×", "*", "x", "X":
		return OpMultiply, nil
	case "÷", "/":
		return OpDivide, nil
	case "%":
		return OpModulo, nil
	case "":
		return OpNone, nil
	}
	return OpNone, fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, s)
}

func (op Operator) valid() bool {
	switch op {
	case OpNone, OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo:
		return true
	}
	return false
}

// Combine applies op to a and b. Division by zero yields 0 instead of an
// error or infinity. An empty operator returns b.
func Combine(a, b float64, op Operator) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		if b == 0 {
			return 0
		}
		return a / b
	case OpModulo:
		return math.Mod(a, b)
	default:
		return b
	}
}

// State is a snapshot of the engine.
type State struct {
	Display            string   `json:"display"`
	PreviousValue      string   `json:"previous_value,omitempty"`
	Operation          Operator `json:"operation,omitempty"`
	WaitingForNewValue bool     `json:"waiting_for_new_value"`
	History            []string `json:"history"`
}

// Engine is the calculator state machine. It is not safe for concurrent use.
type Engine struct {
	display       string
	previousValue string
	operation     Operator
	waiting       bool
	history       []string
}

// New returns an engine in the cleared state.
func New() *Engine {
	return &Engine{display: "0", history: []string{}}
}

// Display returns the current operand text.
func (e *Engine) Display() string {
	return e.display
}

// History returns completed calculations, newest first.
func (e *Engine) History() []string {
	return append([]string{}, e.history...)
}

// Pending describes the stored operand and operator, e.g. "2 +".
// It is empty unless both are set.
func (e *Engine) Pending() string {
	if e.previousValue == "" || e.operation == OpNone {
		return ""
	}
	return e.previousValue + " " + string(e.operation)
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	return State{
		Display:            e.display,
		PreviousValue:      e.previousValue,
		Operation:          e.operation,
		WaitingForNewValue: e.waiting,
		History:            e.History(),
	}
}

// InputDigit enters a single digit.
func (e *Engine) InputDigit(d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q is not a digit", ErrInvalidInput, d)
	}

	switch {
	case e.waiting:
		e.display = string(d)
		e.waiting = false
	case e.display == "0" || isNonFinite(e.display):
		e.display = string(d)
	default:
		e.display += string(d)
	}
	return nil
}

// InputDecimal enters the decimal point; a second point in the same operand is ignored.
func (e *Engine) InputDecimal() {
	switch {
	case e.waiting:
		e.display = "0."
		e.waiting = false
	case isNonFinite(e.display):
		e.display = "0."
	case !strings.Contains(e.display, "."):
		e.display += "."
	}
}

// ClearAll resets the operand, the stored value and the pending operator.
// History is kept.
func (e *Engine) ClearAll() {
	e.display = "0"
	e.previousValue = ""
	e.operation = OpNone
	e.waiting = false
}

// ClearHistory empties the history log.
func (e *Engine) ClearHistory() {
	e.history = []string{}
}

// Negate flips the sign of the current operand.
func (e *Engine) Negate() {
	e.display = FormatNumber(-ParseNumber(e.display))
}

// ApplyOperator stores or combines the current operand and queues op.
// OpNone queues nothing and is how Equals completes a calculation.
func (e *Engine) ApplyOperator(op Operator) error {
	if !op.valid() {
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, op)
	}

	input := ParseNumber(e.display)

	if e.previousValue == "" {
		e.previousValue = FormatNumber(input)
	} else if e.operation != OpNone {
		current := ParseNumber(e.previousValue)
		result := FormatNumber(Combine(current, input, e.operation))

		entry := fmt.Sprintf("%s %s %s = %s", FormatNumber(current), e.operation, FormatNumber(input), result)
		e.pushHistory(entry)

		e.display = result
		e.previousValue = result
	}

	e.waiting = true
	e.operation = op
	return nil
}

// Equals completes the pending calculation. It does nothing unless both an
// operator and a stored operand are present.
func (e *Engine) Equals() {
	if e.operation == OpNone || e.previousValue == "" {
		return
	}
	_ = e.ApplyOperator(OpNone)
}

func (e *Engine) pushHistory(entry string) {
	history := make([]string, 0, HistoryLimit)
	history = append(history, entry)
	for _, h := range e.history {
		if len(history) == HistoryLimit {
			break
		}
		history = append(history, h)
	}
	e.history = history
}
