package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestInputDigit(t *testing.T) {
	e := New()
	_ = e.InputDigit('5')
	_ = e.InputDigit('3')
	if e.Display() != "53" {
		t.Errorf("expected display '53', got '%s'", e.Display())
	}

	t.Run("Leading Zero Is Replaced", func(t *testing.T) {
		e := New()
		_ = e.InputDigit('0')
		_ = e.InputDigit('7')
		if e.Display() != "7" {
			t.Errorf("expected '7', got '%s'", e.Display())
		}
	})

	t.Run("Rejects Non Digits", func(t *testing.T) {
		e := New()
		if err := e.InputDigit('a'); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if e.Display() != "0" {
			t.Errorf("display changed to '%s'", e.Display())
		}
	})
}

func TestInputDecimal(t *testing.T) {
	e := New()
	e.InputDecimal()
	e.InputDecimal()
	if e.Display() != "0." {
		t.Errorf("expected '0.', got '%s'", e.Display())
	}
	_ = e.InputDigit('5')
	e.InputDecimal()
	if strings.Count(e.Display(), ".") != 1 {
		t.Errorf("display has more than one point: '%s'", e.Display())
	}

	t.Run("After Operator Starts Fresh Operand", func(t *testing.T) {
		e := New()
		_ = e.InputDigit('4')
		_ = e.ApplyOperator(OpAdd)
		e.InputDecimal()
		if e.Display() != "0." {
			t.Errorf("expected '0.', got '%s'", e.Display())
		}
	})
}

func TestAddition(t *testing.T) {
	e := New()
	_ = e.InputDigit('2')
	_ = e.ApplyOperator(OpAdd)
	_ = e.InputDigit('3')
	e.Equals()

	if e.Display() != "5" {
		t.Errorf("expected '5', got '%s'", e.Display())
	}
	h := e.History()
	if len(h) != 1 || h[0] != "2 + 3 = 5" {
		t.Errorf("unexpected history: %v", h)
	}

	st := e.State()
	if st.Operation != OpNone || !st.WaitingForNewValue || st.PreviousValue != "5" {
		t.Errorf("unexpected state after equals: %+v", st)
	}
}

func TestChaining(t *testing.T) {
	e := New()
	if err := e.PressAll([]string{"6", "×", "7", "-", "2", "="}); err != nil {
		t.Fatal(err)
	}
	if e.Display() != "40" {
		t.Errorf("expected '40', got '%s'", e.Display())
	}
	h := e.History()
	want := []string{"42 - 2 = 40", "6 × 7 = 42"}
	if strings.Join(h, "|") != strings.Join(want, "|") {
		t.Errorf("expected history %v, got %v", want, h)
	}
}

func TestEqualsWithoutPendingIsNoOp(t *testing.T) {
	e := New()
	_ = e.InputDigit('9')
	e.Equals()
	if e.Display() != "9" || len(e.History()) != 0 {
		t.Errorf("equals should be a no-op, got display '%s' history %v", e.Display(), e.History())
	}

	// A second equals after a completed calculation does nothing either.
	_ = e.PressAll([]string{"+", "1", "="})
	e.Equals()
	if len(e.History()) != 1 {
		t.Errorf("expected one history entry, got %v", e.History())
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		a, b float64
		op   Operator
		want float64
	}{
		{2, 3, OpAdd, 5},
		{2, 3, OpSubtract, -1},
		{2, 3, OpMultiply, 6},
		{9, 3, OpDivide, 3},
		{4, 0, OpDivide, 0},
		{7, 3, OpModulo, 1},
		{-7, 3, OpModulo, -1},
		{5.5, 2, OpModulo, 1.5},
		{1, 8, OpNone, 8},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v %s %v", tt.a, tt.op, tt.b), func(t *testing.T) {
			if got := Combine(tt.a, tt.b, tt.op); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if !math.IsNaN(Combine(1, 0, OpModulo)) {
		t.Error("remainder by zero should be NaN")
	}
}

func TestDivisionByZeroThroughEngine(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"4", "÷", "0", "="})
	if e.Display() != "0" {
		t.Errorf("expected '0', got '%s'", e.Display())
	}
	if e.History()[0] != "4 ÷ 0 = 0" {
		t.Errorf("unexpected history entry %q", e.History()[0])
	}
}

func TestHistoryIsBounded(t *testing.T) {
	e := New()
	_ = e.InputDigit('1')
	for i := 0; i < 25; i++ {
		_ = e.ApplyOperator(OpAdd)
		_ = e.InputDigit('1')
	}
	e.Equals()

	h := e.History()
	if len(h) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(h))
	}
	if h[0] != "25 + 1 = 26" {
		t.Errorf("newest entry should be first, got %q", h[0])
	}

	e.ClearHistory()
	if len(e.History()) != 0 {
		t.Error("ClearHistory should empty the log")
	}
}

func TestClearAllKeepsHistory(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"1", "+", "1", "=", "+", "4"})
	e.ClearAll()

	st := e.State()
	if st.Display != "0" || st.PreviousValue != "" || st.Operation != OpNone || st.WaitingForNewValue {
		t.Errorf("unexpected state after clear: %+v", st)
	}
	if len(st.History) != 1 {
		t.Errorf("history should survive AC, got %v", st.History)
	}
}

func TestNegate(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"12.5"})
	e.Negate()
	if e.Display() != "-12.5" {
		t.Errorf("expected '-12.5', got '%s'", e.Display())
	}
	e.Negate()
	if e.Display() != "12.5" {
		t.Errorf("expected '12.5', got '%s'", e.Display())
	}

	zero := New()
	zero.Negate()
	if zero.Display() != "0" {
		t.Errorf("negated zero should render as '0', got '%s'", zero.Display())
	}
}

func TestApplyOperatorNormalizesOperand(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"5."})
	_ = e.ApplyOperator(OpMultiply)
	if e.Pending() != "5 ×" {
		t.Errorf("expected pending '5 ×', got '%s'", e.Pending())
	}
	if err := e.ApplyOperator(Operator("^")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if e.Pending() != "5 ×" {
		t.Error("invalid operator must not change state")
	}
}

func TestNonFiniteDisplayIsReplaced(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"5", "%", "0", "="})
	if e.Display() != "NaN" {
		t.Fatalf("expected 'NaN', got '%s'", e.Display())
	}
	// A new calculation after equals starts from a fresh operand.
	_ = e.InputDigit('8')
	if e.Display() != "8" {
		t.Errorf("expected '8', got '%s'", e.Display())
	}

	// Type over a non-numeric display without a pending operator.
	e2 := New()
	e2.display = "NaN"
	_ = e2.InputDigit('3')
	if e2.Display() != "3" {
		t.Errorf("expected '3', got '%s'", e2.Display())
	}
	e2.display = "Infinity"
	e2.InputDecimal()
	if e2.Display() != "0." {
		t.Errorf("expected '0.', got '%s'", e2.Display())
	}
}

func TestFloatingPointDriftIsKept(t *testing.T) {
	e := New()
	_ = e.PressAll([]string{"0.1", "+", "0.2", "="})
	if e.Display() != "0.30000000000000004" {
		t.Errorf("expected raw double result, got '%s'", e.Display())
	}
}

func TestLongOperandKeepsAppending(t *testing.T) {
	e := New()
	for i := 0; i < 400; i++ {
		_ = e.InputDigit('9')
	}
	_ = e.InputDigit('1')
	want := strings.Repeat("9", 400) + "1"
	if e.Display() != want {
		t.Fatalf("expected %d digits, got %d", len(want), len(e.Display()))
	}

	e.InputDecimal()
	if e.Display() != want+"." {
		t.Errorf("expected decimal appended, got suffix %q", e.Display()[len(e.Display())-3:])
	}
}

func TestDecimalAfterExponentDisplay(t *testing.T) {
	e := New()
	if err := e.PressAll([]string{"0.0000001", KeyNegate}); err != nil {
		t.Fatal(err)
	}
	if e.Display() != "-1e-7" {
		t.Fatalf("expected '-1e-7', got '%s'", e.Display())
	}

	e.InputDecimal()
	if err := e.PressAll([]string{"×", "2", KeyEquals}); err != nil {
		t.Fatal(err)
	}
	if e.Display() != "-2e-7" {
		t.Errorf("expected '-2e-7', got '%s'", e.Display())
	}
}
