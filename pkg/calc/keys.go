package calc

import (
	"fmt"
	"strings"
	"unicode"
)

// Key names understood by Press besides digits, "." and operators.
const (
	KeyEquals       = "="
	KeyClear        = "AC"
	KeyNegate       = "±"
	KeyClearHistory = "CH"
)

// Press feeds one key token to the engine. A token is a digit run with an
// optional decimal point ("12", "3.5", "."), an operator, or one of the
// named keys. Tokens that cannot be interpreted return ErrInvalidInput
// and leave the engine unchanged.
func (e *Engine) Press(token string) error {
	token = strings.TrimSpace(token)

	switch strings.ToUpper(token) {
	case "":
		return nil
	case KeyEquals, "ENTER":
		e.Equals()
		return nil
	case KeyClear, "C":
		e.ClearAll()
		return nil
	case KeyNegate, "+/-", "NEG":
		e.Negate()
		return nil
	case KeyClearHistory:
		e.ClearHistory()
		return nil
	}

	if isNumberToken(token) {
		for _, r := range token {
			if r == '.' {
				e.InputDecimal()
				continue
			}
			// Digits were validated by isNumberToken.
			_ = e.InputDigit(r)
		}
		return nil
	}

	op, err := ParseOperator(token)
	if err != nil {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidInput, token)
	}
	return e.ApplyOperator(op)
}

// PressAll feeds every token in order and stops at the first invalid one.
func (e *Engine) PressAll(tokens []string) error {
	for _, t := range tokens {
		if err := e.Press(t); err != nil {
			return err
		}
	}
	return nil
}

// Tokenize splits an expression such as "12+3.5=" or "2 × 3 =" into key tokens.
func Tokenize(expr string) []string {
	var tokens []string
	var number strings.Builder

	flush := func() {
		if number.Len() > 0 {
			tokens = append(tokens, number.String())
			number.Reset()
		}
	}

	runes := []rune(expr)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsDigit(r) || r == '.':
			number.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case r == '+' && i+2 < len(runes) && runes[i+1] == '/' && runes[i+2] == '-':
			flush()
			tokens = append(tokens, KeyNegate)
			i += 2
		case unicode.IsLetter(r):
			flush()
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j - 1
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

func isNumberToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
