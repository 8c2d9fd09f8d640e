package duration

import (
	"errors"
	"fmt"
	"math/big"
	"unicode"
	"unicode/utf8"
)

// ErrNoQuantity is returned by ParseStrict when the input holds no quantity.
var ErrNoQuantity = errors.New("no duration quantity found")

// SyntaxError describes the first fragment ParseStrict could not accept.
// Offset is a byte offset into the input after unit words were collapsed.
type SyntaxError struct {
	Fragment string
	Offset   int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid duration at offset %d (%q): %s", e.Offset, e.Fragment, e.Reason)
}

// ParseStrict is the validating counterpart of Parse. Quantities are a count
// optionally followed by whitespace and a unit, and may be separated by
// whitespace, ',', '+', '&' or the word "and". Anything else is rejected.
func ParseStrict(input string) (*big.Int, error) {
	qs, err := scanStrict(collapseUnitWords(input))
	if err != nil {
		return nil, err
	}
	return Sum(qs), nil
}

func scanStrict(s string) ([]Quantity, error) {
	var qs []Quantity

	i := 0
	for i < len(s) {
		if n := separatorLen(s[i:]); n > 0 {
			i += n
			continue
		}

		if !isDigit(s[i]) {
			return nil, &SyntaxError{Fragment: fragment(s, i), Offset: i, Reason: "unexpected character"}
		}

		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		digits := s[start:i]

		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || !isUnitSymbol(s[i]) {
			return nil, &SyntaxError{Fragment: digits, Offset: start, Reason: "count has no unit (use w, d, h, m or s)"}
		}

		count, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			// unreachable: digits is a non-empty run of ASCII digits
			return nil, &SyntaxError{Fragment: digits, Offset: start, Reason: "invalid count"}
		}
		qs = append(qs, Quantity{Count: count, Unit: s[i]})
		i++

		// "2dd" or "2d3" are not quantities followed by a separator
		if i < len(s) && separatorLen(s[i:]) == 0 && !isDigit(s[i]) {
			return nil, &SyntaxError{Fragment: fragment(s, i), Offset: i, Reason: "unexpected character after unit"}
		}
	}

	if len(qs) == 0 {
		return nil, ErrNoQuantity
	}
	return qs, nil
}

// separatorLen returns the byte length of the separator at the start of s,
// or 0 when s does not start with one.
func separatorLen(s string) int {
	switch {
	case s == "":
		return 0
	case s[0] == ',' || s[0] == '+' || s[0] == '&':
		return 1
	case isSpace(s[0]):
		return 1
	case len(s) >= 3 && s[:3] == "and" && (len(s) == 3 || !isLetter(s[3])):
		return 3
	}
	return 0
}

func fragment(s string, i int) string {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size <= 1 {
		return s[i : i+1]
	}
	return string(r)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return c < utf8.RuneSelf && unicode.IsLetter(rune(c))
}
