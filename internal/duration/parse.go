package duration

import (
	"math/big"
	"regexp"
	"strings"
)

var (
	// unitWord matches a unit letter followed by more lowercase letters,
	// e.g. "days" or "hours", so prose collapses to single-letter units.
	unitWord = regexp.MustCompile(`([wdhms])[a-z]+`)
	// noise matches anything that can never be part of a quantity.
	noise = regexp.MustCompile(`[^wdhms0-9]`)
	// quantity matches a count immediately followed by a unit letter.
	quantity = regexp.MustCompile(`([0-9]+)([wdhms])`)
)

// Quantity is one count/unit pair found in an expression.
type Quantity struct {
	Count *big.Int
	Unit  byte
}

// Seconds returns the quantity expressed in seconds.
func (q Quantity) Seconds() *big.Int {
	u, ok := Lookup(q.Unit)
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Mul(q.Count, big.NewInt(u.Seconds))
}

// String renders the quantity in compact form, e.g. "2d".
func (q Quantity) String() string {
	return q.Count.String() + string(q.Unit)
}

// collapseUnitWords rewrites "2 days" as "2 d".
func collapseUnitWords(input string) string {
	return unitWord.ReplaceAllString(input, "${1}")
}

// Scan extracts the ordered count/unit pairs from input. Characters other
// than digits and unit letters are discarded first, and digits that are not
// immediately followed by a unit letter are dropped.
func Scan(input string) []Quantity {
	stripped := noise.ReplaceAllString(collapseUnitWords(input), "")

	matches := quantity.FindAllStringSubmatch(stripped, -1)
	if len(matches) == 0 {
		return nil
	}

	qs := make([]Quantity, 0, len(matches))
	for _, m := range matches {
		count, ok := new(big.Int).SetString(m[1], 10)
		if !ok {
			continue
		}
		qs = append(qs, Quantity{Count: count, Unit: m[2][0]})
	}
	return qs
}

// Sum totals a sequence of quantities in seconds.
func Sum(qs []Quantity) *big.Int {
	total := new(big.Int)
	for _, q := range qs {
		total.Add(total, q.Seconds())
	}
	return total
}

// Parse converts a duration expression to total seconds. It never fails:
// unrecognised text is ignored and an expression with no quantities is 0.
//
//	Parse("2d3h")               // 183600
//	Parse("2 days, and 3 hours") // 183600
func Parse(input string) *big.Int {
	return Sum(Scan(input))
}

// IsSeconds reports whether input, ignoring surrounding whitespace, is a
// plain non-negative decimal number of seconds.
func IsSeconds(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
