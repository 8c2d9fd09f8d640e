// Package duration converts between free-form interval expressions such as
// "2d3h" or "2 days, and 3 hours" and a total number of seconds.
//
// Totals are arbitrary-precision (*big.Int) so pathological inputs like
// "99999999999999999999w" never overflow. Parsing is permissive by default:
// noise is ignored and malformed fragments contribute nothing. ParseStrict
// offers a validating alternative.
package duration

// Unit is a single interval unit accepted in expressions.
type Unit struct {
	Symbol  byte  // w, d, h, m or s
	Seconds int64 // seconds per unit
}

// units is ordered by descending magnitude.
var units = []Unit{
	{Symbol: 'w', Seconds: 604800},
	{Symbol: 'd', Seconds: 86400},
	{Symbol: 'h', Seconds: 3600},
	{Symbol: 'm', Seconds: 60},
	{Symbol: 's', Seconds: 1},
}

// Units returns a copy of the unit table, largest unit first.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// Lookup returns the unit for a symbol. Symbols are lowercase only.
func Lookup(symbol byte) (Unit, bool) {
	for _, u := range units {
		if u.Symbol == symbol {
			return u, true
		}
	}
	return Unit{}, false
}

func isUnitSymbol(c byte) bool {
	_, ok := Lookup(c)
	return ok
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
