package duration

import (
	"fmt"
	"math/big"
	"strings"
)

// Mode is the direction Convert took for an input.
type Mode string

const (
	// ModeFormat converts a number of seconds to a duration.
	ModeFormat Mode = "format"
	// ModeParse converts a duration expression to seconds.
	ModeParse Mode = "parse"
)

// Options controls Convert.
type Options struct {
	Strict  bool // reject malformed expressions instead of ignoring them
	Compact bool // format seconds as "2d3h" rather than "2 days, 3 hours"
}

// Result is the outcome of a conversion.
type Result struct {
	Input      string
	Mode       Mode
	Seconds    *big.Int
	Quantities []Quantity // ModeParse only
	Text       string     // rendered output
}

// Convert formats input when it is a plain number of seconds and parses it
// as a duration expression otherwise.
func Convert(input string, opts Options) (Result, error) {
	res := Result{Input: input}

	if IsSeconds(input) {
		n, err := ParseSeconds(input)
		if err != nil {
			return Result{}, err
		}
		res.Mode = ModeFormat
		res.Seconds = n
		if opts.Compact {
			text, err := FormatCompact(n)
			if err != nil {
				return Result{}, err
			}
			res.Text = text
		} else {
			res.Text = Format(n)
		}
		return res, nil
	}

	res.Mode = ModeParse
	if opts.Strict {
		qs, err := scanStrict(collapseUnitWords(strings.TrimSpace(input)))
		if err != nil {
			return Result{}, fmt.Errorf("parse %q: %w", strings.TrimSpace(input), err)
		}
		res.Quantities = qs
	} else {
		res.Quantities = Scan(input)
	}
	res.Seconds = Sum(res.Quantities)
	res.Text = res.Seconds.String()
	return res, nil
}
