package duration

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

var (
	// ErrNotSeconds is returned when a seconds value is not a non-negative
	// decimal integer.
	ErrNotSeconds = errors.New("not a non-negative number of seconds")
	// ErrOverflow is returned by FormatCompact for totals beyond MaxCompactSeconds.
	ErrOverflow = errors.New("duration too large for compact format")
)

// MaxCompactSeconds is the largest total FormatCompact accepts: the whole
// seconds of the largest time.Duration (about 292 years).
const MaxCompactSeconds = math.MaxInt64 / int64(time.Second)

// Segment is one non-zero component of a formatted duration.
type Segment struct {
	Value *big.Int
	Unit  string // singular unit name: day, hour, minute or second
}

// String renders the segment, e.g. "1 day" or "3 hours".
func (s Segment) String() string {
	return s.Value.String() + " " + Pluralize(s.Unit, s.Value)
}

// Breakdown is a total split into days, hours, minutes and seconds.
// Weeks are never produced.
type Breakdown struct {
	Segments []Segment
}

// String joins the segments with ", ". A zero breakdown is "".
func (b Breakdown) String() string {
	parts := make([]string, len(b.Segments))
	for i, s := range b.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Pluralize appends "s" to unit unless count is exactly 1.
func Pluralize(unit string, count *big.Int) string {
	if count.IsInt64() && count.Int64() == 1 {
		return unit
	}
	return unit + "s"
}

// Split breaks total seconds into days, hours, minutes and seconds,
// omitting zero components. Negative totals are treated as zero.
func Split(total *big.Int) Breakdown {
	if total == nil || total.Sign() <= 0 {
		return Breakdown{}
	}

	var (
		sixty      = big.NewInt(60)
		twentyFour = big.NewInt(24)
		mins, secs = new(big.Int).DivMod(total, sixty, new(big.Int))
		hours, mm  = new(big.Int).DivMod(mins, sixty, new(big.Int))
		days, hh   = new(big.Int).DivMod(hours, twentyFour, new(big.Int))
	)

	var b Breakdown
	for _, s := range []Segment{
		{Value: days, Unit: "day"},
		{Value: hh, Unit: "hour"},
		{Value: mm, Unit: "minute"},
		{Value: secs, Unit: "second"},
	} {
		if s.Value.Sign() > 0 {
			b.Segments = append(b.Segments, s)
		}
	}
	return b
}

// Format renders total seconds as a phrase such as "2 days, 3 hours".
// Zero renders as "".
func Format(total *big.Int) string {
	return Split(total).String()
}

// ParseSeconds parses a decimal seconds value of any length. Surrounding
// whitespace is ignored.
func ParseSeconds(s string) (*big.Int, error) {
	if !IsSeconds(s) {
		return nil, fmt.Errorf("%q: %w", s, ErrNotSeconds)
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("%q: %w", s, ErrNotSeconds)
	}
	return n, nil
}

// FormatString is Format for a decimal seconds string.
func FormatString(s string) (string, error) {
	n, err := ParseSeconds(s)
	if err != nil {
		return "", err
	}
	return Format(n), nil
}

// FormatCompact renders total seconds as an expression Parse reads back
// exactly, e.g. 183600 as "2d3h" and 604800 as "1w". Zero is "0s".
func FormatCompact(total *big.Int) (string, error) {
	if total == nil || total.Sign() < 0 {
		return "", ErrNotSeconds
	}
	if !total.IsInt64() || total.Int64() > MaxCompactSeconds {
		return "", fmt.Errorf("%s seconds exceeds %d: %w", total, MaxCompactSeconds, ErrOverflow)
	}
	return str2duration.String(time.Duration(total.Int64()) * time.Second), nil
}
