package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/lucrnz/seconds/internal/duration"
)

// report is the structured form of a conversion for -o json and -o yaml.
type report struct {
	Input      string           `json:"input" yaml:"input"`
	Mode       string           `json:"mode" yaml:"mode"`
	Seconds    string           `json:"seconds" yaml:"seconds"`
	Text       string           `json:"text" yaml:"text"`
	Quantities []quantityReport `json:"quantities,omitempty" yaml:"quantities,omitempty"`
}

type quantityReport struct {
	Count string `json:"count" yaml:"count"`
	Unit  string `json:"unit" yaml:"unit"`
}

func newReport(res duration.Result, text string) report {
	r := report{
		Input:   strings.TrimSpace(res.Input),
		Mode:    string(res.Mode),
		Seconds: res.Seconds.String(),
		Text:    text,
	}
	for _, q := range res.Quantities {
		r.Quantities = append(r.Quantities, quantityReport{Count: q.Count.String(), Unit: string(q.Unit)})
	}
	return r
}

// render writes the result in the selected output format.
func render(w io.Writer, res duration.Result, opts *options) error {
	text := res.Text
	if opts.comma && res.Mode == duration.ModeParse {
		text = humanize.BigComma(res.Seconds)
	}

	switch opts.output {
	case "json":
		enc := json.NewEncoder(w)
		if err := enc.Encode(newReport(res, text)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReport(res, text)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, text)
		return err
	}
}
