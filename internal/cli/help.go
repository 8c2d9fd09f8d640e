package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// printHelp writes the usage text to stdout. It replaces cobra's template so
// the usage line shows the accepted expression shape.
func printHelp(cmd *cobra.Command) {
	app := cmd.Name()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: convert days, hours, and minutes to seconds (and back)\n", app)
	fmt.Fprintf(&b, "Usage: %s [Xw[Xd[Xh[Xm]]]] | [seconds]\n", app)
	fmt.Fprintf(&b, "Examples:\n")
	fmt.Fprintf(&b, "  %s 5d2h3m => 439380\n", app)
	fmt.Fprintf(&b, "  %s 4d => 345600\n", app)
	fmt.Fprintf(&b, "  %s 2 days, and 3 hours => 183600\n", app)
	fmt.Fprintf(&b, "Or convert seconds to time units: %s 1125093 => 13 days, 31 minutes, 33 seconds\n", app)
	fmt.Fprintf(&b, "Input may also be piped: echo 1h30m | %s\n", app)
	fmt.Fprintf(&b, "\nFlags:\n%s", cmd.Flags().FlagUsages())

	fmt.Fprint(cmd.OutOrStdout(), b.String())
}
