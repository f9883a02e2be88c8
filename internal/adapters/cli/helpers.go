package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// render runs the human-readable printer unless --json already printed the response
func render(cmd *cobra.Command, print func(w io.Writer)) {
	if outputJSON {
		return
	}
	print(cmd.OutOrStdout())
}

// newTable returns a tabwriter aligned like the rest of the CLI output
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatCredits formats credits with thousands separators ("1,234.5")
func formatCredits(credits float64) string {
	return humanize.CommafWithDigits(credits, 2)
}

// formatAmount formats an amount with an explicit +/- sign
func formatAmount(amount float64) string {
	if amount >= 0 {
		return "+" + formatCredits(amount)
	}
	return formatCredits(amount)
}

// formatCargo renders a cargo map sorted by resource name ("Copper: 3, Iron: 12")
func formatCargo(cargo map[string]int) string {
	if len(cargo) == 0 {
		return "(empty)"
	}
	names := make([]string, 0, len(cargo))
	for name := range cargo {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, humanize.Comma(int64(cargo[name]))))
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

const rule = "─────────────────────────────────────────────────────────────────────────────"
