package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	infoColor    = color.New(color.FgCyan)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func printSection(cmd *cobra.Command, title string) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
	fmt.Fprintln(w)
}

func printSubsection(cmd *cobra.Command, title string) {
	_, _ = infoColor.Fprintf(cmd.OutOrStdout(), "  %s\n", title)
}

func printSuccess(cmd *cobra.Command, msg string) {
	_, _ = successColor.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
}

func printDim(cmd *cobra.Command, msg string) {
	_, _ = dimColor.Fprintf(cmd.ErrOrStderr(), "%s\n", msg)
}

func printLabelValue(cmd *cobra.Command, label, value string) {
	w := cmd.OutOrStdout()
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	fmt.Fprintln(w, value)
}

// printTable prints rows under a header with columns padded to the widest cell.
func printTable(cmd *cobra.Command, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	w := cmd.OutOrStdout()
	line := func(cells []string, c *color.Color) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		_, _ = c.Fprintln(w, "  "+strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(headers, labelColor)
	for _, row := range rows {
		line(row, color.New(color.Reset))
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
