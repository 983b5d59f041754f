// Package output provides terminal output utilities for pareto.
//
// This package includes:
//   - Table rendering for Pareto tables (frequency, share, cumulative share)
//   - A terminal Pareto chart with proportional bars and a cumulative column
//   - An interactive, scrollable chart viewer
//
// Color is only emitted when stdout is a TTY and NO_COLOR is not set.
package output

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/pareto/internal/pareto"
)

// ANSI color codes for table highlighting
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
)

// VitalFewThreshold is the cumulative share that separates the "vital few"
// from the "useful many".
const VitalFewThreshold = 0.8

var colorDisabled bool

// DisableColor turns off color output regardless of the terminal.
func DisableColor() {
	colorDisabled = true
}

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if colorDisabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderParetoTable renders the derived table: one row per item in table
// order with its frequency, share and cumulative share. Rows up to and
// including the one reaching 80% are highlighted.
// Note: Does not sort - the table is already in Pareto order.
func RenderParetoTable(t pareto.Table) string {
	if t.Len() == 0 {
		return "No items.\n"
	}

	labelWidth := runewidth.StringWidth(t.Label)
	for _, r := range t.Rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Item))
	}
	labelWidth = min(max(labelWidth, 8), 32)

	freqWidth := len("Frequency")
	for _, r := range t.Rows {
		freqWidth = max(freqWidth, len(FormatFrequency(r.Frequency)))
	}

	vital := len(t.VitalFew(VitalFewThreshold))

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("%s  %*s  %7s  %10s\n",
		pad(truncate(t.Label, labelWidth), labelWidth), freqWidth, "Frequency", "Share", "Cumulative"))
	sb.WriteString(strings.Repeat("─", labelWidth+freqWidth+23))
	sb.WriteString("\n")

	// Rows
	for i, r := range t.Rows {
		line := fmt.Sprintf("%s  %*s  %7s  %10s",
			pad(truncate(r.Item, labelWidth), labelWidth),
			freqWidth,
			FormatFrequency(r.Frequency),
			FormatPercent(r.Share),
			FormatPercent(r.CumulativeShare))

		if i < vital {
			sb.WriteString(colorize(colorGreen, line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("─", labelWidth+freqWidth+23))
	sb.WriteString("\n")
	sb.WriteString(RenderSummary(t))
	sb.WriteString("\n")

	return sb.String()
}

// RenderSummary renders a one-line 80/20 summary.
// Format: "Total: 100 · 2 of 3 items (67%) account for 90.0%"
func RenderSummary(t pareto.Table) string {
	if t.Len() == 0 {
		return "Total: 0"
	}
	vital := t.VitalFew(VitalFewThreshold)
	reached := vital[len(vital)-1].CumulativeShare
	itemShare := float64(len(vital)) / float64(t.Len())

	summary := fmt.Sprintf("Total: %s · %d of %d %s (%.0f%%) account for %s",
		FormatFrequency(t.Total()), len(vital), t.Len(), pluralItems(t.Len()),
		itemShare*100, FormatPercent(reached))
	return summary
}

// FormatFrequency prints whole numbers without decimals and other values
// with up to two.
func FormatFrequency(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatPercent formats a share in [0, 1] as a percentage with one decimal.
func FormatPercent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

func pluralItems(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// truncate truncates a string to maxLen display columns, adding "..." if
// truncated.
func truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
