// Package ui provides the terminal color palette for reports.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayodele/tempo/internal/session"
)

// DarkTheme switches the palette to the lighter pterm variants.
var DarkTheme bool

// Green highlights values and totals.
func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

// Blue marks section headings.
func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// Category colors a value in the conventional color of its category:
// green for productive, red for distracting, cyan for neutral.
func Category(cat session.Category, a any) string {
	switch cat {
	case session.Productive:
		return Green(a)
	case session.Distracting:
		return Red(a)
	default:
		return Cyan(a)
	}
}
