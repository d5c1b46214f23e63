// Package ui provides the color themes and boxed layouts shared by the CLI,
// the REPL and verification reports. Colors are ANSI escape codes chosen by
// the active theme; boxes are rendered with lipgloss.
package ui
