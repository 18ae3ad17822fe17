// Package ui holds the color palette shared by the CLI, the REPL and the
// dashboard. Colors are switched off by -no-color or the NO_COLOR
// environment variable.
package ui
