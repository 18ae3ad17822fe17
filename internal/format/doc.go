// Package format holds pure formatting helpers shared by the CLI and TUI.
// Every function returns a string and performs no I/O.
package format
