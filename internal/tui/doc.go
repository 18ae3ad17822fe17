// Package tui implements the interactive primecalc dashboard on bubbletea.
// The user types an upper bound and starts a single- or multi-worker job;
// starting another job, or pressing esc, supersedes the running one.
package tui
