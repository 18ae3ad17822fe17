// Package cli implements the terminal front ends of primecalc: the one-shot
// output (spinner, streamed primes, result grid, comparison table), the
// interactive REPL, and shell completion scripts.
package cli
