// Package config parses and validates the primecalc command line. Values come
// from flags first, then PRIMECALC_* environment variables (optionally loaded
// from a .env file), then built-in defaults.
package config
