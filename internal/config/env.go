package config

import (
	"flag"
	"os"
	"strings"
)

// envBindings lists the flags that may be supplied through the environment,
// each with the shorthand aliases that also count as setting it.
// The variable name is EnvPrefix plus the upper-cased flag name with dashes
// turned into underscores: "log-level" reads PRIMECALC_LOG_LEVEL.
var envBindings = map[string][]string{
	"n":         nil,
	"mode":      nil,
	"workers":   nil,
	"timeout":   nil,
	"columns":   nil,
	"log-level": nil,
	"verbose":   {"v"},
	"details":   {"d"},
	"quiet":     {"q"},
	"tui":       nil,
	"repl":      nil,
	"metrics":   nil,
	"no-color":  nil,
}

func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// envBool maps the usual spellings of a boolean to their value. ok is false
// for anything else.
func envBool(val string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// explicitFlags returns the names of the flags given on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyEnvOverrides fills every env-bound flag that the command line left
// alone, parsing the value with the flag's own setter. Values that do not
// parse are ignored and the default stays. It returns the flags that were set
// explicitly, captured before any override is applied.
func applyEnvOverrides(fs *flag.FlagSet) map[string]bool {
	explicit := explicitFlags(fs)
	for name, aliases := range envBindings {
		if explicit[name] || anyOf(explicit, aliases) {
			continue
		}
		val := os.Getenv(envKey(name))
		if val == "" {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if isBoolFlag(f) {
			b, ok := envBool(val)
			if !ok {
				continue
			}
			if b {
				val = "true"
			} else {
				val = "false"
			}
		}
		// flag's numeric setters store the zero value on a parse error.
		prev := f.Value.String()
		if err := fs.Set(name, val); err != nil {
			_ = f.Value.Set(prev)
		}
	}
	return explicit
}

func anyOf(set map[string]bool, names []string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
