package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested completion values (nil = no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsBool    bool     // true if the flag takes no value
}

// flagValues holds the value suggestions for flags that take one.
var flagValues = map[string]struct {
	values    []string
	valueName string
}{
	"n":          {nil, "number"},
	"mode":       {config.Modes, "mode"},
	"workers":    {[]string{"0", "1", "2", "4", "8", "16"}, "count"},
	"timeout":    {[]string{"30s", "1m", "5m", "10m"}, "duration"},
	"columns":    {[]string{"5", "10", "20"}, "count"},
	"log-level":  {config.LogLevels, "level"},
	"completion": {config.CompletionShells, "shell"},
}

// FlagRegistry builds the completion registry from the application's flag
// set, so every registered flag is completed.
func FlagRegistry() []FlagCompletion {
	var cfg config.AppConfig
	fs := config.NewFlagSet("primecalc", &cfg)
	var out []FlagCompletion
	fs.VisitAll(func(f *flag.Flag) {
		fc := FlagCompletion{Name: f.Name, Help: f.Usage}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			fc.IsBool = true
		}
		if v, ok := flagValues[f.Name]; ok {
			fc.Values, fc.ValueName = v.values, v.valueName
		}
		out = append(out, fc)
	})
	return out
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	registry := FlagRegistry()
	switch shell {
	case "bash":
		return generateBashCompletion(out, registry)
	case "zsh":
		return generateZshCompletion(out, registry)
	case "fish":
		return generateFishCompletion(out, registry)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(config.CompletionShells, ", "))
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, registry []FlagCompletion) error {
	opts := make([]string, 0, len(registry))
	for _, f := range registry {
		opts = append(opts, "-"+f.Name)
	}

	var b strings.Builder
	b.WriteString("# bash completion for primecalc\n")
	b.WriteString("_primecalc() {\n")
	b.WriteString("    local cur prev opts\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    opts=\"%s\"\n\n", strings.Join(opts, " "))
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range registry {
		if len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        -%s|--%s)\n", f.Name, f.Name)
		fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
		b.WriteString("            return 0\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _primecalc primecalc\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, registry []FlagCompletion) error {
	var b strings.Builder
	b.WriteString("#compdef primecalc\n\n")
	b.WriteString("_primecalc() {\n")
	b.WriteString("    _arguments \\\n")
	for i, f := range registry {
		b.WriteString("        " + zshArgEntry(f))
		if i < len(registry)-1 {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
	b.WriteString("_primecalc \"$@\"\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// zshArgEntry renders one _arguments entry for a flag.
func zshArgEntry(f FlagCompletion) string {
	help := strings.ReplaceAll(f.Help, "'", "")
	help = strings.ReplaceAll(help, ":", "")
	help = strings.NewReplacer("[", `\[`, "]", `\]`).Replace(help)
	entry := fmt.Sprintf("'-%s[%s]", f.Name, help)
	switch {
	case f.IsBool:
	case len(f.Values) > 0:
		entry += fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	default:
		entry += fmt.Sprintf(":%s:", f.ValueName)
	}
	return entry + "'"
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, registry []FlagCompletion) error {
	var b strings.Builder
	b.WriteString("# fish completion for primecalc\n")
	for _, f := range registry {
		b.WriteString(fishCompleteLine(f))
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// fishCompleteLine renders one `complete` command. Go flags accept a single
// dash, which fish models with -o (old-style option).
func fishCompleteLine(f FlagCompletion) string {
	line := fmt.Sprintf("complete -c primecalc -o %s -d '%s'", f.Name, strings.ReplaceAll(f.Help, "'", `\'`))
	switch {
	case f.IsBool:
	case len(f.Values) > 0:
		line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
	default:
		line += " -r"
	}
	return line
}
