package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "PRIMECALC_"

// Run modes accepted by -mode.
const (
	ModeSingle  = "single"
	ModeMulti   = "multi"
	ModeCompare = "compare"
)

// Defaults.
const (
	DefaultMode     = ModeMulti
	DefaultTimeout  = 5 * time.Minute
	DefaultColumns  = 10
	DefaultLogLevel = "warn"
	MaxColumns      = 40
)

// Modes lists every value accepted by -mode.
var Modes = []string{ModeSingle, ModeMulti, ModeCompare}

// LogLevels lists every value accepted by -log-level.
var LogLevels = []string{"debug", "info", "warn", "error", "disabled"}

// CompletionShells lists every value accepted by -completion.
var CompletionShells = []string{"bash", "zsh", "fish"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Input is the raw upper bound text. It is parsed by the orchestration
	// layer so that unparseable text yields an empty result rather than a
	// configuration error.
	Input string
	// Mode is one of single, multi or compare.
	Mode string
	// Workers overrides the multi-worker count. Zero means one per CPU.
	Workers int
	// Timeout bounds a one-shot run.
	Timeout time.Duration
	// Verbose streams primes as they are found.
	Verbose bool
	// Details prints memory statistics after the run.
	Details bool
	// Quiet prints only the primes.
	Quiet bool
	// Columns is the number of primes per row in grid output.
	Columns int
	// TUI launches the interactive dashboard.
	TUI bool
	// REPL launches the interactive command loop.
	REPL bool
	// Metrics dumps Prometheus metrics to stdout on exit.
	Metrics bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// Completion is the shell to generate a completion script for.
	Completion string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Mode:     DefaultMode,
		Timeout:  DefaultTimeout,
		Columns:  DefaultColumns,
		LogLevel: DefaultLogLevel,
	}
}

// NewFlagSet registers every application flag on a new FlagSet bound to cfg.
// It is shared by ParseConfig and the completion generator so the two never
// drift apart.
func NewFlagSet(programName string, cfg *AppConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.StringVar(&cfg.Input, "n", cfg.Input, "Upper bound of the search (primes in [2, n]).")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Run mode: "+strings.Join(Modes, ", ")+".")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker count for multi mode (0 = one per CPU).")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum run time (e.g., 30s, 5m).")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Stream primes as they are found.")
	fs.BoolVar(&cfg.Details, "d", cfg.Details, "Shorthand for -details.")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "Show memory statistics for the run.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Print only the primes, space separated.")
	fs.IntVar(&cfg.Columns, "columns", cfg.Columns, "Primes per row in grid output.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Launch the interactive dashboard.")
	fs.BoolVar(&cfg.REPL, "repl", cfg.REPL, "Launch the interactive command loop.")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "Print Prometheus metrics on exit.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: "+strings.Join(LogLevels, ", ")+".")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a completion script for: "+strings.Join(CompletionShells, ", ")+".")
	fs.Bool("version", false, "Print version information and exit.")
	return fs
}

// FlagNames returns the names of every registered flag, sorted.
func FlagNames() []string {
	var cfg AppConfig
	var names []string
	NewFlagSet("primecalc", &cfg).VisitAll(func(f *flag.Flag) {
		names = append(names, f.Name)
	})
	slices.Sort(names)
	return names
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none is
// given) into the process environment without overriding variables that are
// already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return apperrors.WrapError(err, "loading %s", p)
		}
	}
	return nil
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags not given explicitly, and validates the
// result.
//
// A single positional argument is accepted as the upper bound when -n is not
// set. Parsing errors are returned as is (including flag.ErrHelp); validation
// failures are ConfigErrors.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	fs := NewFlagSet(programName, &cfg)
	fs.SetOutput(errorWriter)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	explicit := applyEnvOverrides(fs)

	switch rest := fs.Args(); {
	case len(rest) == 1 && !explicit["n"]:
		cfg.Input = rest[0]
	case len(rest) > 0:
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(rest, " "))
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("invalid mode %q (expected one of: %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Columns < 1 || c.Columns > MaxColumns {
		return apperrors.NewConfigError("columns must be between 1 and %d, got %d", MaxColumns, c.Columns)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for completion", c.Completion)
	}
	if c.TUI && c.REPL {
		return apperrors.NewConfigError("-tui and -repl are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	return nil
}
