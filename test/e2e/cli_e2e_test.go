package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binName := "primecalc"
	if runtime.GOOS == "windows" {
		binName = "primecalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/primecalc")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build primecalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Quiet Single Worker",
			args:     []string{"-n", "30", "-mode", "single", "-q"},
			wantOut:  "2 3 5 7 11 13 17 19 23 29",
			wantCode: 0,
		},
		{
			name:     "Multi Worker Summary",
			args:     []string{"-n", "1000", "-workers", "4"},
			wantOut:  "primes found: 168",
			wantCode: 0,
		},
		{
			name:     "Comparison",
			args:     []string{"-n", "5000", "-mode", "compare"},
			wantOut:  "all valid results are consistent",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Unparseable Input",
			args:     []string{"-n", "abc", "-q", "-log-level", "disabled"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Overflowing Input",
			args:     []string{"-n", "99999999999999999999"},
			wantOut:  "failure",
			wantCode: 1,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-n", "3000000000", "-mode", "single", "-timeout", "1ms", "-q"},
			wantOut:  "timeout",
			wantCode: 2,
		},
		{
			name:     "Invalid Mode",
			args:     []string{"-mode", "turbo"},
			wantOut:  "invalid mode",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "primecalc",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Dir = tmpDir
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("running binary: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
