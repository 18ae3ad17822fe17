package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"microseconds", 500 * time.Microsecond, "500µs"},
		{"milliseconds", 42 * time.Millisecond, "42ms"},
		{"seconds", 2500 * time.Millisecond, "2.5s"},
		{"rounded to ms", 1234567 * time.Microsecond, "1.235s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.in); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatMillis(t *testing.T) {
	t.Parallel()
	if got := FormatMillis(1234567 * time.Microsecond); got != "1234 milliseconds" {
		t.Errorf("FormatMillis = %q", got)
	}
	if got := FormatMillis(0); got != "0 milliseconds" {
		t.Errorf("FormatMillis(0) = %q", got)
	}
}

func TestFormatPrimeList(t *testing.T) {
	t.Parallel()
	if got := FormatPrimeList([]int64{2, 3, 5, 7}); got != "2 3 5 7" {
		t.Errorf("FormatPrimeList = %q", got)
	}
	if got := FormatPrimeList(nil); got != "" {
		t.Errorf("FormatPrimeList(nil) = %q, want empty", got)
	}
}

func TestFormatPrimeGrid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		primes  []int64
		columns int
		want    string
	}{
		{
			name:    "Empty input",
			primes:  nil,
			columns: 5,
			want:    "",
		},
		{
			name:    "Aligned rows",
			primes:  []int64{2, 3, 5, 7, 11, 13, 17},
			columns: 3,
			want:    " 2  3  5\n 7 11 13\n17",
		},
		{
			name:    "Zero columns behaves as one",
			primes:  []int64{2, 3},
			columns: 0,
			want:    "2\n3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatPrimeGrid(tt.primes, tt.columns); got != tt.want {
				t.Errorf("FormatPrimeGrid = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
