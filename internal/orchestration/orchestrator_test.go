package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
)

// MockResultPresenter is a mock implementation of ResultPresenter for testing.
type MockResultPresenter struct {
	tableRows int
	presented *Result
}

func (m *MockResultPresenter) PresentComparisonTable(runs []RunOutcome, out io.Writer) {
	m.tableRows = len(runs)
}

func (m *MockResultPresenter) PresentResult(result Result, opts PresentationOptions, out io.Writer) {
	m.presented = &result
}

type mockErrorHandler struct{}

func (mockErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		runs           []RunOutcome
		expectedStatus int
		expectPresent  bool
	}{
		{
			name: "All success",
			runs: []RunOutcome{
				{Label: "single", Result: Result{Primes: []int64{2, 3, 5}, Duration: 2 * time.Millisecond}},
				{Label: "multi", Result: Result{Primes: []int64{2, 3, 5}, Duration: time.Millisecond}},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectPresent:  true,
		},
		{
			name: "Mismatch",
			runs: []RunOutcome{
				{Label: "single", Result: Result{Primes: []int64{2, 3, 5}}},
				{Label: "multi", Result: Result{Primes: []int64{2, 3}}},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "Duplicate is a mismatch",
			runs: []RunOutcome{
				{Label: "single", Result: Result{Primes: []int64{2, 3}}},
				{Label: "multi", Result: Result{Primes: []int64{2, 2, 3}}},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			runs: []RunOutcome{
				{Label: "single", Err: errors.New("fail")},
				{Label: "multi", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			runs: []RunOutcome{
				{Label: "single", Result: Result{Primes: []int64{2}}},
				{Label: "multi", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectPresent:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &MockResultPresenter{}
			var out bytes.Buffer
			status := AnalyzeComparisonResults(tt.runs, PresentationOptions{}, presenter, mockErrorHandler{}, &out)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if presenter.tableRows != len(tt.runs) {
				t.Errorf("table rows = %d, want %d", presenter.tableRows, len(tt.runs))
			}
			if (presenter.presented != nil) != tt.expectPresent {
				t.Errorf("result presented = %v, want %v", presenter.presented != nil, tt.expectPresent)
			}
			if !strings.Contains(out.String(), "Global Status") {
				t.Errorf("missing status line in %q", out.String())
			}
		})
	}
}

func TestAnalyzeComparisonResultsOrdersByDuration(t *testing.T) {
	t.Parallel()
	runs := []RunOutcome{
		{Label: "failed", Err: errors.New("fail")},
		{Label: "slow", Result: Result{Duration: time.Second}},
		{Label: "fast", Result: Result{Duration: time.Millisecond}},
	}
	AnalyzeComparisonResults(runs, PresentationOptions{}, &MockResultPresenter{}, mockErrorHandler{}, io.Discard)
	got := []string{runs[0].Label, runs[1].Label, runs[2].Label}
	want := []string{"fast", "slow", "failed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestExecuteComparison(t *testing.T) {
	t.Parallel()
	c := NewController(WithWorkers(3))
	runs := ExecuteComparison(context.Background(), c, 100, nil)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Label != "single" || runs[1].Label != "multi" {
		t.Errorf("labels = %s, %s", runs[0].Label, runs[1].Label)
	}
	status := AnalyzeComparisonResults(runs, PresentationOptions{}, &MockResultPresenter{}, mockErrorHandler{}, io.Discard)
	if status != apperrors.ExitSuccess {
		t.Errorf("status = %d, want success", status)
	}
}

func TestSpeedup(t *testing.T) {
	t.Parallel()
	if got := Speedup(4*time.Second, time.Second); got != 4 {
		t.Errorf("Speedup = %v, want 4", got)
	}
	if got := Speedup(time.Second, 0); got != 0 {
		t.Errorf("Speedup with zero multi = %v, want 0", got)
	}
}
