package tui

import (
	"slices"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		size     int
		push     []float64
		want     []float64
		wantLast float64
	}{
		{"empty", 3, nil, nil, 0},
		{"partial", 3, []float64{1, 2}, []float64{1, 2}, 2},
		{"exactly full", 3, []float64{1, 2, 3}, []float64{1, 2, 3}, 3},
		{"wraps around", 3, []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5}, 5},
		{"size below one holds one", 0, []float64{7, 8}, []float64{8}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRingBuffer(tt.size)
			for _, v := range tt.push {
				r.Push(v)
			}
			if got := r.Slice(); !slices.Equal(got, tt.want) {
				t.Errorf("Slice() = %v, want %v", got, tt.want)
			}
			if r.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.want))
			}
			if r.Last() != tt.wantLast {
				t.Errorf("Last() = %v, want %v", r.Last(), tt.wantLast)
			}
		})
	}
}

func TestRingBuffer_SliceIsACopy(t *testing.T) {
	t.Parallel()
	r := NewRingBuffer(2)
	r.Push(1)
	s := r.Slice()
	s[0] = 99
	if r.Last() != 1 {
		t.Error("mutating Slice() changed the buffer")
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	t.Parallel()
	r := NewRingBuffer(2)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	r.Reset()
	if r.Len() != 0 || len(r.Slice()) != 0 {
		t.Errorf("after Reset: Len=%d Slice=%v", r.Len(), r.Slice())
	}
	r.Push(4)
	if got := r.Slice(); !slices.Equal(got, []float64{4}) {
		t.Errorf("after Reset+Push: %v", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		values  []float64
		ceiling float64
		want    string
	}{
		{"empty", nil, 100, ""},
		{"fixed ceiling", []float64{0, 50, 100}, 100, "▁▄█"},
		{"clamped", []float64{-10, 150}, 100, "▁█"},
		{"auto ceiling", []float64{0, 5, 10}, 0, "▁▄█"},
		{"all zero auto", []float64{0, 0}, 0, "▁▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values, tt.ceiling); got != tt.want {
				t.Errorf("RenderSparkline(%v, %v) = %q, want %q", tt.values, tt.ceiling, got, tt.want)
			}
		})
	}
}
