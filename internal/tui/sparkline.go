package tui

import "strings"

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent samples of a series, oldest first.
type RingBuffer struct {
	buf  []float64
	next int
	full bool
}

// NewRingBuffer returns a buffer holding up to size samples. A size below 1
// is treated as 1.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, max(size, 1))}
}

// Push appends v, evicting the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

// Len is the number of samples held.
func (r *RingBuffer) Len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.Len() == 0 {
		return 0
	}
	return r.buf[(r.next-1+len(r.buf))%len(r.buf)]
}

// Slice returns a copy of the samples, oldest first.
func (r *RingBuffer) Slice() []float64 {
	if !r.full {
		return append([]float64(nil), r.buf[:r.next]...)
	}
	out := make([]float64, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.next = 0
	r.full = false
}

// RenderSparkline draws one block character per value, scaled so that
// ceiling maps to the tallest block. A ceiling of zero or less scales to the
// largest value. Values are clamped to [0, ceiling].
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	if ceiling <= 0 {
		for _, v := range values {
			ceiling = max(ceiling, v)
		}
	}

	top := len(sparkLevels) - 1
	var b strings.Builder
	for _, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v, 0), ceiling) / ceiling * float64(top))
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
