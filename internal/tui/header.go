package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time of the
// current job and the system load sparklines.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
	cpu       *RingBuffer
	mem       *RingBuffer
}

const sysHistory = 20

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		version: version,
		cpu:     NewRingBuffer(sysHistory),
		mem:     NewRingBuffer(sysHistory),
	}
}

// Start restarts the elapsed timer.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.startTime.IsZero() {
		return
	}
	h.endTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// PushSysStats records one CPU/memory sample.
func (h *HeaderModel) PushSysStats(cpu, mem float64) {
	h.cpu.Push(cpu)
	h.mem.Push(mem)
}

func (h HeaderModel) elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	default:
		return time.Since(h.startTime)
	}
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Prime Calculator"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := sty.version.Render(" | ")
	left := sty.title.Render(titleText) + pipe +
		sty.elapsed.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed())))

	var right string
	if h.cpu.Len() > 0 {
		right = sty.label.Render("CPU ") +
			sty.cpuLine.Render(RenderSparkline(h.cpu.Slice(), 100)) +
			sty.value.Render(fmt.Sprintf(" %3.0f%%", h.cpu.Last())) +
			pipe +
			sty.label.Render("MEM ") +
			sty.memLine.Render(RenderSparkline(h.mem.Slice(), 100)) +
			sty.value.Render(fmt.Sprintf(" %3.0f%%", h.mem.Last()))
	}

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return sty.header.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}
