package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/config"
	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/format"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/sysmon"
)

const (
	tickInterval = 500 * time.Millisecond
	// streamWindow is how many of the most recent primes are shown while a
	// job is still running. The full sorted list replaces it on completion.
	streamWindow = 400
	rateHistory  = 30
)

type statusKind int

const (
	statusIdle statusKind = iota
	statusRunning
	statusDone
	statusWarn
	statusError
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ctx        context.Context
	controller *orchestration.Controller
	ref        *programRef
	sampler    *sysmon.Sampler
	keys       KeyMap

	header   HeaderModel
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	rates    *RingBuffer

	columns   int
	initial   orchestration.Mode
	autoStart string

	// generation is the newest job generation observed. Messages from older
	// generations are dropped.
	generation uint64
	info       orchestration.JobInfo
	running    bool
	received   int
	window     []int64
	sinceTick  int

	status     string
	statusKind statusKind

	width    int
	height   int
	quitting bool
}

// NewModel creates the dashboard model. A non-empty cfg.Input starts a job
// as soon as the program runs.
func NewModel(ctx context.Context, controller *orchestration.Controller, cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.Placeholder = "upper bound, e.g. 1000000"
	ti.Prompt = "n > "
	ti.CharLimit = 24
	ti.SetValue(cfg.Input)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	mode, ok := orchestration.ParseMode(cfg.Mode)
	if !ok {
		mode = orchestration.ModeMulti
	}
	columns := cfg.Columns
	if columns < 1 {
		columns = config.DefaultColumns
	}

	return Model{
		ctx:        ctx,
		controller: controller,
		ref:        &programRef{},
		sampler:    sysmon.NewSampler(),
		keys:       DefaultKeyMap(),
		header:     NewHeaderModel(version),
		input:      ti,
		spinner:    sp,
		viewport:   viewport.New(80, 10),
		help:       help.New(),
		rates:      NewRingBuffer(rateHistory),
		columns:    columns,
		initial:    mode,
		autoStart:  strings.TrimSpace(cfg.Input),
		status:     "Enter an upper bound and press enter.",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(),
		sampleSysStatsCmd(m.sampler),
		watchContextCmd(m.ctx),
	}
	if m.autoStart != "" {
		cmds = append(cmds, startJobCmd(m.controller, m.ctx, m.initial, m.autoStart, m.ref))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case JobStartedMsg:
		if !m.observe(msg.Info.Generation) {
			return m, nil
		}
		m.info = msg.Info
		m.running = true
		m.header.Start()
		m.setStatus(statusRunning, fmt.Sprintf("Job #%d: searching [2, %d] with %d worker(s)",
			msg.Info.Generation, msg.Info.N, len(msg.Info.Ranges)))
		return m, waitJobCmd(msg.run)

	case PrimeBatchMsg:
		if !m.observe(msg.Generation) {
			return m, nil
		}
		m.received += len(msg.Values)
		m.sinceTick += len(msg.Values)
		m.window = append(m.window, msg.Values...)
		if over := len(m.window) - streamWindow; over > 0 {
			m.window = append(m.window[:0], m.window[over:]...)
		}
		m.viewport.SetContent(format.FormatPrimeGrid(m.window, m.columns))
		m.viewport.GotoBottom()
		return m, nil

	case JobFinishedMsg:
		if !m.observe(msg.Generation) {
			return m, nil
		}
		m.finish(msg)
		return m, nil

	case InputErrorMsg:
		m.setStatus(statusError, fmt.Sprintf("Error: %v", msg.Err))
		return m, nil

	case TickMsg:
		m.rates.Push(float64(m.sinceTick) / tickInterval.Seconds())
		m.sinceTick = 0
		return m, tea.Batch(tickCmd(), sampleSysStatsCmd(m.sampler))

	case SysStatsMsg:
		m.header.PushSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case contextDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Single):
		return m, m.start(orchestration.ModeSingle)
	case key.Matches(msg, m.keys.Multi):
		return m, m.start(orchestration.ModeMulti)
	case key.Matches(msg, m.keys.Cancel):
		if !m.running {
			return m, nil
		}
		m.setStatus(statusWarn, "Cancelling...")
		return m, cancelJobCmd(m.controller)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) start(mode orchestration.Mode) tea.Cmd {
	m.setStatus(statusRunning, fmt.Sprintf("Starting %s-worker job...", mode))
	return startJobCmd(m.controller, m.ctx, mode, m.input.Value(), m.ref)
}

// observe reports whether a message of generation gen should be applied.
// A newer generation resets the per-job view.
func (m *Model) observe(gen uint64) bool {
	if gen < m.generation {
		return false
	}
	if gen > m.generation {
		m.generation = gen
		m.info = orchestration.JobInfo{Generation: gen}
		m.running = true
		m.received = 0
		m.window = nil
		m.viewport.SetContent("")
	}
	return true
}

func (m *Model) finish(msg JobFinishedMsg) {
	m.running = false
	m.header.SetDone()

	switch {
	case msg.Err == nil:
		res := msg.Result
		m.received = len(res.Primes)
		m.window = nil
		m.viewport.SetContent(format.FormatPrimeGrid(res.Primes, m.columns))
		m.viewport.GotoTop()
		m.setStatus(statusDone, fmt.Sprintf("Job #%d: %d primes up to %d in %s",
			msg.Generation, len(res.Primes), res.N, format.FormatMillis(res.Duration)))
	case errors.Is(msg.Err, orchestration.ErrSuperseded):
		// The replacing job reports its own status.
	case errors.Is(msg.Err, orchestration.ErrDiscarded):
		m.received = 0
		m.window = nil
		m.viewport.SetContent("")
		m.setStatus(statusWarn, fmt.Sprintf("Job #%d cancelled; partial results discarded.", msg.Generation))
	default:
		m.setStatus(statusError, fmt.Sprintf("Job #%d failed: %v", msg.Generation, msg.Err))
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// layout sizes the viewport to the space left by the fixed rows.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	fixed := lipgloss.Height(m.header.View()) + 4 + lipgloss.Height(m.help.View(m.keys)) + 2
	m.viewport.Width = max(m.width-4, 10)
	m.viewport.Height = max(m.height-fixed, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n")
	b.WriteString(sty.panel.Width(max(m.width-2, 0)).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	switch m.statusKind {
	case statusRunning:
		return m.spinner.View() + " " + sty.running.Render(m.status)
	case statusDone:
		return sty.done.Render(m.status)
	case statusWarn:
		return sty.warn.Render(m.status)
	case statusError:
		return sty.failed.Render(m.status)
	default:
		return sty.label.Render(m.status)
	}
}

func (m Model) statsLine() string {
	line := sty.label.Render("Primes: ") + sty.value.Render(fmt.Sprintf("%d", m.received))
	if m.info.N > 0 {
		line += sty.label.Render("  Bound: ") + sty.value.Render(fmt.Sprintf("%d", m.info.N))
	}
	if len(m.info.Ranges) > 0 {
		line += sty.label.Render("  Workers: ") + sty.value.Render(fmt.Sprintf("%d", len(m.info.Ranges)))
	}
	if m.rates.Len() > 0 {
		line += sty.label.Render("  Rate ") +
			sty.rateLine.Render(RenderSparkline(m.rates.Slice(), 0)) +
			sty.value.Render(fmt.Sprintf(" %.0f/s", m.rates.Last()))
	}
	return line
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
// Any job still running is cancelled and joined before Run returns.
func Run(ctx context.Context, controller *orchestration.Controller, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, controller, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	_, err := p.Run()
	// Drop the reference first so a reporter flushing its last batch does not
	// block on a program that no longer reads messages.
	model.ref.SetProgram(nil)
	controller.Cancel()
	if current := controller.Current(); current != nil {
		<-current.Done()
	}
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

type contextDoneMsg struct{}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{
			CPUPercent: st.CPUPercent,
			MemPercent: st.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and asks the program to quit.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}
