package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schollz/convertwithmoss/internal/pipeline"
)

// progressModel mirrors the teacher's StartupProgressModel: an
// indeterminate pulsing bar (the pipeline reports no total item count
// up front) plus a rolling stage line and error tally.
type progressModel struct {
	bar      progress.Model
	width    int
	height   int
	done     bool
	cancelled bool
	stage    string
	errCount int
}

type stageMsg string
type pipelineErrMsg string
type pipelineDoneMsg struct{ cancelled bool }
type tickMsg time.Time

func newProgressModel() progressModel {
	p := progress.New(progress.WithDefaultGradient())
	p.Width = 50
	return progressModel{bar: p, stage: "Scanning source folder..."}
}

func (m progressModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = msg.Width - 10
		return m, nil

	case stageMsg:
		m.stage = string(msg)
		return m, nil

	case pipelineErrMsg:
		m.errCount++
		m.stage = string(msg)
		return m, nil

	case pipelineDoneMsg:
		m.done = true
		m.cancelled = msg.cancelled
		return m, tea.Quit

	case tickMsg:
		if m.done {
			return m, nil
		}
		pulse := 0.5 + 0.3*math.Sin(float64(time.Time(msg).UnixMilli())/200.0)
		cmd := m.bar.SetPercent(pulse)
		return m, tea.Batch(cmd, tickCmd())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Align(lipgloss.Center)
	stage := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Align(lipgloss.Center)

	if m.done {
		status := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
		if m.cancelled {
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
		}
		text := fmt.Sprintf("Conversion finished (%d error(s))", m.errCount)
		if m.cancelled {
			text = "Conversion cancelled"
		}
		return lipgloss.NewStyle().Width(m.width).Height(m.height).
			Align(lipgloss.Center).AlignVertical(lipgloss.Center).
			Render(status.Render(text))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title.Render("convertwithmoss"),
		"",
		m.bar.View(),
		"",
		stage.Render(m.stage),
	)
	return lipgloss.NewStyle().Width(m.width).Height(m.height).
		Align(lipgloss.Center).AlignVertical(lipgloss.Center).
		Render(content)
}

// runWithProgress drives pipeline.Run on a background goroutine and
// feeds its Notifier callbacks into a bubbletea program as messages,
// the same split the teacher uses between StartSuperCollider (worker)
// and the OSC listener (message source) in startup_progress.go.
func runWithProgress(opt pipeline.Options) {
	program := tea.NewProgram(newProgressModel())

	notifier := opt.Notifier
	opt.Notifier = &forwardingNotifier{program: program, inner: notifier}

	go pipeline.Run(opt)

	_, _ = program.Run()
}

type forwardingNotifier struct {
	program *tea.Program
	inner   interface {
		Log(messageID string, params ...any)
		LogError(messageID string, err error, params ...any)
		UpdateButtonStates(canClose bool)
		Finished(cancelled bool)
	}
}

func (n *forwardingNotifier) Log(messageID string, params ...any) {
	n.inner.Log(messageID, params...)
	n.program.Send(stageMsg(fmt.Sprintf("%s %v", messageID, params)))
}

func (n *forwardingNotifier) LogError(messageID string, err error, params ...any) {
	n.inner.LogError(messageID, err, params...)
	n.program.Send(pipelineErrMsg(fmt.Sprintf("%s: %v", messageID, err)))
}

func (n *forwardingNotifier) UpdateButtonStates(canClose bool) {
	n.inner.UpdateButtonStates(canClose)
}

func (n *forwardingNotifier) Finished(cancelled bool) {
	n.inner.Finished(cancelled)
	n.program.Send(pipelineDoneMsg{cancelled: cancelled})
}
