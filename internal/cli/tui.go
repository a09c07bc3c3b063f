package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// Monitor styles
var (
	monitorLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(11)
	monitorBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	monitorTrackStyle = lipgloss.NewStyle().Foreground(colorDim)
	monitorSparkStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	monitorHistory  = 48 // energy samples kept for the sparkline
	monitorBarWidth = 32
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// =============================================================================
// MonitorModel - Live convergence view for arrange --watch
// =============================================================================

// progressMsg carries one report from the layout driver.
type progressMsg layout.Progress

// finishedMsg ends the monitor with the pipeline's outcome.
type finishedMsg struct {
	result *pipeline.Result
	err    error
}

// MonitorModel is the bubbletea model that follows a running simulation.
type MonitorModel struct {
	Title    string
	Progress layout.Progress
	History  []float64
	Start    time.Time

	Result    *pipeline.Result
	Err       error
	Cancelled bool

	cancel context.CancelFunc
}

// NewMonitorModel creates a monitor. cancel stops the simulation when the
// user quits.
func NewMonitorModel(title string, cancel context.CancelFunc) MonitorModel {
	if title == "" {
		title = "Arranging diagram"
	}
	return MonitorModel{Title: title, Start: time.Now(), cancel: cancel}
}

func (m MonitorModel) Init() tea.Cmd {
	return nil
}

func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Keep running until the pipeline reports the cancellation.
			m.Cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
	case progressMsg:
		m.Progress = layout.Progress(msg)
		m.History = append(m.History, msg.Energy)
		if len(m.History) > monitorHistory {
			m.History = m.History[len(m.History)-monitorHistory:]
		}
	case finishedMsg:
		m.Result, m.Err = msg.result, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m MonitorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	p := m.Progress
	iterFrac := 0.0
	if p.Max > 0 {
		iterFrac = float64(p.Iteration) / float64(p.Max)
	}
	b.WriteString(monitorLabelStyle.Render("Iterations"))
	b.WriteString(bar(iterFrac))
	b.WriteString(StyleNumber.Render(fmt.Sprintf(" %d/%d", p.Iteration, p.Max)))
	b.WriteString("\n")

	b.WriteString(monitorLabelStyle.Render("Settling"))
	b.WriteString(bar(settled(m.History, p.Threshold)))
	b.WriteString(StyleNumber.Render(fmt.Sprintf(" %.4g", p.Energy)))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" → %g", p.Threshold)))
	b.WriteString("\n")

	b.WriteString(monitorLabelStyle.Render("Energy"))
	b.WriteString(monitorSparkStyle.Render(sparkline(m.History)))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%s elapsed", time.Since(m.Start).Round(10*time.Millisecond))
	switch {
	case m.Cancelled:
		status = "stopping..."
	case m.Result != nil && m.Result.Layout.Converged:
		status = "settled"
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")
	return b.String()
}

// bar draws frac in [0, 1] as a fixed-width bar.
func bar(frac float64) string {
	frac = math.Max(0, math.Min(1, frac))
	n := int(math.Round(frac * monitorBarWidth))
	return monitorBarStyle.Render(strings.Repeat("█", n)) +
		monitorTrackStyle.Render(strings.Repeat("░", monitorBarWidth-n))
}

// settled estimates how far the energy has fallen from its first sample
// toward the threshold, on a log scale.
func settled(history []float64, threshold float64) float64 {
	if len(history) == 0 || threshold <= 0 {
		return 0
	}
	first, last := history[0], history[len(history)-1]
	if last <= threshold {
		return 1
	}
	if first <= threshold || first <= 0 {
		return 0
	}
	span := math.Log(first) - math.Log(threshold)
	return (math.Log(first) - math.Log(last)) / span
}

// sparkline draws energies on a log scale, one rune per sample.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	logs := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		logs[i] = math.Log10(math.Max(v, 1e-12))
		lo = math.Min(lo, logs[i])
		hi = math.Max(hi, logs[i])
	}
	out := make([]rune, len(logs))
	for i, l := range logs {
		level := 0
		if hi > lo {
			level = int(math.Round((l - lo) / (hi - lo) * float64(len(sparkLevels)-1)))
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}

// runMonitor runs the pipeline while a bubbletea program shows its
// convergence. Quitting the monitor cancels the simulation.
func runMonitor(ctx context.Context, runner *pipeline.Runner, d *diagram.Diagram, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewMonitorModel(d.Name, cancel), tea.WithOutput(os.Stderr))
	// The monitor owns the terminal while it runs.
	opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	opts.Observe = func(pr layout.Progress) {
		p.Send(progressMsg(pr))
	}

	go func() {
		result, err := runner.Arrange(ctx, d, opts)
		p.Send(finishedMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}
	m := final.(MonitorModel)
	return m.Result, m.Err
}
