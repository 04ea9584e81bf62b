// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audbridge/bridge"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(12)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	meterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	boxStyle = lipgloss.NewStyle().
			Padding(1).
			Border(lipgloss.NormalBorder())
)

const meterWidth = 40

type tickMsg time.Time

type monitorModel struct {
	b       *bridge.Bridge
	level   *peakMeter
	done    <-chan struct{}
	name    string
	started time.Time

	stats    bridge.Stats
	peak     float32
	finished bool
}

func newMonitor(b *bridge.Bridge, level *peakMeter, done <-chan struct{}, path string) monitorModel {
	return monitorModel{
		b:       b,
		level:   level,
		done:    done,
		name:    filepath.Base(path),
		started: time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Init() tea.Cmd {
	return tick()
}

func (m monitorModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.stats = m.b.Stats()
		m.peak = m.level.load()
		select {
		case <-m.done:
			m.finished = true
			return m, tea.Quit
		default:
		}
		return m, tick()
	}
	return m, nil
}

func (m monitorModel) View() string {
	cfg := m.b.Config()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("bridgeplay " + m.name))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	row("session", m.b.ID().String())
	row("stream", fmt.Sprintf("%s, %d Hz, %d frames, %d out / %d in",
		cfg.Direction, cfg.SampleRate, cfg.Frames, cfg.OutputChannels, cfg.InputChannels))
	row("elapsed", time.Since(m.started).Truncate(100*time.Millisecond).String())
	row("phase", m.b.Phase().String())
	row("quanta", fmt.Sprint(m.stats.Quanta))
	row("batches", fmt.Sprint(m.stats.Batches))
	row("captures", fmt.Sprint(m.stats.Captures))

	underruns := fmt.Sprint(m.stats.Underruns)
	if m.stats.Underruns > 0 {
		underruns = warnStyle.Render(underruns)
	}
	row("underruns", underruns)
	row("overruns", fmt.Sprint(m.stats.Overruns))
	row("desyncs", fmt.Sprint(m.stats.RenderDesyncs+m.stats.LoopDesyncs))

	filled := int(min(m.peak, 1) * meterWidth)
	row("peak", meterStyle.Render(strings.Repeat("█", filled))+strings.Repeat("·", meterWidth-filled))

	sb.WriteString("\n")
	if m.finished {
		sb.WriteString(helpStyle.Render("source drained"))
	} else {
		sb.WriteString(helpStyle.Render("q to stop"))
	}
	return boxStyle.Render(sb.String())
}
