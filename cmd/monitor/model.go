package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hasher/pkg/simdsha256"
)

// nonceSpaceSize is the denominator the dashboard's progress bar measures
// hashesDone against: Search4/Search8/scalarSearchWithProgress all cover
// the full 32-bit nonce space (maxNonce+1), never a caller-chosen subrange.
const nonceSpaceSize = 1 << 32

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00")).
			Padding(0, 2).
			Bold(true).
			Width(60)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4B5563")).
			Padding(0, 2).
			Width(60)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)

	foundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	cancelledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// progressMsg is posted once per reportThreshold-sized batch the search
// core completes.
type progressMsg struct {
	hashCount uint32
	elapsed   time.Duration
}

// doneMsg is posted exactly once, when the search returns — found,
// exhausted, or cancelled.
type doneMsg struct {
	output    simdsha256.SearchOutput
	cancelled bool
	elapsed   time.Duration
}

// dashboardModel is the bubbletea model for the live nonce-search
// monitor: a single header, one tier, one running (or finished) search.
type dashboardModel struct {
	headerHex string
	tier      simdsha256.Tier

	hashesDone uint64
	elapsed    time.Duration

	done       bool
	found      bool
	cancelled  bool
	foundNonce uint32

	bar progress.Model
}

func newModel(headerHex string, tier simdsha256.Tier) dashboardModel {
	return dashboardModel{
		headerHex: headerHex,
		tier:      tier,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}

	case progressMsg:
		m.hashesDone += uint64(msg.hashCount)
		m.elapsed = msg.elapsed
		percent := float64(m.hashesDone) / float64(nonceSpaceSize)
		if percent > 1 {
			percent = 1
		}
		return m, m.bar.SetPercent(percent)

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)
		return m, cmd

	case doneMsg:
		m.done = true
		m.found = msg.output.Found
		m.foundNonce = msg.output.Nonce
		m.cancelled = msg.cancelled && !msg.output.Found
		m.elapsed = msg.elapsed
		cmd := m.bar.SetPercent(1)
		return m, tea.Batch(cmd, tea.Quit)
	}

	return m, nil
}

func (m dashboardModel) View() string {
	header := headerStyle.Render("HASHER — nonce-search monitor")

	status := "searching"
	statusRendered := progressStyle.Render(status)
	if m.done {
		switch {
		case m.found:
			statusRendered = foundStyle.Render("found")
		case m.cancelled:
			statusRendered = cancelledStyle.Render("cancelled")
		default:
			statusRendered = cancelledStyle.Render("exhausted")
		}
	}

	rate := float64(0)
	if m.elapsed > 0 {
		rate = float64(m.hashesDone) / m.elapsed.Seconds()
	}

	lines := []string{
		header,
		"",
		labelStyle.Render("header   ") + valueStyle.Render(m.headerHex),
		labelStyle.Render("tier     ") + valueStyle.Render(m.tier.String()),
		labelStyle.Render("status   ") + statusRendered,
		labelStyle.Render("progress ") + m.bar.View(),
		labelStyle.Render("hashes   ") + valueStyle.Render(fmt.Sprintf("%d", m.hashesDone)),
		labelStyle.Render("rate     ") + valueStyle.Render(fmt.Sprintf("%.0f h/s", rate)),
		labelStyle.Render("elapsed  ") + valueStyle.Render(m.elapsed.Round(time.Millisecond).String()),
	}

	if m.done && m.found {
		lines = append(lines, labelStyle.Render("nonce    ")+foundStyle.Render(fmt.Sprintf("%d", m.foundNonce)))
	}

	lines = append(lines, "", footerStyle.Render("q: quit"))

	out := ""
	for _, line := range lines {
		out += line + "\n"
	}
	return out
}
