package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/chippleh1392/audio-band/internal/source"
)

func (m Model) View() string {
	if m.pane != nil {
		return m.pane.view(m.width)
	}

	var b strings.Builder

	// The kitty payload draws at the cursor without moving it, so pad the
	// image's cell height to keep the text below the art.
	if !m.art.Empty() {
		b.WriteString(m.art.Data)
		b.WriteString(strings.Repeat("\n", m.art.Rows+1))
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Faint(true)

	title := m.track.Title
	if title == "" {
		title = "nothing playing"
	}
	line := titleStyle.Render(title)
	if len(m.track.Artists) > 0 {
		line += dimStyle.Render(" — " + strings.Join(m.track.Artists, ", "))
	}
	if m.track.Album != "" {
		line += dimStyle.Render(" (" + m.track.Album + ")")
	}
	b.WriteString(line)
	b.WriteString("\n")

	b.WriteString(m.transportLine())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) transportLine() string {
	bar := &m.cfg.Bar
	buttons := &m.cfg.Buttons

	buttonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(buttons.Color()))
	icon := buttons.PlayIcon()
	if m.playing {
		icon = buttons.PauseIcon()
	}
	parts := []string{buttonStyle.Render(buttons.PrevIcon() + " " + icon + " " + buttons.NextIcon())}

	p := progress.New()
	p.Width = bar.Width()
	p.Full = '▰'
	p.Empty = '▱'
	p.FullColor = bar.Foreground()
	p.EmptyColor = bar.Background()
	p.ShowPercentage = false

	var percent float64
	if m.length > 0 {
		percent = float64(m.position) / float64(m.length)
	}
	parts = append(parts, p.ViewAs(percent))

	if bar.ShowTime() {
		parts = append(parts, fmt.Sprintf("%s/%s", clock(m.position), clock(m.length)))
	}

	parts = append(parts, fmt.Sprintf("vol %d%%", int(m.volume*100+0.5)))
	if m.shuffle {
		parts = append(parts, "⇄")
	}
	if m.repeat != source.RepeatOff {
		parts = append(parts, "⟳ "+m.repeat.String())
	}
	parts = append(parts, lipgloss.NewStyle().Faint(true).Render("["+m.src.Name()+"]"))

	return strings.Join(parts, "  ")
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
