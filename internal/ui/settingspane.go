package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chippleh1392/audio-band/internal/settings"
)

// paneAction tells the parent model what to do with the open transaction.
type paneAction int

const (
	paneOpen paneAction = iota
	paneCancel
	paneSave
)

// fieldRow is one editable settings field. Edits go through the section view
// model's SetProperty, so the widget previews them live while the
// transaction is open.
type fieldRow struct {
	section string
	name    string
	get     func() string
	set     func(string) error
	toggle  func() error // set for booleans; enter flips instead of editing
	preview func() string
}

// settingsPane is the in-widget settings editor. Constructing it opens an
// edit transaction on every section; the parent commits or cancels it.
type settingsPane struct {
	vms    *settings.ViewModels
	rows   []fieldRow
	cursor int
	input  textinput.Model
	typing bool
	status string
}

func newSettingsPane(vms *settings.ViewModels, cfg *settings.Settings) *settingsPane {
	vms.BeginEdit()

	input := textinput.New()
	input.CharLimit = 64
	input.Width = 24

	p := &settingsPane{vms: vms, input: input}
	p.rows = buildRows(vms, cfg)
	return p
}

func buildRows(vms *settings.ViewModels, cfg *settings.Settings) []fieldRow {
	setString := func(vm interface{ SetProperty(string, any) bool }, property string) func(string) error {
		return func(v string) error {
			if !vm.SetProperty(property, v) {
				return fmt.Errorf("could not set %s", property)
			}
			return nil
		}
	}
	setInt := func(vm interface{ SetProperty(string, any) bool }, property string) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s must be a number", property)
			}
			if !vm.SetProperty(property, n) {
				return fmt.Errorf("could not set %s", property)
			}
			return nil
		}
	}
	toggleBool := func(vm interface{ SetProperty(string, any) bool }, property string, get func() bool) func() error {
		return func() error {
			if !vm.SetProperty(property, !get()) {
				return fmt.Errorf("could not toggle %s", property)
			}
			return nil
		}
	}

	g, bar, art, btn := &cfg.General, &cfg.Bar, &cfg.AlbumArt, &cfg.Buttons
	return []fieldRow{
		{
			section: "general", name: "Source",
			get: g.Source, set: setString(vms.General, "Source"),
		},
		{
			section: "general", name: "PollInterval",
			get: func() string { return g.PollInterval().String() },
			set: func(v string) error {
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("PollInterval must be a duration like 500ms")
				}
				if !vms.General.SetProperty("PollInterval", d) {
					return fmt.Errorf("could not set PollInterval")
				}
				return nil
			},
		},
		{
			section: "general", name: "OverlayEnabled",
			get:    func() string { return strconv.FormatBool(g.OverlayEnabled()) },
			toggle: toggleBool(vms.General, "OverlayEnabled", g.OverlayEnabled),
		},
		{
			section: "general", name: "OverlayAddr",
			get: g.OverlayAddr, set: setString(vms.General, "OverlayAddr"),
		},
		{
			section: "bar", name: "Foreground",
			get: bar.Foreground, set: setString(vms.Bar, "Foreground"),
			preview: vms.Bar.Swatch,
		},
		{
			section: "bar", name: "Background",
			get: bar.Background, set: setString(vms.Bar, "Background"),
			preview: vms.Bar.Swatch,
		},
		{
			section: "bar", name: "Width",
			get: func() string { return strconv.Itoa(bar.Width()) },
			set: setInt(vms.Bar, "Width"),
		},
		{
			section: "bar", name: "ShowTime",
			get:    func() string { return strconv.FormatBool(bar.ShowTime()) },
			toggle: toggleBool(vms.Bar, "ShowTime", bar.ShowTime),
		},
		{
			section: "album_art", name: "Enabled",
			get:    func() string { return strconv.FormatBool(art.Enabled()) },
			toggle: toggleBool(vms.AlbumArt, "Enabled", art.Enabled),
		},
		{
			section: "album_art", name: "Size",
			get: func() string { return strconv.Itoa(art.Size()) },
			set: setInt(vms.AlbumArt, "Size"),
		},
		{
			section: "buttons", name: "Color",
			get: btn.Color, set: setString(vms.Buttons, "Color"),
			preview: vms.Buttons.Preview,
		},
		{
			section: "buttons", name: "PlayIcon",
			get: btn.PlayIcon, set: setString(vms.Buttons, "PlayIcon"),
			preview: vms.Buttons.Preview,
		},
		{
			section: "buttons", name: "PauseIcon",
			get: btn.PauseIcon, set: setString(vms.Buttons, "PauseIcon"),
			preview: vms.Buttons.Preview,
		},
		{
			section: "buttons", name: "NextIcon",
			get: btn.NextIcon, set: setString(vms.Buttons, "NextIcon"),
			preview: vms.Buttons.Preview,
		},
		{
			section: "buttons", name: "PrevIcon",
			get: btn.PrevIcon, set: setString(vms.Buttons, "PrevIcon"),
			preview: vms.Buttons.Preview,
		},
	}
}

var (
	saveKey = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))
	quitKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

func (p *settingsPane) update(msg tea.KeyMsg) (paneAction, tea.Cmd) {
	if p.typing {
		switch msg.String() {
		case "enter":
			row := p.rows[p.cursor]
			if err := row.set(p.input.Value()); err != nil {
				p.status = err.Error()
			} else {
				p.status = ""
			}
			p.typing = false
			p.input.Blur()
			return paneOpen, nil
		case "esc":
			p.typing = false
			p.input.Blur()
			return paneOpen, nil
		default:
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return paneOpen, cmd
		}
	}

	switch {
	case key.Matches(msg, quitKey):
		return paneCancel, nil
	case key.Matches(msg, saveKey):
		return paneSave, nil
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case "enter":
		row := p.rows[p.cursor]
		if row.toggle != nil {
			if err := row.toggle(); err != nil {
				p.status = err.Error()
			} else {
				p.status = ""
			}
			return paneOpen, nil
		}
		p.typing = true
		p.input.SetValue(row.get())
		p.input.CursorEnd()
		return paneOpen, p.input.Focus()
	}
	return paneOpen, nil
}

func (p *settingsPane) view(width int) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Faint(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	var b strings.Builder
	b.WriteString(headerStyle.Render("settings"))
	b.WriteString("\n\n")

	lastSection := ""
	for i, row := range p.rows {
		if row.section != lastSection {
			b.WriteString(sectionStyle.Render("[" + row.section + "]"))
			b.WriteString("\n")
			lastSection = row.section
		}

		value := row.get()
		if p.typing && i == p.cursor {
			value = p.input.View()
		}
		line := fmt.Sprintf("  %-16s %s", row.name, value)
		if row.preview != nil {
			line += "  " + row.preview()
		}
		if i == p.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(sectionStyle.Render("enter edit · esc cancel · ctrl+s save"))
	return b.String()
}
