// Package settings holds the widget's persisted configuration: plain model
// types with change notifications, the view models the settings editor binds
// to, and the versioned YAML store.
package settings

import (
	"time"

	"github.com/chippleh1392/audio-band/internal/binding"
)

// General configures source selection and the overlay server.
type General struct {
	binding.Emitter
	source         string
	pollInterval   time.Duration
	overlayEnabled bool
	overlayAddr    string
}

func (g *General) Source() string { return g.source }
func (g *General) SetSource(v string) {
	g.source = v
	g.Notify("Source")
}

func (g *General) PollInterval() time.Duration { return g.pollInterval }
func (g *General) SetPollInterval(v time.Duration) {
	g.pollInterval = v
	g.Notify("PollInterval")
}

func (g *General) OverlayEnabled() bool { return g.overlayEnabled }
func (g *General) SetOverlayEnabled(v bool) {
	g.overlayEnabled = v
	g.Notify("OverlayEnabled")
}

func (g *General) OverlayAddr() string { return g.overlayAddr }
func (g *General) SetOverlayAddr(v string) {
	g.overlayAddr = v
	g.Notify("OverlayAddr")
}

// Bar configures the progress bar.
type Bar struct {
	binding.Emitter
	foreground string
	background string
	width      int
	showTime   bool
}

func (b *Bar) Foreground() string { return b.foreground }
func (b *Bar) SetForeground(v string) {
	b.foreground = v
	b.Notify("Foreground")
}

func (b *Bar) Background() string { return b.background }
func (b *Bar) SetBackground(v string) {
	b.background = v
	b.Notify("Background")
}

func (b *Bar) Width() int { return b.width }
func (b *Bar) SetWidth(v int) {
	b.width = v
	b.Notify("Width")
}

func (b *Bar) ShowTime() bool { return b.showTime }
func (b *Bar) SetShowTime(v bool) {
	b.showTime = v
	b.Notify("ShowTime")
}

// AlbumArt configures the album art cell.
type AlbumArt struct {
	binding.Emitter
	enabled bool
	size    int
}

func (a *AlbumArt) Enabled() bool { return a.enabled }
func (a *AlbumArt) SetEnabled(v bool) {
	a.enabled = v
	a.Notify("Enabled")
}

func (a *AlbumArt) Size() int { return a.size }
func (a *AlbumArt) SetSize(v int) {
	a.size = v
	a.Notify("Size")
}

// Buttons configures the transport button glyphs.
type Buttons struct {
	binding.Emitter
	color     string
	playIcon  string
	pauseIcon string
	nextIcon  string
	prevIcon  string
}

func (b *Buttons) Color() string { return b.color }
func (b *Buttons) SetColor(v string) {
	b.color = v
	b.Notify("Color")
}

func (b *Buttons) PlayIcon() string { return b.playIcon }
func (b *Buttons) SetPlayIcon(v string) {
	b.playIcon = v
	b.Notify("PlayIcon")
}

func (b *Buttons) PauseIcon() string { return b.pauseIcon }
func (b *Buttons) SetPauseIcon(v string) {
	b.pauseIcon = v
	b.Notify("PauseIcon")
}

func (b *Buttons) NextIcon() string { return b.nextIcon }
func (b *Buttons) SetNextIcon(v string) {
	b.nextIcon = v
	b.Notify("NextIcon")
}

func (b *Buttons) PrevIcon() string { return b.prevIcon }
func (b *Buttons) SetPrevIcon(v string) {
	b.prevIcon = v
	b.Notify("PrevIcon")
}

// Settings is the root of the persisted configuration graph.
type Settings struct {
	General  General
	Bar      Bar
	AlbumArt AlbumArt
	Buttons  Buttons
}
