// Package ui is the taskbar widget: a bubbletea program that renders the
// current playback state and forwards key presses to the audio source.
package ui

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chippleh1392/audio-band/internal/logger"
	"github.com/chippleh1392/audio-band/internal/settings"
	"github.com/chippleh1392/audio-band/internal/source"
	"github.com/chippleh1392/audio-band/internal/termimg"
)

const seekStep = 5 * time.Second
const volumeStep = 0.05

// eventMsg wraps one watcher event for the tea loop. ok is false when the
// watcher shut down.
type eventMsg struct {
	ev source.Event
	ok bool
}

func listenEvents(ch <-chan source.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return eventMsg{ev: ev, ok: ok}
	}
}

// controlDoneMsg reports the outcome of a playback control call, which runs
// off the update loop because adapters may block on IPC.
type controlDoneMsg struct {
	err error
}

func control(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return controlDoneMsg{err: fn()}
	}
}

type artMsg struct {
	img termimg.Image
	err error
}

// fetchArt loads and encodes cover art off the update loop. Failures become
// a placeholder, never an error surfaced to the user.
func fetchArt(track source.Track, sizePx int) tea.Cmd {
	return func() tea.Msg {
		data := track.ArtData
		if len(data) == 0 && track.ArtURL != "" {
			data = readArtURL(track.ArtURL)
		}
		img, err := termimg.Encode(data, sizePx)
		return artMsg{img: img, err: err}
	}
}

func readArtURL(raw string) []byte {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	switch u.Scheme {
	case "file":
		data, err := os.ReadFile(u.Path)
		if err != nil {
			logger.S().Debugw("could not read art file", "path", u.Path, "error", err)
			return nil
		}
		return data
	case "http", "https":
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(raw)
		if err != nil {
			logger.S().Debugw("could not fetch art", "url", raw, "error", err)
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		if err != nil {
			return nil
		}
		return data
	default:
		return nil
	}
}

// Model is the widget's tea model.
type Model struct {
	src     source.Source
	events  <-chan source.Event
	cfg     *settings.Settings
	vms     *settings.ViewModels
	cfgPath string

	track    source.Track
	playing  bool
	position time.Duration
	length   time.Duration
	volume   float64
	shuffle  bool
	repeat   source.RepeatMode
	art      termimg.Image
	status   string

	keys   keyMap
	help   help.Model
	pane   *settingsPane
	width  int
	height int
}

// New wires the widget over an already-opened source and its event stream.
func New(src source.Source, events <-chan source.Event, cfg *settings.Settings, cfgPath string) (Model, error) {
	vms, err := settings.NewViewModels(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{
		src:     src,
		events:  events,
		cfg:     cfg,
		vms:     vms,
		cfgPath: cfgPath,
		volume:  1,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return listenEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		cmd := m.applyEvent(msg.ev)
		return m, tea.Batch(listenEvents(m.events), cmd)

	case artMsg:
		if msg.err != nil {
			logger.S().Debugw("art encode failed", "error", msg.err)
			m.art = termimg.Image{}
			return m, nil
		}
		m.art = msg.img
		return m, nil

	case controlDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			logger.S().Warnw("control failed", "error", msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.pane != nil {
			return m.updatePane(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyEvent(ev source.Event) tea.Cmd {
	switch ev := ev.(type) {
	case source.TrackChange:
		m.track = ev.Track
		m.art = termimg.Image{}
		m.status = ""
		if m.cfg.AlbumArt.Enabled() {
			return fetchArt(ev.Track, m.cfg.AlbumArt.Size())
		}
	case source.PlayStateChange:
		m.playing = ev.Playing
	case source.PositionChange:
		m.position = ev.Position
		m.length = ev.Length
	case source.VolumeChange:
		m.volume = ev.Volume
	case source.ModeChange:
		m.shuffle = ev.Shuffle
		m.repeat = ev.Repeat
	case source.SourceError:
		m.status = ev.Err.Error()
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.PlayPause):
		return m, control(m.src.PlayPause)
	case key.Matches(msg, keys.Next):
		return m, control(m.src.Next)
	case key.Matches(msg, keys.Prev):
		return m, control(m.src.Previous)
	case key.Matches(msg, keys.SeekFwd):
		pos := m.position + seekStep
		return m, control(func() error { return m.src.Seek(pos) })
	case key.Matches(msg, keys.SeekBack):
		pos := m.position - seekStep
		if pos < 0 {
			pos = 0
		}
		return m, control(func() error { return m.src.Seek(pos) })
	case key.Matches(msg, keys.VolUp):
		v := m.volume + volumeStep
		return m, control(func() error { return m.src.SetVolume(v) })
	case key.Matches(msg, keys.VolDown):
		v := m.volume - volumeStep
		return m, control(func() error { return m.src.SetVolume(v) })
	case key.Matches(msg, keys.Shuffle):
		on := !m.shuffle
		return m, control(func() error { return m.src.SetShuffle(on) })
	case key.Matches(msg, keys.Repeat):
		next := m.repeat.Next()
		return m, control(func() error { return m.src.SetRepeat(next) })
	case key.Matches(msg, keys.Settings):
		m.pane = newSettingsPane(m.vms, m.cfg)
		return m, nil
	}
	return m, nil
}

func (m Model) updatePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.pane.update(msg)
	switch action {
	case paneCancel:
		m.vms.CancelEdit()
		m.pane = nil
		m.status = "settings reverted"
	case paneSave:
		m.vms.EndEdit()
		if err := settings.Save(m.cfgPath, m.cfg); err != nil {
			m.status = "save failed: " + err.Error()
			logger.S().Errorw("settings save failed", "path", m.cfgPath, "error", err)
		} else {
			m.status = "settings saved"
		}
		m.pane = nil
	}
	return m, cmd
}
