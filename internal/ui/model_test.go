package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chippleh1392/audio-band/internal/settings"
	"github.com/chippleh1392/audio-band/internal/source"
	"github.com/chippleh1392/audio-band/internal/termimg"
)

type stubSource struct {
	playPauses int
}

func (s *stubSource) Name() string                  { return "stub" }
func (s *stubSource) State() (*source.State, error) { return &source.State{}, nil }
func (s *stubSource) PlayPause() error {
	s.playPauses++
	return nil
}
func (s *stubSource) Next() error                       { return nil }
func (s *stubSource) Previous() error                   { return nil }
func (s *stubSource) Seek(time.Duration) error          { return nil }
func (s *stubSource) SetVolume(float64) error           { return nil }
func (s *stubSource) SetShuffle(bool) error             { return nil }
func (s *stubSource) SetRepeat(source.RepeatMode) error { return nil }
func (s *stubSource) Close() error                      { return nil }

func newTestModel(t *testing.T) (Model, *stubSource) {
	t.Helper()
	src := &stubSource{}
	cfg := settings.Default()
	cfg.AlbumArt.SetEnabled(false) // keep art fetching out of these tests
	m, err := New(src, make(chan source.Event), cfg, t.TempDir()+"/config.yaml")
	require.NoError(t, err)
	return m, src
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestEventsUpdatePlaybackFields(t *testing.T) {
	m, _ := newTestModel(t)

	track := source.Track{ID: "1", Title: "Song", Artists: []string{"A"}}
	for _, ev := range []source.Event{
		source.TrackChange{Track: track},
		source.PlayStateChange{Playing: true},
		source.PositionChange{Position: 10 * time.Second, Length: time.Minute},
		source.VolumeChange{Volume: 0.4},
		source.ModeChange{Shuffle: true, Repeat: source.RepeatAll},
	} {
		next, _ := m.Update(eventMsg{ev: ev, ok: true})
		m = next.(Model)
	}

	assert.Equal(t, track, m.track)
	assert.True(t, m.playing)
	assert.Equal(t, 10*time.Second, m.position)
	assert.Equal(t, time.Minute, m.length)
	assert.Equal(t, 0.4, m.volume)
	assert.True(t, m.shuffle)
	assert.Equal(t, source.RepeatAll, m.repeat)
}

func TestClosedEventStreamQuits(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(eventMsg{ok: false})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPlayPauseKeyCallsSource(t *testing.T) {
	m, src := newTestModel(t)

	_, cmd := m.Update(keyMsg("p"))
	require.NotNil(t, cmd)
	cmd() // control commands run the source call when executed
	assert.Equal(t, 1, src.playPauses)
}

func TestSettingsPaneCancelRestores(t *testing.T) {
	m, _ := newTestModel(t)
	original := m.cfg.Bar.ShowTime()

	next, _ := m.Update(keyMsg("s"))
	m = next.(Model)
	require.NotNil(t, m.pane)

	// Move to the bar.ShowTime row and toggle it.
	for i, row := range m.pane.rows {
		if row.section == "bar" && row.name == "ShowTime" {
			m.pane.cursor = i
		}
	}
	m.pane.update(keyMsg("enter"))
	assert.Equal(t, !original, m.cfg.Bar.ShowTime())

	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)
	assert.Nil(t, m.pane)
	assert.Equal(t, original, m.cfg.Bar.ShowTime())
}

func TestSettingsPaneSavePersists(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(keyMsg("s"))
	m = next.(Model)
	require.NotNil(t, m.pane)

	for i, row := range m.pane.rows {
		if row.section == "bar" && row.name == "ShowTime" {
			m.pane.cursor = i
		}
	}
	m.pane.update(keyMsg("enter"))
	toggled := m.cfg.Bar.ShowTime()

	next, _ = m.Update(keyMsg("ctrl+s"))
	m = next.(Model)
	assert.Nil(t, m.pane)
	assert.Equal(t, toggled, m.cfg.Bar.ShowTime())

	loaded, err := settings.Load(m.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, toggled, loaded.Bar.ShowTime())
}

func TestPaneEditStringField(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(keyMsg("s"))
	m = next.(Model)

	for i, row := range m.pane.rows {
		if row.section == "bar" && row.name == "Foreground" {
			m.pane.cursor = i
		}
	}

	m.pane.update(keyMsg("enter")) // start typing
	require.True(t, m.pane.typing)
	m.pane.input.SetValue("#010203")
	m.pane.update(keyMsg("enter")) // commit the field

	assert.False(t, m.pane.typing)
	assert.Empty(t, m.pane.status)
	assert.Equal(t, "#010203", m.cfg.Bar.Foreground())
}

func TestViewRendersWithoutTrack(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "nothing playing")
	assert.Contains(t, out, "[stub]")
}

func TestViewPadsArtCellHeight(t *testing.T) {
	m, _ := newTestModel(t)
	m.art = termimg.Image{Cols: 4, Rows: 3, Data: "\x1b_Gpayload\x1b\\"}

	out := m.View()
	// The image payload must be followed by its cell height in blank lines
	// so the text lines render below it.
	assert.Contains(t, out, m.art.Data+"\n\n\n\n")
}
