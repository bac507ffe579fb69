// Package mpris adapts any MPRIS-capable player on the session bus.
package mpris

import (
	"fmt"
	"time"

	gompris "github.com/Pauloo27/go-mpris"
	"github.com/godbus/dbus/v5"

	"github.com/chippleh1392/audio-band/internal/source"
)

func init() {
	source.Register("mpris", New)
}

// Source wraps the first MPRIS player found on the session bus.
type Source struct {
	conn   *dbus.Conn
	player *gompris.Player
	name   string
}

// New connects to the session bus and picks the first running player.
func New() (source.Source, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: session bus: %v", source.ErrNoPlayer, err)
	}
	names, err := gompris.List(conn)
	if err != nil {
		return nil, fmt.Errorf("mpris: list players: %w", err)
	}
	if len(names) == 0 {
		return nil, source.ErrNoPlayer
	}
	name := names[0]
	return &Source{
		conn:   conn,
		player: gompris.New(conn, name),
		name:   name,
	}, nil
}

func (s *Source) Name() string { return s.name }

func (s *Source) State() (*source.State, error) {
	status, err := s.player.GetPlaybackStatus()
	if err != nil {
		return nil, fmt.Errorf("mpris: playback status: %w", err)
	}
	meta, err := s.player.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("mpris: metadata: %w", err)
	}

	st := &source.State{
		Playing: status == gompris.PlaybackPlaying,
		Track: source.Track{
			ID:      metaString(meta, "mpris:trackid"),
			Title:   metaString(meta, "xesam:title"),
			Artists: metaStrings(meta, "xesam:artist"),
			Album:   metaString(meta, "xesam:album"),
			ArtURL:  metaString(meta, "mpris:artUrl"),
		},
		Length: time.Duration(metaInt(meta, "mpris:length")) * time.Microsecond,
	}

	// The optional properties vary by player; missing ones stay zero.
	if pos, err := s.player.GetPosition(); err == nil {
		st.Position = time.Duration(pos * float64(time.Second))
	}
	if vol, err := s.player.GetVolume(); err == nil {
		st.Volume = vol
	}
	if shuffle, err := s.player.GetShuffle(); err == nil {
		st.Shuffle = shuffle
	}
	if loop, err := s.player.GetLoopStatus(); err == nil {
		st.Repeat = fromLoopStatus(loop)
	}
	return st, nil
}

func (s *Source) PlayPause() error { return s.player.PlayPause() }
func (s *Source) Next() error      { return s.player.Next() }
func (s *Source) Previous() error  { return s.player.Previous() }

func (s *Source) Seek(pos time.Duration) error {
	return s.player.SetPosition(pos.Seconds())
}

func (s *Source) SetVolume(v float64) error {
	return s.player.SetVolume(clamp01(v))
}

func (s *Source) SetShuffle(on bool) error {
	return s.player.SetShuffle(on)
}

func (s *Source) SetRepeat(m source.RepeatMode) error {
	return s.player.SetLoopStatus(toLoopStatus(m))
}

func (s *Source) Close() error {
	return s.conn.Close()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fromLoopStatus(l gompris.LoopStatus) source.RepeatMode {
	switch l {
	case gompris.LoopTrack:
		return source.RepeatOne
	case gompris.LoopPlaylist:
		return source.RepeatAll
	default:
		return source.RepeatOff
	}
}

func toLoopStatus(m source.RepeatMode) gompris.LoopStatus {
	switch m {
	case source.RepeatOne:
		return gompris.LoopTrack
	case source.RepeatAll:
		return gompris.LoopPlaylist
	default:
		return gompris.LoopNone
	}
}

// Metadata values arrive as loosely typed variants; players disagree on the
// exact types, so extraction is tolerant.

func metaString(meta map[string]dbus.Variant, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}
	switch val := v.Value().(type) {
	case string:
		return val
	case dbus.ObjectPath:
		return string(val)
	default:
		return ""
	}
}

func metaStrings(meta map[string]dbus.Variant, key string) []string {
	v, ok := meta[key]
	if !ok {
		return nil
	}
	switch val := v.Value().(type) {
	case []string:
		return val
	case string:
		return []string{val}
	default:
		return nil
	}
}

func metaInt(meta map[string]dbus.Variant, key string) int64 {
	v, ok := meta[key]
	if !ok {
		return 0
	}
	switch val := v.Value().(type) {
	case int64:
		return val
	case uint64:
		return int64(val)
	case int32:
		return int64(val)
	case uint32:
		return int64(val)
	case float64:
		return int64(val)
	default:
		return 0
	}
}
