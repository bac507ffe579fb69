// Package source defines the audio source adapter interface the widget
// polls, the state it reports, and the watcher that turns polled snapshots
// into change events.
package source

import (
	"errors"
	"time"
)

// ErrNoPlayer means no running player could be found for an adapter.
var ErrNoPlayer = errors.New("source: no player found")

// RepeatMode is the player's repeat setting.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next cycles off -> all -> one -> off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// Track identifies what is playing.
type Track struct {
	// ID of the current track, opaque to the widget. Track changes are
	// detected by ID, falling back to Title when the player has no IDs.
	ID      string
	Title   string
	Artists []string
	Album   string
	// ArtURL points at cover art; ArtData carries it inline when the
	// player hands over raw bytes. Either or both may be empty.
	ArtURL  string
	ArtData []byte
}

// State is one polled snapshot of a player.
type State struct {
	Track    Track
	Playing  bool
	Position time.Duration
	Length   time.Duration
	// Volume in 0..1.
	Volume  float64
	Shuffle bool
	Repeat  RepeatMode
}

// Source is a playback adapter around one external (or built-in) player.
// All methods may block briefly on the player's IPC; the widget calls them
// off its render loop.
type Source interface {
	Name() string
	State() (*State, error)

	PlayPause() error
	Next() error
	Previous() error
	Seek(pos time.Duration) error
	SetVolume(v float64) error
	SetShuffle(on bool) error
	SetRepeat(m RepeatMode) error

	Close() error
}
