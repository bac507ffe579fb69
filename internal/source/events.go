package source

import "time"

// Event is a change notice emitted by the watcher. Events, alongside acting
// as a notifier for changes, also carry the changed values.
type Event interface {
	isEvent()
}

// TrackChange is emitted when the current track changes, including to or
// from nothing playing (zero Track).
type TrackChange struct {
	Track Track
}

func (TrackChange) isEvent() {}

// PlayStateChange is emitted when playback pauses or resumes.
type PlayStateChange struct {
	Playing bool
}

func (PlayStateChange) isEvent() {}

// PositionChange carries playback progress. Emitted on every poll while
// playing and whenever the position jumps.
type PositionChange struct {
	Position time.Duration
	Length   time.Duration
}

func (PositionChange) isEvent() {}

// VolumeChange is emitted when the player volume changes.
type VolumeChange struct {
	Volume float64
}

func (VolumeChange) isEvent() {}

// ModeChange is emitted when shuffle or repeat changes.
type ModeChange struct {
	Shuffle bool
	Repeat  RepeatMode
}

func (ModeChange) isEvent() {}

// SourceError reports a failed poll. The watcher keeps polling afterwards.
type SourceError struct {
	Err error
}

func (SourceError) isEvent() {}
