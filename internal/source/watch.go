package source

import (
	"context"
	"time"
)

// Watch polls src every interval and emits change events on ch, closing it
// when ctx is cancelled. The first successful poll emits the full state so
// subscribers start from a complete picture. Poll errors become SourceError
// events; the loop keeps going, since players come and go.
func Watch(ctx context.Context, src Source, interval time.Duration, ch chan<- Event) {
	defer close(ch)

	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev *State
	emit := func(ev Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		cur, err := src.State()
		if err != nil {
			if !emit(SourceError{Err: err}) {
				return
			}
		} else {
			for _, ev := range diff(prev, cur) {
				if !emit(ev) {
					return
				}
			}
			prev = cur
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func sameTrack(a, b Track) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a.Title == b.Title && a.Album == b.Album
}

// diff orders events stably: track first, then play state, mode, volume,
// position, so subscribers always learn what is playing before how.
func diff(prev, cur *State) []Event {
	var evs []Event
	if prev == nil {
		return []Event{
			TrackChange{Track: cur.Track},
			PlayStateChange{Playing: cur.Playing},
			ModeChange{Shuffle: cur.Shuffle, Repeat: cur.Repeat},
			VolumeChange{Volume: cur.Volume},
			PositionChange{Position: cur.Position, Length: cur.Length},
		}
	}

	if !sameTrack(prev.Track, cur.Track) {
		evs = append(evs, TrackChange{Track: cur.Track})
	}
	if prev.Playing != cur.Playing {
		evs = append(evs, PlayStateChange{Playing: cur.Playing})
	}
	if prev.Shuffle != cur.Shuffle || prev.Repeat != cur.Repeat {
		evs = append(evs, ModeChange{Shuffle: cur.Shuffle, Repeat: cur.Repeat})
	}
	if prev.Volume != cur.Volume {
		evs = append(evs, VolumeChange{Volume: cur.Volume})
	}
	if cur.Playing || prev.Position != cur.Position || prev.Length != cur.Length {
		evs = append(evs, PositionChange{Position: cur.Position, Length: cur.Length})
	}
	return evs
}

// Tee copies every event from in onto each out channel, closing them when in
// closes. Used when both the widget and the overlay server subscribe.
func Tee(in <-chan Event, outs ...chan<- Event) {
	defer func() {
		for _, out := range outs {
			close(out)
		}
	}()
	for ev := range in {
		for _, out := range outs {
			out <- ev
		}
	}
}
