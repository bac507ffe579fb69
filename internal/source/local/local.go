// Package local is the built-in audio source: it plays files from a music
// directory through the system speaker, so the widget works with no external
// player running.
package local

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/chippleh1392/audio-band/internal/logger"
	"github.com/chippleh1392/audio-band/internal/source"
)

func init() {
	source.Register("local", New)
}

const resampleQuality = 4

// Source plays a directory of audio files.
type Source struct {
	mu sync.Mutex

	queue       []string
	index       int
	shuffle     bool
	repeat      source.RepeatMode
	volumeLevel float64
	track       source.Track

	initialized bool
	sampleRate  beep.SampleRate
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	vol         *effects.Volume

	trackDone chan struct{}
	closed    chan struct{}
}

// New scans AUDIOBAND_MUSIC_DIR (default ~/Music) and loads the first track,
// paused. With no playable files the adapter reports no player, so
// auto-detection moves on.
func New() (source.Source, error) {
	dir := os.Getenv("AUDIOBAND_MUSIC_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("local: home dir: %w", err)
		}
		dir = filepath.Join(home, "Music")
	}

	queue, err := scan(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", source.ErrNoPlayer, dir, err)
	}
	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: no audio files under %s", source.ErrNoPlayer, dir)
	}

	s := &Source{
		queue:       queue,
		volumeLevel: 1.0,
		trackDone:   make(chan struct{}, 1),
		closed:      make(chan struct{}),
	}
	go s.manage()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.startLocked(0, true); err != nil {
		return nil, err
	}
	return s, nil
}

func scan(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mp3", ".flac", ".ogg", ".wav":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (s *Source) Name() string { return "local" }

// manage advances the queue when a track finishes on its own. The beep
// callback must not re-enter the speaker, so it only signals trackDone and
// the advance happens here.
func (s *Source) manage() {
	for {
		select {
		case <-s.closed:
			return
		case <-s.trackDone:
			s.mu.Lock()
			next, stop := s.nextIndexLocked()
			if stop {
				s.mu.Unlock()
				continue
			}
			if err := s.startLocked(next, false); err != nil {
				logger.S().Warnw("could not start next track", "error", err)
			}
			s.mu.Unlock()
		}
	}
}

func (s *Source) nextIndexLocked() (next int, stop bool) {
	switch {
	case s.repeat == source.RepeatOne:
		return s.index, false
	case s.shuffle && len(s.queue) > 1:
		next = rand.Intn(len(s.queue) - 1)
		if next >= s.index {
			next++
		}
		return next, false
	case s.index+1 < len(s.queue):
		return s.index + 1, false
	case s.repeat == source.RepeatAll:
		return 0, false
	default:
		return 0, true
	}
}

// startLocked loads and plays queue[i]. Callers hold s.mu.
func (s *Source) startLocked(i int, startPaused bool) error {
	path := s.queue[i]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("local: open %s: %w", path, err)
	}

	track := source.Track{ID: path, Title: filepath.Base(path)}
	if m, err := tag.ReadFrom(f); err == nil {
		if m.Title() != "" {
			track.Title = m.Title()
		}
		if m.Artist() != "" {
			track.Artists = []string{m.Artist()}
		}
		track.Album = m.Album()
		if pic := m.Picture(); pic != nil {
			track.ArtData = pic.Data
		}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fmt.Errorf("local: rewind %s: %w", path, err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		err = fmt.Errorf("unsupported format")
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("local: decode %s: %w", path, err)
	}

	if !s.initialized {
		speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
		s.sampleRate = format.SampleRate
		s.initialized = true
	}

	// Stop whatever was playing. Clear locks the speaker itself.
	speaker.Clear()
	if s.streamer != nil {
		s.streamer.Close()
	}

	var base beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		base = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}

	ctrl := &beep.Ctrl{Streamer: base, Paused: startPaused}
	vol := &effects.Volume{Streamer: ctrl, Base: 2, Silent: s.volumeLevel == 0}
	if s.volumeLevel > 0 {
		vol.Volume = math.Log2(s.volumeLevel)
	}

	s.streamer = streamer
	s.format = format
	s.ctrl = ctrl
	s.vol = vol
	s.track = track
	s.index = i

	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		select {
		case s.trackDone <- struct{}{}:
		default:
		}
	})))
	return nil
}

func (s *Source) State() (*source.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &source.State{
		Track:   s.track,
		Volume:  s.volumeLevel,
		Shuffle: s.shuffle,
		Repeat:  s.repeat,
	}
	if s.streamer != nil {
		speaker.Lock()
		st.Position = s.format.SampleRate.D(s.streamer.Position()).Round(time.Second)
		st.Length = s.format.SampleRate.D(s.streamer.Len()).Round(time.Second)
		st.Playing = !s.ctrl.Paused
		speaker.Unlock()
	}
	return st, nil
}

func (s *Source) PlayPause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return nil
	}
	speaker.Lock()
	s.ctrl.Paused = !s.ctrl.Paused
	speaker.Unlock()
	return nil
}

func (s *Source) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, stop := s.nextIndexLocked()
	if stop {
		next = 0
	}
	return s.startLocked(next, false)
}

func (s *Source) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.index - 1
	if prev < 0 {
		prev = len(s.queue) - 1
	}
	return s.startLocked(prev, false)
}

func (s *Source) Seek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return nil
	}
	speaker.Lock()
	defer speaker.Unlock()
	n := s.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if n >= s.streamer.Len() {
		n = s.streamer.Len() - 1
	}
	return s.streamer.Seek(n)
}

func (s *Source) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volumeLevel = v
	if s.vol == nil {
		return nil
	}
	speaker.Lock()
	s.vol.Silent = v == 0
	if v > 0 {
		s.vol.Volume = math.Log2(v)
	}
	speaker.Unlock()
	return nil
}

func (s *Source) SetShuffle(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = on
	return nil
}

func (s *Source) SetRepeat(m source.RepeatMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = m
	return nil
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.closed:
		return nil
	default:
	}
	close(s.closed)
	if s.streamer != nil {
		speaker.Clear()
		err := s.streamer.Close()
		s.streamer = nil
		return err
	}
	return nil
}
