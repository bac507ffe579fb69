// Package mpdsrc adapts an MPD server.
package mpdsrc

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/chippleh1392/audio-band/internal/source"
)

func init() {
	source.Register("mpd", New)
}

// Source talks to one MPD server over a persistent connection, redialing
// once when MPD drops an idle connection between polls.
type Source struct {
	addr   string
	client *mpd.Client
}

// New dials MPD at MPD_HOST:MPD_PORT, defaulting to localhost:6600.
func New() (source.Source, error) {
	host := os.Getenv("MPD_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("MPD_PORT")
	if port == "" {
		port = "6600"
	}
	addr := host + ":" + port

	client, err := mpd.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: mpd at %s: %v", source.ErrNoPlayer, addr, err)
	}
	return &Source{addr: addr, client: client}, nil
}

func (s *Source) Name() string { return "mpd" }

// do runs fn, redialing once if the connection went stale.
func (s *Source) do(fn func(c *mpd.Client) error) error {
	if err := fn(s.client); err == nil {
		return nil
	}
	client, err := mpd.Dial("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mpd: reconnect %s: %w", s.addr, err)
	}
	s.client.Close()
	s.client = client
	return fn(s.client)
}

func (s *Source) State() (*source.State, error) {
	var status, song mpd.Attrs
	err := s.do(func(c *mpd.Client) error {
		var err error
		if status, err = c.Status(); err != nil {
			return err
		}
		song, err = c.CurrentSong()
		return err
	})
	if err != nil {
		return nil, err
	}

	st := &source.State{
		Playing:  status["state"] == "play",
		Position: attrSeconds(status, "elapsed"),
		Length:   attrSeconds(status, "duration"),
		Volume:   float64(attrInt(status, "volume")) / 100,
		Shuffle:  status["random"] == "1",
		Track: source.Track{
			ID:    song["Id"],
			Title: song["Title"],
			Album: song["Album"],
		},
	}
	if artist := song["Artist"]; artist != "" {
		st.Track.Artists = []string{artist}
	}
	if st.Track.Title == "" {
		st.Track.Title = song["file"]
	}
	switch {
	case status["single"] == "1":
		st.Repeat = source.RepeatOne
	case status["repeat"] == "1":
		st.Repeat = source.RepeatAll
	}
	return st, nil
}

func (s *Source) PlayPause() error {
	return s.do(func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		switch status["state"] {
		case "play":
			return c.Pause(true)
		case "pause":
			return c.Pause(false)
		default:
			return c.Play(-1)
		}
	})
}

func (s *Source) Next() error {
	return s.do(func(c *mpd.Client) error { return c.Next() })
}

func (s *Source) Previous() error {
	return s.do(func(c *mpd.Client) error { return c.Previous() })
}

func (s *Source) Seek(pos time.Duration) error {
	return s.do(func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		songPos := attrInt(status, "song")
		return c.Seek(songPos, int(pos.Seconds()))
	})
}

func (s *Source) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return s.do(func(c *mpd.Client) error { return c.SetVolume(int(v * 100)) })
}

func (s *Source) SetShuffle(on bool) error {
	return s.do(func(c *mpd.Client) error { return c.Random(on) })
}

func (s *Source) SetRepeat(m source.RepeatMode) error {
	return s.do(func(c *mpd.Client) error {
		if err := c.Repeat(m != source.RepeatOff); err != nil {
			return err
		}
		return c.Single(m == source.RepeatOne)
	})
}

func (s *Source) Close() error {
	return s.client.Close()
}

func attrSeconds(attrs mpd.Attrs, key string) time.Duration {
	f, err := strconv.ParseFloat(attrs[key], 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func attrInt(attrs mpd.Attrs, key string) int {
	n, err := strconv.Atoi(attrs[key])
	if err != nil {
		return 0
	}
	return n
}
