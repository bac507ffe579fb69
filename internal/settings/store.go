package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"

	"github.com/chippleh1392/audio-band/internal/logger"
)

// Version is the current settings file schema version.
const Version = 2

// ErrUnknownVersion is returned for a settings file written by a newer
// release than this one.
var ErrUnknownVersion = errors.New("settings: unknown file version")

// fileSettings is the v2 on-disk schema. The live model types keep their
// fields unexported behind notifying setters, so serialization goes through
// this separate shape.
type fileSettings struct {
	Version  int          `yaml:"version"`
	General  fileGeneral  `yaml:"general"`
	Bar      fileBar      `yaml:"progress_bar"`
	AlbumArt fileAlbumArt `yaml:"album_art"`
	Buttons  fileButtons  `yaml:"buttons"`
}

type fileGeneral struct {
	Source         string `yaml:"source" default:"auto"`
	PollIntervalMS int    `yaml:"poll_interval_ms" default:"1000"`
	OverlayEnabled bool   `yaml:"overlay_enabled"`
	OverlayAddr    string `yaml:"overlay_addr" default:"localhost:52846"`
}

type fileBar struct {
	Foreground string `yaml:"foreground" default:"#8AE234"`
	Background string `yaml:"background" default:"#3A3A3A"`
	Width      int    `yaml:"width" default:"30"`
	ShowTime   *bool  `yaml:"show_time" default:"true"`
}

type fileAlbumArt struct {
	Enabled *bool `yaml:"enabled" default:"true"`
	Size    int   `yaml:"size" default:"80"`
}

type fileButtons struct {
	Color     string `yaml:"color" default:"#D3D7CF"`
	PlayIcon  string `yaml:"play_icon" default:"▶"`
	PauseIcon string `yaml:"pause_icon" default:"⏸"`
	NextIcon  string `yaml:"next_icon" default:"⏭"`
	PrevIcon  string `yaml:"prev_icon" default:"⏮"`
}

// fileSettingsV1 is the retired flat schema, kept only to migrate old files.
type fileSettingsV1 struct {
	Version        int    `yaml:"version"`
	Source         string `yaml:"source"`
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	Foreground     string `yaml:"foreground"`
	Background     string `yaml:"background"`
	BarWidth       int    `yaml:"bar_width"`
	ShowAlbumArt   *bool  `yaml:"show_album_art"`
	AlbumArtSize   int    `yaml:"album_art_size"`
}

// Path returns the settings file location. AUDIOBAND_CONFIG overrides the
// platform default.
func Path() (string, error) {
	if p := os.Getenv("AUDIOBAND_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "audio-band", "config.yaml"), nil
}

// Default returns settings with every field at its default value.
func Default() *Settings {
	f := &fileSettings{Version: Version}
	// Tag parsing only fails on malformed default tags, which is a
	// programming error.
	if err := defaults.Set(f); err != nil {
		panic(err)
	}
	return f.apply()
}

// Load reads, defaults and, if needed, migrates the settings file. A missing
// file yields defaults. A v1 file is upgraded in memory and written back so
// the migration runs once.
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}

	var versionOnly struct {
		Version int `yaml:"version"`
	}
	if err := yaml.Unmarshal(raw, &versionOnly); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}

	var f fileSettings
	switch versionOnly.Version {
	case Version:
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("settings: parse %s: %w", path, err)
		}
	case 0, 1:
		var v1 fileSettingsV1
		if err := yaml.Unmarshal(raw, &v1); err != nil {
			return nil, fmt.Errorf("settings: parse %s: %w", path, err)
		}
		f = migrateV1(v1)
		logger.L().Sugar().Infow("migrated settings file", "path", path, "from", 1, "to", Version)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, versionOnly.Version)
	}

	if err := defaults.Set(&f); err != nil {
		return nil, err
	}
	f.Version = Version
	s := f.apply()

	if versionOnly.Version != Version {
		if err := Save(path, s); err != nil {
			logger.L().Sugar().Warnw("could not write back migrated settings", "path", path, "error", err)
		}
	}
	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s *Settings) error {
	f := snapshot(s)
	raw, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: create config dir: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

func migrateV1(v1 fileSettingsV1) fileSettings {
	f := fileSettings{Version: Version}
	f.General.Source = v1.Source
	f.General.PollIntervalMS = v1.PollIntervalMS
	f.Bar.Foreground = v1.Foreground
	f.Bar.Background = v1.Background
	f.Bar.Width = v1.BarWidth
	f.AlbumArt.Enabled = v1.ShowAlbumArt
	f.AlbumArt.Size = v1.AlbumArtSize
	return f
}

// apply pours the on-disk shape into fresh live models.
func (f *fileSettings) apply() *Settings {
	s := &Settings{}
	s.General.SetSource(f.General.Source)
	s.General.SetPollInterval(time.Duration(f.General.PollIntervalMS) * time.Millisecond)
	s.General.SetOverlayEnabled(f.General.OverlayEnabled)
	s.General.SetOverlayAddr(f.General.OverlayAddr)

	s.Bar.SetForeground(f.Bar.Foreground)
	s.Bar.SetBackground(f.Bar.Background)
	s.Bar.SetWidth(f.Bar.Width)
	if f.Bar.ShowTime != nil {
		s.Bar.SetShowTime(*f.Bar.ShowTime)
	}

	if f.AlbumArt.Enabled != nil {
		s.AlbumArt.SetEnabled(*f.AlbumArt.Enabled)
	}
	s.AlbumArt.SetSize(f.AlbumArt.Size)

	s.Buttons.SetColor(f.Buttons.Color)
	s.Buttons.SetPlayIcon(f.Buttons.PlayIcon)
	s.Buttons.SetPauseIcon(f.Buttons.PauseIcon)
	s.Buttons.SetNextIcon(f.Buttons.NextIcon)
	s.Buttons.SetPrevIcon(f.Buttons.PrevIcon)
	return s
}

// snapshot captures the live models back into the on-disk shape.
func snapshot(s *Settings) *fileSettings {
	showTime := s.Bar.ShowTime()
	artEnabled := s.AlbumArt.Enabled()
	return &fileSettings{
		Version: Version,
		General: fileGeneral{
			Source:         s.General.Source(),
			PollIntervalMS: int(s.General.PollInterval() / time.Millisecond),
			OverlayEnabled: s.General.OverlayEnabled(),
			OverlayAddr:    s.General.OverlayAddr(),
		},
		Bar: fileBar{
			Foreground: s.Bar.Foreground(),
			Background: s.Bar.Background(),
			Width:      s.Bar.Width(),
			ShowTime:   &showTime,
		},
		AlbumArt: fileAlbumArt{
			Enabled: &artEnabled,
			Size:    s.AlbumArt.Size(),
		},
		Buttons: fileButtons{
			Color:     s.Buttons.Color(),
			PlayIcon:  s.Buttons.PlayIcon(),
			PauseIcon: s.Buttons.PauseIcon(),
			NextIcon:  s.Buttons.NextIcon(),
			PrevIcon:  s.Buttons.PrevIcon(),
		},
	}
}
