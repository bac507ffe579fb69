package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Default()

	assert.Equal(t, "auto", s.General.Source())
	assert.Equal(t, time.Second, s.General.PollInterval())
	assert.False(t, s.General.OverlayEnabled())
	assert.Equal(t, "localhost:52846", s.General.OverlayAddr())
	assert.Equal(t, "#8AE234", s.Bar.Foreground())
	assert.Equal(t, 30, s.Bar.Width())
	assert.True(t, s.Bar.ShowTime())
	assert.True(t, s.AlbumArt.Enabled())
	assert.Equal(t, 80, s.AlbumArt.Size())
	assert.Equal(t, "▶", s.Buttons.PlayIcon())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", s.General.Source())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s := Default()
	s.General.SetSource("mpd")
	s.General.SetPollInterval(250 * time.Millisecond)
	s.Bar.SetForeground("#FF0000")
	s.Bar.SetShowTime(false)
	s.AlbumArt.SetEnabled(false)
	s.Buttons.SetPlayIcon(">")

	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mpd", loaded.General.Source())
	assert.Equal(t, 250*time.Millisecond, loaded.General.PollInterval())
	assert.Equal(t, "#FF0000", loaded.Bar.Foreground())
	assert.False(t, loaded.Bar.ShowTime())
	assert.False(t, loaded.AlbumArt.Enabled())
	assert.Equal(t, ">", loaded.Buttons.PlayIcon())
}

func TestLoadMigratesV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	v1 := `version: 1
source: mpris
poll_interval_ms: 500
foreground: "#123456"
show_album_art: false
album_art_size: 64
`
	require.NoError(t, os.WriteFile(path, []byte(v1), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mpris", s.General.Source())
	assert.Equal(t, 500*time.Millisecond, s.General.PollInterval())
	assert.Equal(t, "#123456", s.Bar.Foreground())
	// Field absent in v1: filled with its default.
	assert.Equal(t, "#3A3A3A", s.Bar.Background())
	assert.False(t, s.AlbumArt.Enabled())
	assert.Equal(t, 64, s.AlbumArt.Size())

	// The migrated file is written back as v2.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version: 2")
}

func TestLoadVersionlessFileTreatedAsV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: mpd\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mpd", s.General.Source())
}

func TestLoadUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("AUDIOBAND_CONFIG", "/tmp/custom.yaml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)
}
