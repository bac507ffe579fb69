package settings

import "github.com/chippleh1392/audio-band/internal/binding"

// Field tables, built once at package load and read-only afterwards.

var generalAccessor = func() *binding.Accessor[General] {
	a := binding.NewAccessor[General]()
	binding.Field(a, "Source", (*General).Source, (*General).SetSource)
	binding.Field(a, "PollInterval", (*General).PollInterval, (*General).SetPollInterval)
	binding.Field(a, "OverlayEnabled", (*General).OverlayEnabled, (*General).SetOverlayEnabled)
	binding.Field(a, "OverlayAddr", (*General).OverlayAddr, (*General).SetOverlayAddr)
	return a
}()

var barAccessor = func() *binding.Accessor[Bar] {
	a := binding.NewAccessor[Bar]()
	binding.Field(a, "Foreground", (*Bar).Foreground, (*Bar).SetForeground)
	binding.Field(a, "Background", (*Bar).Background, (*Bar).SetBackground)
	binding.Field(a, "Width", (*Bar).Width, (*Bar).SetWidth)
	binding.Field(a, "ShowTime", (*Bar).ShowTime, (*Bar).SetShowTime)
	return a
}()

var albumArtAccessor = func() *binding.Accessor[AlbumArt] {
	a := binding.NewAccessor[AlbumArt]()
	binding.Field(a, "Enabled", (*AlbumArt).Enabled, (*AlbumArt).SetEnabled)
	binding.Field(a, "Size", (*AlbumArt).Size, (*AlbumArt).SetSize)
	return a
}()

var buttonsAccessor = func() *binding.Accessor[Buttons] {
	a := binding.NewAccessor[Buttons]()
	binding.Field(a, "Color", (*Buttons).Color, (*Buttons).SetColor)
	binding.Field(a, "PlayIcon", (*Buttons).PlayIcon, (*Buttons).SetPlayIcon)
	binding.Field(a, "PauseIcon", (*Buttons).PauseIcon, (*Buttons).SetPauseIcon)
	binding.Field(a, "NextIcon", (*Buttons).NextIcon, (*Buttons).SetNextIcon)
	binding.Field(a, "PrevIcon", (*Buttons).PrevIcon, (*Buttons).SetPrevIcon)
	return a
}()
