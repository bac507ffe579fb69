package settings

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chippleh1392/audio-band/internal/binding"
	"github.com/chippleh1392/audio-band/internal/logger"
)

// Also-notify tables, one per view-model type, shared by every instance.
var (
	barDependents = binding.Dependents{
		"Foreground": {"Swatch"},
		"Background": {"Swatch"},
	}
	buttonsDependents = binding.Dependents{
		"Color":     {"Preview"},
		"PlayIcon":  {"Preview"},
		"PauseIcon": {"Preview"},
		"NextIcon":  {"Preview"},
		"PrevIcon":  {"Preview"},
	}
)

// GeneralViewModel edits the General section.
type GeneralViewModel struct {
	*binding.ViewModel[General]
}

func NewGeneralViewModel(m *General) (*GeneralViewModel, error) {
	vm, err := binding.New(m, generalAccessor, binding.Config{
		Bindings: binding.Bindings{
			"Source":         "Source",
			"PollInterval":   "PollInterval",
			"OverlayEnabled": "OverlayEnabled",
			"OverlayAddr":    "OverlayAddr",
		},
		Logger: logger.L(),
	})
	if err != nil {
		return nil, err
	}
	return &GeneralViewModel{ViewModel: vm}, nil
}

// BarViewModel edits the progress bar section. Swatch is a derived property:
// a short sample rendered in the current colors, recomputed whenever either
// color changes.
type BarViewModel struct {
	*binding.ViewModel[Bar]
	swatch string
}

func NewBarViewModel(m *Bar) (*BarViewModel, error) {
	vm, err := binding.New(m, barAccessor, binding.Config{
		Bindings: binding.Bindings{
			"Foreground": "Foreground",
			"Background": "Background",
			"Width":      "Width",
			"ShowTime":   "ShowTime",
		},
		Dependents: barDependents,
		Logger:     logger.L(),
	})
	if err != nil {
		return nil, err
	}
	b := &BarViewModel{ViewModel: vm}
	vm.SetHook(func(property string) {
		if property == "Foreground" || property == "Background" {
			b.refreshSwatch()
		}
	})
	b.refreshSwatch()
	return b, nil
}

func (vm *BarViewModel) Swatch() string { return vm.swatch }

func (vm *BarViewModel) refreshSwatch() {
	m := vm.Model()
	vm.swatch = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.Foreground())).
		Background(lipgloss.Color(m.Background())).
		Render("▰▰▰▱▱")
}

// AlbumArtViewModel edits the album art section.
type AlbumArtViewModel struct {
	*binding.ViewModel[AlbumArt]
}

func NewAlbumArtViewModel(m *AlbumArt) (*AlbumArtViewModel, error) {
	vm, err := binding.New(m, albumArtAccessor, binding.Config{
		Bindings: binding.Bindings{
			"Enabled": "Enabled",
			"Size":    "Size",
		},
		Logger: logger.L(),
	})
	if err != nil {
		return nil, err
	}
	return &AlbumArtViewModel{ViewModel: vm}, nil
}

// ButtonsViewModel edits the transport buttons. Preview shows the four
// glyphs in the configured color and follows every icon or color edit.
type ButtonsViewModel struct {
	*binding.ViewModel[Buttons]
	preview string
}

func NewButtonsViewModel(m *Buttons) (*ButtonsViewModel, error) {
	vm, err := binding.New(m, buttonsAccessor, binding.Config{
		Bindings: binding.Bindings{
			"Color":     "Color",
			"PlayIcon":  "PlayIcon",
			"PauseIcon": "PauseIcon",
			"NextIcon":  "NextIcon",
			"PrevIcon":  "PrevIcon",
		},
		Dependents: buttonsDependents,
		Logger:     logger.L(),
	})
	if err != nil {
		return nil, err
	}
	b := &ButtonsViewModel{ViewModel: vm}
	vm.SetHook(func(string) { b.refreshPreview() })
	b.refreshPreview()
	return b, nil
}

func (vm *ButtonsViewModel) Preview() string { return vm.preview }

func (vm *ButtonsViewModel) refreshPreview() {
	m := vm.Model()
	vm.preview = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.Color())).
		Render(m.PrevIcon() + " " + m.PlayIcon() + m.PauseIcon() + " " + m.NextIcon())
}

// ViewModels bundles one view model per settings section so the editor can
// drive a whole edit transaction at once.
type ViewModels struct {
	General  *GeneralViewModel
	Bar      *BarViewModel
	AlbumArt *AlbumArtViewModel
	Buttons  *ButtonsViewModel
}

func NewViewModels(s *Settings) (*ViewModels, error) {
	general, err := NewGeneralViewModel(&s.General)
	if err != nil {
		return nil, err
	}
	bar, err := NewBarViewModel(&s.Bar)
	if err != nil {
		return nil, err
	}
	art, err := NewAlbumArtViewModel(&s.AlbumArt)
	if err != nil {
		return nil, err
	}
	buttons, err := NewButtonsViewModel(&s.Buttons)
	if err != nil {
		return nil, err
	}
	return &ViewModels{General: general, Bar: bar, AlbumArt: art, Buttons: buttons}, nil
}

// BeginEdit opens an edit transaction on every section.
func (v *ViewModels) BeginEdit() {
	v.General.BeginEdit()
	v.Bar.BeginEdit()
	v.AlbumArt.BeginEdit()
	v.Buttons.BeginEdit()
}

// CancelEdit rolls every section back to its pre-Begin state.
func (v *ViewModels) CancelEdit() {
	v.General.CancelEdit()
	v.Bar.CancelEdit()
	v.AlbumArt.CancelEdit()
	v.Buttons.CancelEdit()
}

// EndEdit commits every section.
func (v *ViewModels) EndEdit() {
	v.General.EndEdit()
	v.Bar.EndEdit()
	v.AlbumArt.EndEdit()
	v.Buttons.EndEdit()
}
