// Package cmd wires the CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chippleh1392/audio-band/internal/logger"
	"github.com/chippleh1392/audio-band/internal/overlay"
	"github.com/chippleh1392/audio-band/internal/settings"
	"github.com/chippleh1392/audio-band/internal/source"
	"github.com/chippleh1392/audio-band/internal/ui"

	// Audio source adapters register themselves.
	_ "github.com/chippleh1392/audio-band/internal/source/local"
	_ "github.com/chippleh1392/audio-band/internal/source/mpdsrc"
	_ "github.com/chippleh1392/audio-band/internal/source/mpris"
)

var (
	flagConfig   string
	flagSource   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "audio-band",
	Short: "A taskbar-style terminal widget showing and controlling now-playing audio.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logger.Config{Level: flagLogLevel})

		cfg, path, err := loadSettings()
		if err != nil {
			return err
		}

		src, err := openSource(cfg)
		if err != nil {
			return err
		}
		defer src.Close()
		logger.S().Infow("audio source ready", "source", src.Name())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan source.Event, 16)
		go source.Watch(ctx, src, cfg.General.PollInterval(), events)

		uiEvents := events
		if cfg.General.OverlayEnabled() {
			widgetCh := make(chan source.Event, 16)
			overlayCh := make(chan source.Event, 16)
			go source.Tee(events, widgetCh, overlayCh)
			uiEvents = widgetCh

			srv := overlay.New(logger.L())
			go srv.Consume(overlayCh)
			go func() {
				if err := srv.ListenAndServe(ctx, cfg.General.OverlayAddr()); err != nil {
					logger.S().Errorw("overlay server failed", "error", err)
				}
			}()
		}

		m, err := ui.New(src, uiEvents, cfg, path)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file path")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "audio source adapter (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadSettings() (*settings.Settings, string, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = settings.Path()
		if err != nil {
			return nil, "", err
		}
	}
	cfg, err := settings.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func openSource(cfg *settings.Settings) (source.Source, error) {
	name := flagSource
	if name == "" {
		name = cfg.General.Source()
	}
	src, err := source.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open audio source %q: %w", name, err)
	}
	return src, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
