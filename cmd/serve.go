package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chippleh1392/audio-band/internal/logger"
	"github.com/chippleh1392/audio-band/internal/overlay"
	"github.com/chippleh1392/audio-band/internal/source"
)

// serveCmd runs only the websocket overlay, for setups where the
// browser overlay is wanted without the terminal widget.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser overlay server without the terminal widget.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logger.Config{Level: flagLogLevel})

		cfg, _, err := loadSettings()
		if err != nil {
			return err
		}

		src, err := openSource(cfg)
		if err != nil {
			return err
		}
		defer src.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events := make(chan source.Event, 16)
		go source.Watch(ctx, src, cfg.General.PollInterval(), events)

		srv := overlay.New(logger.L())
		go srv.Consume(events)

		logger.S().Infow("overlay server starting",
			"addr", cfg.General.OverlayAddr(), "source", src.Name())
		return srv.ListenAndServe(ctx, cfg.General.OverlayAddr())
	},
}
