package cli

import (
	"context"
	"io"
	"log/slog"

	"ctchen222/tictactoe-history/internal/config"
	"ctchen222/tictactoe-history/internal/events"
	"ctchen222/tictactoe-history/internal/logger"
	"ctchen222/tictactoe-history/internal/telemetry"

	"github.com/spf13/cobra"
)

var initTelemetry = telemetry.InitOtel

// app carries what the root command sets up for its subcommands.
type app struct {
	cfg      *config.Config
	shutdown telemetry.Shutdown
	recorder *events.Recorder
}

// publisher builds the event sink described by the config.
func (a *app) publisher() events.Publisher {
	a.recorder = events.NewRecorder(a.cfg.Events.History)
	if a.cfg.Events.DisableLog {
		return a.recorder
	}
	return events.MultiPublisher{a.recorder, events.LogPublisher{}}
}

// close flushes telemetry. It runs whether or not the command failed.
func (a *app) close(ctx context.Context) {
	if a.shutdown == nil {
		return
	}
	if err := a.shutdown(context.WithoutCancel(ctx)); err != nil {
		slog.Error("Error shutting down telemetry", "error", err)
	}
	a.shutdown = nil
}

// Root builds the command tree. The returned func must be called once Execute
// returns, so telemetry from failed commands is flushed too.
func Root(logOut io.Writer) (*cobra.Command, func(context.Context)) {
	a := &app{}

	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe with undo and replay",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flag("log-level").Changed {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			a.cfg = cfg

			logger.Init(cfg.Level(), logOut)

			a.shutdown, err = initTelemetry(cmd.Context(), cfg.Telemetry, cfg.Service)
			return err
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(Play(a))

	return root, a.close
}
