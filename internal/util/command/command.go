package command

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/config"
	"github/chapool/tron-custody/internal/util"
)

// NewSubcommandGroup groups subcommands under a parent that only prints
// its own usage.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes logging and a fully wired server, runs f and
// shuts the server down afterwards.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	InitLogger(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if errs := s.Shutdown(context.Background()); len(errs) > 0 {
			log.Error().Errs("errs", errs).Msg("Errors while shutting down server")
		}
	}()

	return f(ctx, s)
}

// InitLogger configures the global zerolog logger from config.
func InitLogger(cfg config.Server) {
	zerolog.SetGlobalLevel(util.LogLevelFromString(cfg.Logger.Level))

	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
