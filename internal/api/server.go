package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/chapool/tron-custody/internal/config"
	"github/chapool/tron-custody/internal/wallet"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// WalletService is the wallet core surface consumed by the handlers.
type WalletService = wallet.Service

type Router struct {
	Routes      []*echo.Route
	Root        *echo.Group
	Management  *echo.Group
	APIV1Wallet *echo.Group
}

// Server is a central struct keeping all the dependencies.
type Server struct {
	Config config.Server
	DB     *sql.DB
	Echo   *echo.Echo
	Router *Router
	Clock  time2.Clock
	Wallet WalletService
}

func NewServer(config config.Server) *Server {
	return &Server{
		Config: config,
		Clock:  time2.DefaultClock,
	}
}

// InitNewServer builds a fully wired server: database pool, wallet core
// and HTTP routes. Configuration errors surface here, before listening.
func InitNewServer(cfg config.Server) (*Server, error) {
	s := NewServer(cfg)

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.DB = db

	walletService, err := wallet.InitService(cfg, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize wallet service: %w", err)
	}
	s.Wallet = walletService

	InitRouter(s)

	return s, nil
}

func (s *Server) Ready() bool {
	return s.DB != nil && s.Echo != nil && s.Router != nil && s.Wallet != nil
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Wallet != nil {
		log.Debug().Msg("Stopping wallet service")
		s.Wallet.Stop()
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
