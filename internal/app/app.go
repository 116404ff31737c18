package app

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"helloeks/internal/config"
	"helloeks/internal/handler"
)

type App struct {
	cfg      *config.Config
	logger   *log.Logger
	server   *http.Server
	listener net.Listener
}

func New(cfg *config.Config, logger *log.Logger) *App {
	httpHandler := handler.NewHTTPHandler(cfg, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:     cfg.ListenAddress(),
			Handler:  httpHandler.Router(),
			ErrorLog: stdlog.New(logger.WithField("component", "server").WriterLevel(log.ErrorLevel), "", 0),
		},
	}
}

// Listen binds the configured address. There is no retry and no
// fallback port.
func (a *App) Listen() error {
	if a.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", a.server.Addr, err)
	}
	a.listener = listener
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (a *App) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Run serves until the server fails or ctx is done. Cancellation closes
// the server without draining in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if err := a.Listen(); err != nil {
		return err
	}

	a.logger.WithFields(log.Fields{
		"component": "server",
		"address":   a.listener.Addr().String(),
		"env":       a.cfg.EnvLabel,
	}).Info("http server listening")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		if err := a.server.Close(); err != nil {
			a.logger.WithFields(log.Fields{
				"component": "server",
				"error":     err,
			}).Error("http server close failed")
		}
		return nil
	})

	err := g.Wait()
	a.logger.WithField("component", "server").Info("http server stopped")
	return err
}
