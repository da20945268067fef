package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/headsup/internal/strategy"
)

// AgentCmd serves the check/call agent so remote seats can be exercised
// without a learned model.
type AgentCmd struct {
	Addr string `default:"localhost:8765" help:"Listen address"`
}

func (cmd *AgentCmd) Run(g *Globals) error {
	logger := g.Logger()

	srv := &http.Server{
		Addr:              cmd.Addr,
		Handler:           strategy.NewAgentHandler(strategy.PassiveAgent, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Agent listening", "addr", "ws://"+cmd.Addr+"/")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down agent")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
