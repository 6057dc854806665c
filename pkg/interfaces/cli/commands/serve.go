package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
	"github.com/vsinha/prodtrack/pkg/interfaces/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server. Workspace changes are mirrored to the configured store and pushed to websocket clients.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	hub := api.NewHub(s.logger)
	go hub.Run(ctx)
	if err := s.events.Subscribe(events.AllEventTypes, hub); err != nil {
		return fmt.Errorf("failed to subscribe websocket hub: %w", err)
	}

	server := api.NewServer(cfg, s.ws, hub, s.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		s.logger.Info("server stopped", zap.Int("port", cfg.Server.Port))
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
