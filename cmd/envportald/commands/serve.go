package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hnrobert/envportal/internal/logger"
	"github.com/hnrobert/envportal/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the flows over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", getenvDefault("ENVPORTAL_LISTEN", ":14392"), "listen address")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("ENVPORTAL_SECRET"), "instance token secret (base64url or raw)")
	return cmd
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	if err := logger.Init(dataDir); err != nil {
		logger.Warn("File logging disabled: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		ListenAddr: listenAddr,
		SitePath:   sitePath,
		Secret:     secret,
		Flows:      registry,
	})
	logger.Info("envportal listening on %s (site config %s)", listenAddr, sitePath)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}
	return nil
}
