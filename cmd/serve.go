package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	qhttp "churnpredict/http"
)

func (a *app) newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form, JSON API and websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.HTTP.Port = port
			}
			return a.serve(cmd)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides http.port)")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	// 1. Load model and schema once; the server never starts without them
	predictor, err := a.loadPredictor()
	if err != nil {
		return err
	}

	handler, err := qhttp.NewHandler(predictor, qhttp.HandlerOptions{
		Title:          a.cfg.UI.Title,
		Locale:         a.cfg.UI.Language(),
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
	}, a.logger)
	if err != nil {
		return err
	}

	// 2. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           a.cfg.HTTP.Port,
		Timeout:        a.cfg.HTTP.Timeout,
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:   a.cfg.HTTP.MaxBodyBytes,
	}, handler, a.logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 3. Handle graceful shutdown
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Stop(); err != nil {
		return err
	}
	return <-errCh
}
