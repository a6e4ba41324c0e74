package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/myflix/internal/server"
	"github.com/urfave/cli/v3"
)

// DevServe runs the in-memory development backend until interrupted.
func (r *Runner) DevServe(ctx context.Context, cmd *cli.Command) error {
	config := r.config.Server
	if host := cmd.String("host"); host != "" {
		config.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Port = port
	}

	srv, err := server.New(config, r.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Serving the movie API on http://%s (ctrl+c to stop)\n", config.Addr())
	return srv.ListenAndServe(ctx)
}
