// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"taskflow/internal/backend/rest"
	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/service"
)

func main() {
	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (service.Service, error) {
		client, err := rest.New(cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
