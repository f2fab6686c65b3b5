package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/sentinelmod/sentinel/internal/setup"
	"github.com/sentinelmod/sentinel/internal/worker/purge"
)

// WorkerLogDir specifies where worker log files are stored.
const WorkerLogDir = "logs/worker_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start background maintenance workers",
		Commands: []*cli.Command{
			{
				Name:  "purge",
				Usage: "Start the message history purge worker",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return runPurge(ctx)
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

func runPurge(ctx context.Context) error {
	app, err := setup.InitializeApp(ctx, WorkerLogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup(ctx)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	purge.New(app, app.Logger).Start(ctx)
	return nil
}
