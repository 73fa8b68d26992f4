package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/teranos/cronstorm/cmd/cronstorm/commands"
	"github.com/teranos/cronstorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	root := commands.NewRootCmd(&commands.App{})
	err := root.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
