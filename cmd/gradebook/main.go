package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"gradebook/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(os.Stdin).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "[ОШИБКА] %s\n", cli.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
