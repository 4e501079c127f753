package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"vr-grab/internal/commands"
	"vr-grab/internal/env"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := commands.NewRegistry()
	registerRun(reg)
	registerConfig(reg)

	if err := reg.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, commands.ErrUsage) {
			fmt.Fprintln(os.Stderr, "usage: grabsim <command> [flags]")
			reg.PrintUsage(os.Stderr)
		}
		os.Exit(1)
	}
}
