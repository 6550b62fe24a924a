package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	root := newRootCommand(wiring)
	root.SetArgs(os.Args[1:])
	cmd, err := root.ExecuteContextC(ctx)
	label := root.Name()
	if cmd != nil {
		label = cmd.Name()
	}
	exitOnErr(label, err, wiring.stderr)
}
