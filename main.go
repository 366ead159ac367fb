package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/convertwithmoss/internal/cli"
)

func main() {
	setupCleanupOnExit()

	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupCleanupOnExit mirrors the teacher's signal handling: a Ctrl-C,
// SIGTERM or SIGQUIT exits the process at once with status 0; a file
// being written at that moment is neither completed nor removed.
// The pipeline itself has no external process to tear down,
// so unlike the teacher there is no Cleanup() call here.
func setupCleanupOnExit() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-c
		os.Exit(0)
	}()
}
