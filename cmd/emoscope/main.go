// Command emoscope classifies the emotion of each line of text.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/emoscope"
)

// Exit codes.
const (
	ExitError          = 1
	ExitModelLoad      = 3
	ExitClassification = 4
)

// version is set by the linker.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case emoscope.IsModelLoadError(err):
		return ExitModelLoad
	case emoscope.IsClassificationError(err):
		return ExitClassification
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return ExitError
	}
}
