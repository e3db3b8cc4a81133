package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depdot/internal/cli"
	"github.com/matzehuels/depdot/pkg/errors"
	_ "github.com/matzehuels/depdot/pkg/xmltree/backends"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.New(os.Stderr, log.InfoLevel).RootCommand()
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return
	case stderrors.Is(err, context.Canceled):
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		os.Exit(errors.ExitCode(err))
	}
}
