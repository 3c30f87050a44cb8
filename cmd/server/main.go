package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"apidocs/internal/apidoc"
	"apidocs/internal/app"
	"apidocs/internal/logging"
)

const (
	exitOK = iota
	exitFailure
	exitLoad
	exitBind
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logging.Errorf("%v", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var loadErr *apidoc.LoadError
	var bindErr *app.BindError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &loadErr):
		return exitLoad
	case errors.As(err, &bindErr):
		return exitBind
	default:
		return exitFailure
	}
}
