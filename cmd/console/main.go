package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

// Exit codes for console commands.
const (
	ExitCodeSuccess      = 0
	ExitCodeError        = 1
	ExitCodeAuthRequired = 2
	ExitCodeCrashed      = 3
)

var errNotSignedIn = apperrors.ErrNotAuthenticated

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return guard(stderr, func() int {
		a := &app{in: stdin, out: stdout, errOut: stderr}
		defer a.close()

		root := newRootCmd(a)
		root.SetArgs(args)
		err := root.ExecuteContext(ctx)
		a.reportSlow()
		if err != nil {
			fmt.Fprintln(stderr, text.FgRed.Sprint("Error: ")+userMessage(err))
			return exitCode(err)
		}
		return ExitCodeSuccess
	})
}

// guard turns a panic into a short message asking the user to re-run the
// command. Nothing is retried automatically.
func guard(stderr io.Writer, fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("console crashed")
			fmt.Fprintln(stderr, text.FgRed.Sprint("Something went wrong.")+" Your session is unchanged, re-run the command to try again.")
			code = ExitCodeCrashed
		}
	}()
	return fn()
}

func exitCode(err error) int {
	if apperrors.Is(err, errNotSignedIn) || apperrors.Is(err, apperrors.ErrSessionExpired) {
		return ExitCodeAuthRequired
	}
	return ExitCodeError
}

func userMessage(err error) string {
	var fe apperrors.FieldErrors
	switch {
	case apperrors.Is(err, errNotSignedIn):
		return "not signed in, run `console login` first"
	case apperrors.Is(err, apperrors.ErrSessionExpired):
		return "session expired, run `console login` again"
	case apperrors.Is(err, context.Canceled):
		return "interrupted, the stored session is unchanged"
	case apperrors.As(err, &fe):
		return fe.Error()
	case api.IsTimeout(err):
		return "request timed out"
	case api.IsNetwork(err):
		return "could not reach the backend"
	}
	return api.Message(err, err.Error())
}
