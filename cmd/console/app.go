package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/auth"
	"github.com/jrsteele09/isp-console/internal/config"
	"github.com/jrsteele09/isp-console/internal/logging"
	"github.com/jrsteele09/isp-console/session"
	"github.com/jrsteele09/isp-console/storage"
	storagerepofake "github.com/jrsteele09/isp-console/storage/repofake"
	"github.com/jrsteele09/isp-console/storage/sqlite"
	"github.com/jrsteele09/isp-console/theme"
	"github.com/jrsteele09/isp-console/tokenstore"
)

const (
	slowLogTrimInterval = 5 * time.Minute
	slowReportSize      = 5
)

type globalFlags struct {
	output  string
	storage string
	dbPath  string
	baseURL string
	debug   bool
}

// app holds everything a command needs. It is built lazily so that commands
// such as version never touch storage or the network.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	flags  globalFlags

	cfg    config.Config
	repo   storage.Repo
	closer func() error
	stop   context.CancelFunc
	store  *tokenstore.Store
	state  *session.Container
	client *api.Client
	auth   *auth.Controller
}

func (a *app) renderer() renderer {
	return renderer{format: a.flags.output, out: a.out}
}

// open wires config, storage, the API client and the auth controller.
func (a *app) open(ctx context.Context) error {
	if a.auth != nil {
		return nil
	}
	if err := validateFormat(a.flags.output); err != nil {
		return err
	}

	a.cfg = config.New()
	level := a.cfg.GetLogLevel()
	if a.flags.debug {
		level = "debug"
	}
	logging.SetupWriter(a.errOut, a.cfg.GetEnv(), level)

	if err := a.openStorage(); err != nil {
		return err
	}
	a.store = tokenstore.New(a.repo)
	a.state = session.NewContainer()

	baseURL := a.flags.baseURL
	if baseURL == "" {
		baseURL = a.cfg.GetBaseURL()
	}
	client, err := api.New(baseURL, a.store,
		api.WithTimeout(a.cfg.GetRequestTimeout()),
		api.WithSlowThreshold(a.cfg.GetSlowRequestThreshold()),
		api.WithRetryPolicy(api.RetryPolicy{
			QueryAttempts:    a.cfg.GetQueryAttempts(),
			MutationAttempts: a.cfg.GetMutationAttempts(),
			InitialInterval:  api.DefaultRetryPolicy().InitialInterval,
			MaxInterval:      api.DefaultRetryPolicy().MaxInterval,
		}),
	)
	if err != nil {
		return err
	}
	a.client = client

	trimCtx, stop := context.WithCancel(ctx)
	a.stop = stop
	go client.SlowLog().Run(trimCtx, slowLogTrimInterval)

	a.auth, err = auth.NewController(client, a.store, a.state,
		auth.WithStartupDelay(a.cfg.GetStartupDelay()),
		auth.WithNavigator(auth.NavigatorFunc(func() {
			fmt.Fprintln(a.errOut, text.FgYellow.Sprint("Session ended.")+" Run `console login` to sign in again.")
		})),
	)
	return err
}

func (a *app) openStorage() error {
	driver := a.flags.storage
	if driver == "" {
		driver = a.cfg.GetStorageDriver()
	}
	switch driver {
	case "memory":
		a.repo = storagerepofake.NewFakeStorageRepo()
		a.closer = func() error { return nil }
		return nil
	case "sqlite":
		path := a.flags.dbPath
		if path == "" {
			path = a.cfg.GetStoragePath()
		}
		repo, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		a.repo = repo
		a.closer = repo.Close
		return nil
	}
	return fmt.Errorf("unknown storage driver %q: use sqlite or memory", driver)
}

func (a *app) close() {
	if a.stop != nil {
		a.stop()
	}
	if a.closer != nil {
		_ = a.closer()
	}
}

func (a *app) theme() *theme.Service {
	return theme.NewService(a.repo)
}

// requireSession restores the persisted session and fails with
// errNotSignedIn when it is anonymous.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.auth.VerifyOnStartup(ctx); err != nil {
		return err
	}
	if a.auth.State().Phase() != session.PhaseAuthenticated {
		return errNotSignedIn
	}
	return nil
}

// protected wraps a command body so it only runs with a verified session.
func (a *app) protected(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.requireSession(cmd.Context()); err != nil {
			return err
		}
		return run(cmd, args)
	}
}

// busy shows a spinner on interactive table output while fn runs.
func (a *app) busy(msg string, fn func() error) error {
	if a.flags.output != formatTable {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.errOut))
	s.Suffix = " " + msg
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// reportSlow prints the slowest requests of this run when --debug is set.
func (a *app) reportSlow() {
	if !a.flags.debug || a.client == nil {
		return
	}
	slowest := a.client.SlowLog().Slowest(slowReportSize)
	if len(slowest) == 0 {
		return
	}
	v := view{headers: []string{"method", "path", "status", "duration", "at"}, footer: "slow requests"}
	for _, r := range slowest {
		v.rows = append(v.rows, []any{r.Method, r.Path, r.Status, r.Duration.Round(time.Millisecond), r.Timestamp.Local().Format(time.TimeOnly)})
	}
	if err := (renderer{format: formatTable, out: a.errOut}).render(v); err != nil {
		log.Err(err).Msg("printing slow requests")
	}
}
