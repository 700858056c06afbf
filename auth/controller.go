package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/jrsteele09/isp-console/session"
	"github.com/jrsteele09/isp-console/tokenstore"
	"github.com/jrsteele09/isp-console/users"
)

const defaultStartupDelay = 100 * time.Millisecond

// Controller is the only writer of the token store and the session state.
// It drives login, startup verification, refresh and logout, and is the
// pipeline's SessionHandler.
type Controller struct {
	client       *api.Client
	tokens       *tokenstore.Store
	state        *session.Container
	navigator    Navigator
	startupDelay time.Duration
	flights      singleflight.Group
}

var _ api.SessionHandler = (*Controller)(nil)

type ControllerOption func(*Controller)

func WithNavigator(n Navigator) ControllerOption {
	return func(c *Controller) {
		c.navigator = n
	}
}

// WithStartupDelay sets how long VerifyOnStartup waits before reading tokens.
func WithStartupDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.startupDelay = d
	}
}

// NewController wires the controller and registers it with client as the
// session handler.
func NewController(client *api.Client, tokens *tokenstore.Store, state *session.Container, options ...ControllerOption) (*Controller, error) {
	if client == nil {
		return nil, errors.New("[NewController] api client is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewController] token store is required")
	}
	if state == nil {
		return nil, errors.New("[NewController] session container is required")
	}

	c := &Controller{
		client:       client,
		tokens:       tokens,
		state:        state,
		navigator:    NavigatorFunc(func() {}),
		startupDelay: defaultStartupDelay,
	}
	for _, option := range options {
		option(c)
	}
	client.SetSessionHandler(c)
	return c, nil
}

func (c *Controller) State() session.State {
	return c.state.State()
}

// Login exchanges credentials for a token pair and the session user.
func (c *Controller) Login(ctx context.Context, creds Credentials) error {
	if err := ValidateCredentials(creds); err != nil {
		return err
	}

	c.state.Dispatch(session.Start())

	var resp authResponse
	err := c.client.Do(ctx, api.Request{
		Method:    http.MethodPost,
		Path:      api.AuthLogin,
		Body:      creds,
		Anonymous: true,
		NoRefresh: true,
	}, &resp)
	if api.IsCancelled(err) {
		// a newer login owns the state now
		return err
	}
	if err != nil {
		c.state.Dispatch(session.Failure(api.Message(err, MsgLoginFailed)))
		return errors.Wrap(err, "[Controller.Login]")
	}

	pair := resp.pair()
	if pair.Access == "" {
		c.state.Dispatch(session.Failure(MsgLoginFailed))
		return errors.Wrap(apperrors.ErrInvalidToken, "[Controller.Login] no access token in response")
	}
	if err := c.tokens.Save(pair, resp.Data.RememberMe || creds.RememberMe); err != nil {
		c.state.Dispatch(session.Failure(MsgLoginFailed))
		return errors.Wrap(err, "[Controller.Login]")
	}

	c.state.Dispatch(session.Success(resp.user()))
	log.Info().Str("login_id", creds.LoginID).Msg("signed in")
	return nil
}

// VerifyOnStartup checks persisted tokens against the backend once per
// process. Concurrent calls share one verification. AuthChecked is always set
// when it returns.
func (c *Controller) VerifyOnStartup(ctx context.Context) error {
	if c.state.State().AuthChecked {
		return nil
	}
	_, err, _ := c.flights.Do("verify", func() (any, error) {
		if c.state.State().AuthChecked {
			return nil, nil
		}
		return nil, c.verify(ctx)
	})
	return err
}

func (c *Controller) verify(ctx context.Context) error {
	defer c.state.Dispatch(session.Checked())

	if c.startupDelay > 0 {
		timer := time.NewTimer(c.startupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}

	pair, err := c.tokens.Read()
	if err != nil {
		return errors.Wrap(err, "[Controller.VerifyOnStartup]")
	}
	if pair == nil {
		return nil
	}

	var resp authResponse
	err = c.client.Do(ctx, api.Request{Method: http.MethodPost, Path: api.AuthVerify}, &resp)
	switch {
	case err == nil:
		c.state.Dispatch(session.Success(resp.user()))
		return nil
	case api.IsCancelled(err):
		return nil
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		// the caller gave up; the stored session was not judged
		return errors.Wrap(err, "[Controller.VerifyOnStartup] interrupted")
	}

	log.Info().Err(err).Msg("stored session rejected")
	if clearErr := c.tokens.Clear(); clearErr != nil {
		log.Err(clearErr).Msg("clearing tokens after failed verification")
	}
	c.state.Dispatch(session.Failure(MsgSessionExpired))
	return fmt.Errorf("[Controller.VerifyOnStartup] %w: %w", apperrors.ErrSessionExpired, err)
}

// RefreshToken exchanges the refresh token for a new pair. Any failure ends
// the session through Logout.
func (c *Controller) RefreshToken(ctx context.Context) error {
	if _, err := c.RefreshAccessToken(ctx); err != nil {
		if logoutErr := c.Logout(ctx, false); logoutErr != nil {
			log.Err(logoutErr).Msg("logout after failed refresh")
		}
		c.state.Dispatch(session.Failure(MsgSessionExpired))
		return fmt.Errorf("[Controller.RefreshToken] %w: %w", apperrors.ErrSessionExpired, err)
	}
	return nil
}

// RefreshAccessToken performs the refresh exchange and persists the result,
// keeping the known user. It does not end the session on failure.
func (c *Controller) RefreshAccessToken(ctx context.Context) (string, error) {
	current, err := c.tokens.Read()
	if err != nil {
		return "", errors.Wrap(err, "[Controller.RefreshAccessToken]")
	}
	if current == nil || current.Refresh == "" {
		return "", apperrors.ErrNoRefreshToken
	}

	log.Info().Msg("refreshing access token")
	var resp authResponse
	err = c.client.Do(ctx, api.Request{
		Method:    http.MethodPost,
		Path:      api.AuthRefresh,
		Body:      refreshRequest{RefreshToken: current.Refresh},
		Anonymous: true,
		NoRefresh: true,
	}, &resp)
	if err != nil {
		return "", errors.Wrap(err, "[Controller.RefreshAccessToken]")
	}

	next := resp.pair()
	if next.Access == "" {
		return "", errors.Wrap(apperrors.ErrInvalidToken, "[Controller.RefreshAccessToken] no access token in response")
	}
	if next.Refresh == "" {
		next.Refresh = current.Refresh
	}
	// the remember flag is left as it is
	if err := c.tokens.Save(next, false); err != nil {
		return "", errors.Wrap(err, "[Controller.RefreshAccessToken]")
	}

	if user := c.state.State().User; user != nil {
		c.state.Dispatch(session.Success(user))
	}
	return next.Access, nil
}

// Logout makes a best-effort backend logout and then resets the client
// unconditionally. Calling it again on an empty store is harmless.
func (c *Controller) Logout(ctx context.Context, allDevices bool) error {
	pair, err := c.tokens.Read()
	if err != nil {
		log.Err(err).Msg("reading tokens for logout")
	}
	if pair != nil && pair.Refresh != "" {
		err := c.client.Do(ctx, api.Request{
			Method:    http.MethodPost,
			Path:      api.AuthLogout,
			Body:      logoutRequest{RefreshToken: pair.Refresh, LogoutAllDevices: allDevices},
			NoRefresh: true,
		}, nil)
		if err != nil {
			log.Warn().Err(err).Msg("backend logout failed, clearing local session")
		}
	}
	return c.reset()
}

// EndSession is the pipeline's termination hook after a failed refresh. It
// skips the backend call since the refresh token was just rejected.
func (c *Controller) EndSession(_ context.Context) {
	if err := c.reset(); err != nil {
		log.Err(err).Msg("ending session")
	}
}

func (c *Controller) reset() error {
	err := c.tokens.Clear()
	c.state.Dispatch(session.Clear())
	c.navigator.NavigateToLogin()
	if err != nil {
		return errors.Wrap(err, "[Controller.reset]")
	}
	return nil
}

// UpdateUser replaces the session user after a profile edit.
func (c *Controller) UpdateUser(user *users.User) {
	c.state.Dispatch(session.UpdateUser(user))
}

// ClearError dismisses the displayed session error.
func (c *Controller) ClearError() {
	c.state.Dispatch(session.ClearError())
}
