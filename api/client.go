package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/isp-console/tokenstore"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultSlowThreshold = 2 * time.Second
	refreshTimeout       = 15 * time.Second
	requestIDHeader      = "X-Request-ID"
)

// TokenSource supplies the persisted token pair.
type TokenSource interface {
	Read() (*tokenstore.Pair, error)
}

// SessionHandler owns the session lifecycle on behalf of the pipeline.
// RefreshAccessToken exchanges the refresh token and persists the result.
// EndSession clears all client state and returns the user to login.
type SessionHandler interface {
	RefreshAccessToken(ctx context.Context) (string, error)
	EndSession(ctx context.Context)
}

// Client is the single path for outbound backend calls.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	tokens        TokenSource
	timeout       time.Duration
	slowThreshold time.Duration
	retry         RetryPolicy
	slowLog       *SlowLog
	nowFunc       func() time.Time

	inflight *inflightRegistry
	flights  singleflight.Group

	sessionMu sync.RWMutex
	session   SessionHandler
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithSlowThreshold(d time.Duration) ClientOption {
	return func(c *Client) {
		c.slowThreshold = d
	}
}

func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

func WithSlowLog(l *SlowLog) ClientOption {
	return func(c *Client) {
		c.slowLog = l
	}
}

func WithSessionHandler(h SessionHandler) ClientOption {
	return func(c *Client) {
		c.session = h
	}
}

// WithNowTime replaces the clock used for request timing.
func WithNowTime(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFunc = now
	}
}

func New(baseURL string, tokens TokenSource, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] base url is required")
	}
	if tokens == nil {
		return nil, errors.New("[api.New] token source is required")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("[api.New] invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[api.New] base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:       u,
		httpClient:    http.DefaultClient,
		tokens:        tokens,
		timeout:       defaultTimeout,
		slowThreshold: defaultSlowThreshold,
		retry:         DefaultRetryPolicy(),
		slowLog:       NewSlowLog(),
		nowFunc:       time.Now,
		inflight:      newInflightRegistry(),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// SetSessionHandler attaches the handler after construction. The handler
// normally depends on the client, so it cannot always be passed to New.
func (c *Client) SetSessionHandler(h SessionHandler) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	c.session = h
}

func (c *Client) sessionHandler() SessionHandler {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	return c.session
}

func (c *Client) SlowLog() *SlowLog {
	return c.slowLog
}

// InFlight returns the number of registered outstanding requests.
func (c *Client) InFlight() int {
	return c.inflight.len()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do sends req and decodes a successful JSON body into out, which may be nil.
// A *[]byte out receives the body undecoded.
// A newer identical request cancels this one with ErrCancelled.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	ctx, done := c.inflight.begin(ctx, req.dedupKey())
	defer done()

	start := c.nowFunc()
	resp, err := c.send(ctx, req)
	c.observe(req, resp, err, c.nowFunc().Sub(start))
	if err != nil {
		return err
	}

	if raw, ok := out.(*[]byte); ok {
		*raw = resp.body
		return nil
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("[api.Do] decoding %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

type response struct {
	status int
	body   []byte
}

// send runs the retry loop and, on a first 401, a single refresh and replay.
func (c *Client) send(ctx context.Context, req Request) (*response, error) {
	resp, err := c.sendWithRetry(ctx, req)
	if !IsUnauthorized(err) || req.NoRefresh || authAttempts(ctx) > 0 {
		return resp, err
	}

	session := c.sessionHandler()
	if session == nil {
		return resp, err
	}

	token, refreshErr := c.refresh(ctx, session)
	if refreshErr != nil {
		return resp, err
	}
	replayCtx := withBearer(withAuthAttempt(ctx), token)
	return c.sendWithRetry(replayCtx, req)
}

// refresh coalesces concurrent refreshes into one exchange. A failed
// exchange ends the session once for all waiting callers.
func (c *Client) refresh(ctx context.Context, session SessionHandler) (string, error) {
	v, err, _ := c.flights.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(withAuthAttempt(context.WithoutCancel(ctx)), refreshTimeout)
		defer cancel()

		token, err := session.RefreshAccessToken(rctx)
		if err != nil {
			log.Warn().Err(err).Msg("token refresh failed, ending session")
			session.EndSession(rctx)
			return "", err
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) sendWithRetry(ctx context.Context, req Request) (*response, error) {
	operation := func() (*response, error) {
		resp, err := c.attempt(ctx, req)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.retry.backOff()),
		backoff.WithMaxTries(c.retry.attempts(req.Method)),
		backoff.WithMaxElapsedTime(0),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return resp, err
}

// attempt performs exactly one HTTP exchange under the per-call timeout.
func (c *Client) attempt(ctx context.Context, req Request) (*response, error) {
	actx, cancel := context.WithTimeoutCause(ctx, c.timeout, ErrTimeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(actx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(ctx, actx, req, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.transportError(ctx, actx, req, err)
	}

	resp := &response{status: httpResp.StatusCode, body: body}
	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, newStatusError(req.Method, req.Path, httpResp.StatusCode, body)
	}
	return resp, nil
}

// transportError separates supersession and caller cancellation from the
// per-call timeout and from genuine network failure.
func (c *Client) transportError(ctx, actx context.Context, req Request, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	if errors.Is(context.Cause(actx), ErrTimeout) {
		return fmt.Errorf("%s %s after %s: %w", req.Method, req.Path, c.timeout, ErrTimeout)
	}
	return &Error{Method: req.Method, Path: req.Path, Message: "Network error", Err: err}
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(req.Path)
	if strings.HasSuffix(req.Path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("[api.Do] encoding %s %s: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("[api.Do] building %s %s: %w", req.Method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.Anonymous {
		c.attachBearer(ctx, httpReq)
	}
	return httpReq, nil
}

func (c *Client) attachBearer(ctx context.Context, httpReq *http.Request) {
	if token, ok := bearerOverride(ctx); ok {
		tokenstore.Pair{Access: token}.OAuth2().SetAuthHeader(httpReq)
		return
	}
	pair, err := c.tokens.Read()
	if err != nil {
		log.Warn().Err(err).Msg("reading access token")
		return
	}
	if pair != nil && pair.Access != "" {
		pair.OAuth2().SetAuthHeader(httpReq)
	}
}

// observe logs the outcome and records slow requests.
func (c *Client) observe(req Request, resp *response, err error, elapsed time.Duration) {
	status := StatusCode(err)
	if resp != nil && err == nil {
		status = resp.status
	}

	if elapsed > c.slowThreshold {
		c.slowLog.Record(SlowRequest{
			Method:    req.Method,
			Path:      req.Path,
			Status:    status,
			Duration:  elapsed,
			Timestamp: c.nowFunc(),
		})
		log.Warn().Str("method", req.Method).Str("path", req.Path).Int("status", status).
			Dur("elapsed", elapsed).Msg("slow request")
	}

	switch {
	case err == nil:
		log.Debug().Str("method", req.Method).Str("path", req.Path).Int("status", status).
			Dur("elapsed", elapsed).Msg("request complete")
	case IsCancelled(err):
		log.Debug().Str("method", req.Method).Str("path", req.Path).Msg("request superseded")
	case IsServerError(err):
		log.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Int("status", status).
			Msg("server error")
	default:
		log.Debug().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("request failed")
	}
}
