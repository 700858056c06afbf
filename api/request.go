package api

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes one outbound call. Values are copied, never mutated, as
// they move through the pipeline.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Anonymous requests never carry the bearer token.
	Anonymous bool
	// NoRefresh disables the refresh-and-replay path on 401. Auth endpoints
	// set it so that a failed refresh cannot trigger another refresh.
	NoRefresh bool
}

// dedupKey identifies a request for duplicate suppression. url.Values.Encode
// sorts keys, so parameter order does not matter.
func (r Request) dedupKey() string {
	return r.Method + " " + r.Path + "?" + r.Query.Encode()
}

func (r Request) isQuery() bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

type authAttemptKey struct{}

// withAuthAttempt returns a context recording that the 401 replay has
// already been used for this call chain.
func withAuthAttempt(ctx context.Context) context.Context {
	return context.WithValue(ctx, authAttemptKey{}, authAttempts(ctx)+1)
}

func authAttempts(ctx context.Context) int {
	n, _ := ctx.Value(authAttemptKey{}).(int)
	return n
}

type bearerOverrideKey struct{}

func withBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerOverrideKey{}, token)
}

func bearerOverride(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerOverrideKey{}).(string)
	return token, ok && token != ""
}
