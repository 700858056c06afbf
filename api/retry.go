package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds blind retries. Attempts count the first try, so
// QueryAttempts of 3 means at most two retries of a GET.
type RetryPolicy struct {
	QueryAttempts    int
	MutationAttempts int
	InitialInterval  time.Duration
	MaxInterval      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		QueryAttempts:    3,
		MutationAttempts: 2,
		InitialInterval:  time.Second,
		MaxInterval:      30 * time.Second,
	}
}

func (p RetryPolicy) attempts(method string) uint {
	n := p.MutationAttempts
	if method == http.MethodGet || method == http.MethodHead {
		n = p.QueryAttempts
	}
	if n < 1 {
		n = 1
	}
	return uint(n)
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.Multiplier = 2
	return b
}

// retryable decides whether a failed attempt may be tried again. 401 and 403
// are never retried here: 401 belongs to the refresh path.
func retryable(err error) bool {
	switch {
	case err == nil, IsCancelled(err), isCallerCancellation(err) && !IsTimeout(err):
		return false
	case IsTimeout(err), IsNetwork(err):
		return true
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return apiErr.StatusCode >= http.StatusInternalServerError
}
