package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/isp-console/api"
	"github.com/stretchr/testify/require"
)

func TestSlowLog_CapDropsOldest(t *testing.T) {
	l := api.NewSlowLog()
	for i := 0; i < 250; i++ {
		l.Record(api.SlowRequest{Path: "/users/", Duration: time.Duration(i) * time.Millisecond})
	}
	entries := l.Entries()
	require.Len(t, entries, 200)
	require.Equal(t, 50*time.Millisecond, entries[0].Duration)
	require.Equal(t, 249*time.Millisecond, entries[len(entries)-1].Duration)
}

func TestSlowLog_TrimKeepsMostRecent(t *testing.T) {
	l := api.NewSlowLog()
	for i := 0; i < 150; i++ {
		l.Record(api.SlowRequest{Duration: time.Duration(i)})
	}
	l.Trim()
	entries := l.Entries()
	require.Len(t, entries, 100)
	require.Equal(t, time.Duration(50), entries[0].Duration)

	l.Clear()
	require.Zero(t, l.Len())
}

func TestSlowLog_Slowest(t *testing.T) {
	l := api.NewSlowLog()
	l.Record(api.SlowRequest{Path: "/a/", Duration: 3 * time.Second})
	l.Record(api.SlowRequest{Path: "/b/", Duration: 9 * time.Second})
	l.Record(api.SlowRequest{Path: "/c/", Duration: 5 * time.Second})

	top := l.Slowest(2)
	require.Len(t, top, 2)
	require.Equal(t, "/b/", top[0].Path)
	require.Equal(t, "/c/", top[1].Path)
}

func TestSlowLog_RunTrimsUntilCancelled(t *testing.T) {
	l := api.NewSlowLog()
	for i := 0; i < 180; i++ {
		l.Record(api.SlowRequest{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return l.Len() == 100 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
