package session_test

import (
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/isp-console/session"
	"github.com/jrsteele09/isp-console/users"
	"github.com/stretchr/testify/require"
)

func TestReduce_Transitions(t *testing.T) {
	alice := &users.User{ID: "1", Name: "Alice"}

	tests := []struct {
		name   string
		from   session.State
		action session.Action
		want   session.State
	}{
		{
			name:   "start sets loading and clears error",
			from:   session.State{Error: "old"},
			action: session.Start(),
			want:   session.State{Loading: true},
		},
		{
			name:   "success authenticates",
			from:   session.State{Loading: true, AuthChecked: true},
			action: session.Success(alice),
			want:   session.State{User: alice, IsAuthenticated: true, AuthChecked: true},
		},
		{
			name:   "failure drops the user",
			from:   session.State{User: alice, IsAuthenticated: true, Loading: true},
			action: session.Failure("Login failed"),
			want:   session.State{Error: "Login failed"},
		},
		{
			name:   "clear resets everything including auth checked",
			from:   session.State{User: alice, IsAuthenticated: true, AuthChecked: true, Error: "x"},
			action: session.Clear(),
			want:   session.State{},
		},
		{
			name:   "checked only sets auth checked",
			from:   session.State{Error: "Session expired"},
			action: session.Checked(),
			want:   session.State{Error: "Session expired", AuthChecked: true},
		},
		{
			name:   "clear error",
			from:   session.State{Error: "bad"},
			action: session.ClearError(),
			want:   session.State{},
		},
		{
			name:   "update user ignored when anonymous",
			from:   session.State{},
			action: session.UpdateUser(alice),
			want:   session.State{},
		},
		{
			name:   "unknown action is a no-op",
			from:   session.State{AuthChecked: true},
			action: session.Action{Type: "nope"},
			want:   session.State{AuthChecked: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, session.Reduce(tt.from, tt.action))
		})
	}
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	user := &users.User{ID: "1", Name: "Alice", Roles: []string{"admin"}}
	state := session.Reduce(session.State{}, session.Success(user))

	user.Name = "Mallory"
	user.Roles[0] = "none"
	require.Equal(t, "Alice", state.User.Name)
	require.Equal(t, []string{"admin"}, state.User.Roles)

	updated := session.Reduce(state, session.UpdateUser(&users.User{ID: "1", Name: "Alice B"}))
	require.Equal(t, "Alice B", updated.User.Name)
	require.Equal(t, "Alice", state.User.Name)
}

func TestState_Phase(t *testing.T) {
	require.Equal(t, session.PhaseAnonymous, session.State{}.Phase())
	require.Equal(t, session.PhaseAuthenticating, session.State{Loading: true}.Phase())
	require.Equal(t, session.PhaseAuthenticated, session.State{IsAuthenticated: true}.Phase())
}

func TestContainer_DispatchAndSubscribe(t *testing.T) {
	c := session.NewContainer()

	var notified atomic.Int32
	unsubscribe := c.Subscribe(func(s session.State) {
		notified.Add(1)
	})

	c.Dispatch(session.Start())
	got := c.Dispatch(session.Success(&users.User{Name: "Alice"}))
	require.True(t, got.IsAuthenticated)
	require.Equal(t, got, c.State())
	require.EqualValues(t, 2, notified.Load())

	unsubscribe()
	c.Dispatch(session.Clear())
	require.EqualValues(t, 2, notified.Load())
	require.False(t, c.State().IsAuthenticated)
}
