package session

import (
	"github.com/jrsteele09/isp-console/users"
)

// State is the in-memory session snapshot. It is treated as immutable:
// Reduce always returns a new value.
type State struct {
	User            *users.User
	IsAuthenticated bool
	Loading         bool
	Error           string
	AuthChecked     bool
}

// Phase names the controller state the snapshot corresponds to.
type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticating Phase = "authenticating"
	PhaseAuthenticated  Phase = "authenticated"
)

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseAuthenticating
	case s.IsAuthenticated:
		return PhaseAuthenticated
	}
	return PhaseAnonymous
}

type ActionType string

const (
	ActionStart      ActionType = "start"
	ActionSuccess    ActionType = "success"
	ActionFailure    ActionType = "failure"
	ActionClear      ActionType = "clear"
	ActionChecked    ActionType = "checked"
	ActionClearError ActionType = "clear_error"
	ActionUpdateUser ActionType = "update_user"
)

// Action is one transition request.
type Action struct {
	Type  ActionType
	User  *users.User
	Error string
}

func Start() Action { return Action{Type: ActionStart} }
func Success(user *users.User) Action { return Action{Type: ActionSuccess, User: user} }
func Failure(message string) Action { return Action{Type: ActionFailure, Error: message} }
func Clear() Action { return Action{Type: ActionClear} }
func Checked() Action { return Action{Type: ActionChecked} }
func ClearError() Action { return Action{Type: ActionClearError} }
func UpdateUser(user *users.User) Action { return Action{Type: ActionUpdateUser, User: user} }

// Reduce applies action to state. It has no side effects; unknown actions
// return state unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionStart:
		state.Loading = true
		state.Error = ""
	case ActionSuccess:
		state.User = copyUser(action.User)
		state.IsAuthenticated = true
		state.Loading = false
		state.Error = ""
	case ActionFailure:
		state.User = nil
		state.IsAuthenticated = false
		state.Loading = false
		state.Error = action.Error
	case ActionClear:
		state = State{}
	case ActionChecked:
		state.AuthChecked = true
	case ActionClearError:
		state.Error = ""
	case ActionUpdateUser:
		if state.IsAuthenticated && action.User != nil {
			state.User = copyUser(action.User)
		}
	}
	return state
}

func copyUser(u *users.User) *users.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}
