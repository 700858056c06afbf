package auth

// Navigator receives the navigate-to-login side effect when a session ends.
type Navigator interface {
	NavigateToLogin()
}

// NavigatorFunc adapts a plain func to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateToLogin() {
	f()
}
