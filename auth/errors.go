package auth

// Messages placed in session state for display.
const (
	MsgLoginFailed    = "Login failed"
	MsgSessionExpired = "Session expired"
)
