package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/auth"
	"github.com/jrsteele09/isp-console/users"
)

func newLoginCmd(a *app) *cobra.Command {
	var creds auth.Credentials
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.LoginID == "" {
				return fmt.Errorf("--login-id is required")
			}
			if creds.Password == "" || passwordStdin {
				if !passwordStdin {
					fmt.Fprint(a.errOut, "Password: ")
				}
				line, err := bufio.NewReader(a.in).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				creds.Password = strings.TrimRight(line, "\r\n")
			}

			err := a.busy("Signing in...", func() error {
				return a.auth.Login(cmd.Context(), creds)
			})
			if err != nil {
				return err
			}
			user := a.auth.State().User
			return message(a.renderer(), "Signed in as %s", user.DisplayName())
		},
	}
	cmd.Flags().StringVarP(&creds.LoginID, "login-id", "u", "", "login id")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().BoolVar(&creds.RememberMe, "remember", false, "keep the session across restarts")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	var allDevices bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context(), allDevices); err != nil {
				return err
			}
			return message(a.renderer(), "Signed out")
		},
	}
	cmd.Flags().BoolVar(&allDevices, "all-devices", false, "revoke every session of this account")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(*cobra.Command, []string) error {
			return a.renderer().render(userView(a.auth.State().User))
		}),
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.RefreshToken(cmd.Context()); err != nil {
				return err
			}
			pair, err := a.store.Read()
			if err != nil {
				return err
			}
			expires := "unknown"
			if pair != nil && !pair.ExpiresAt.IsZero() {
				expires = pair.ExpiresAt.Local().Format("15:04:05")
			}
			return message(a.renderer(), "Session refreshed, access token valid until %s", expires)
		}),
	}
}

func userView(u *users.User) view {
	return keyValues(u,
		[2]any{"id", u.ID},
		[2]any{"login id", u.LoginID},
		[2]any{"name", u.Name},
		[2]any{"email", u.Email},
		[2]any{"type", u.UserType},
		[2]any{"active", yesNo(u.IsActive)},
		[2]any{"roles", strings.Join(u.Roles, ", ")},
	)
}
