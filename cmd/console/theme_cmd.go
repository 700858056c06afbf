package main

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/theme"
)

// The theme commands only need storage; they work while signed out.
func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return message(a.renderer(), "%s", a.theme().Get())
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the current theme",
			Args:  cobra.NoArgs,
			RunE:  cmd.RunE,
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Store a theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(theme.Light), string(theme.Dark)},
			RunE: func(_ *cobra.Command, args []string) error {
				t, err := theme.Parse(args[0])
				if err != nil {
					return err
				}
				if err := a.theme().Set(t); err != nil {
					return err
				}
				return message(a.renderer(), "Theme set to %s", t)
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				t, err := a.theme().Toggle()
				if err != nil {
					return err
				}
				return message(a.renderer(), "Theme set to %s", t)
			},
		},
	)
	return cmd
}
