package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "console",
		Short:         "Administer the ISP billing and network platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return validateFormat(a.flags.output)
			}
			return a.open(cmd.Context())
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.output, "output", "o", formatTable, "output format: table, json or yaml")
	pf.StringVar(&a.flags.storage, "storage", "", "client storage: sqlite or memory (default from config)")
	pf.StringVar(&a.flags.dbPath, "db", "", "sqlite database path (default from config)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "REST API root (default from config)")
	pf.BoolVar(&a.flags.debug, "debug", false, "log every request")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRefreshCmd(a),
		newUsersCmd(a),
		newRolesCmd(a),
		newOrgsCmd(a),
		newSDTCmd(a),
		newCustomersCmd(a),
		newBillingCmd(a),
		newReportsCmd(a),
		newDashboardCmd(a),
		newThemeCmd(a),
		newVersionCmd(a),
	)
	return root
}
