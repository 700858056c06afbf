package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var version = "dev"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the console version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"offline": "true"},
		RunE: func(*cobra.Command, []string) error {
			if a.flags.output == formatTable {
				fmt.Fprintln(a.out, figure.NewFigure("ISP Console", "cybermedium", true).String())
			}
			return message(a.renderer(), "console %s", version)
		},
	}
}
