package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/customers"
	"github.com/jrsteele09/isp-console/dashboard"
	"github.com/jrsteele09/isp-console/sdt"
)

func newSDTCmd(a *app) *cobra.Command {
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List distribution terminals",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			page, err := sdt.NewService(a.client).ByStatus(cmd.Context(), status)
			if err != nil {
				return err
			}
			v := view{value: page.Items, headers: []string{"id", "name", "serial", "location", "ip", "status", "last seen"}}
			for _, t := range page.Items {
				v.rows = append(v.rows, []any{t.ID, t.Name, t.SerialNumber, t.Location, t.IPAddress, t.Status, when(t.LastSeen)})
			}
			return a.renderer().render(v)
		}),
	}
	list.Flags().StringVar(&status, "status", "", "only terminals in this status")

	health := &cobra.Command{
		Use:   "health <id>",
		Short: "Show the health of one terminal",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			h, err := sdt.NewService(a.client).Health(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return err
			}
			return a.renderer().render(keyValues(h,
				[2]any{"id", h.ID},
				[2]any{"healthy", yesNo(h.Healthy)},
				[2]any{"cpu", fmt.Sprintf("%.1f%%", h.CPUPercent)},
				[2]any{"memory", fmt.Sprintf("%.1f%%", h.MemPercent)},
				[2]any{"temperature", fmt.Sprintf("%.1f", h.Temperature)},
			))
		}),
	}

	cmd := &cobra.Command{
		Use:   "sdt",
		Short: "Subscriber distribution terminals",
	}
	cmd.AddCommand(list, health)
	return cmd
}

func newCustomersCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			page, err := customers.NewService(a.client).List(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return a.renderer().render(customerView(page.Items))
		}),
	}
	search := &cobra.Command{
		Use:   "search <term>",
		Short: "Search customers by name, account or phone",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			page, err := customers.NewService(a.client).Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.renderer().render(customerView(page.Items))
		}),
	}

	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Customer accounts",
	}
	cmd.AddCommand(list, search)
	return cmd
}

func customerView(list []customers.Customer) view {
	v := view{value: list, headers: []string{"id", "account", "name", "status", "plan", "balance"}}
	for _, c := range list {
		v.rows = append(v.rows, []any{c.ID, c.AccountNo, c.Name, c.Status, c.Plan, money(c.Balance)})
	}
	return v
}

type cardOutput struct {
	Title string `json:"title"`
	Count *int   `json:"count"`
	Error string `json:"error,omitempty"`
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline counts and network health",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			var o *dashboard.Overview
			err := a.busy("Loading dashboard...", func() error {
				var err error
				o, err = dashboard.NewService(a.client).Overview(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			cards := make([]cardOutput, len(o.Cards))
			v := view{headers: []string{"card", "count"}}
			for i, c := range o.Cards {
				cards[i].Title = c.Title
				if c.Err != nil {
					cards[i].Error = api.Message(c.Err, c.Err.Error())
					v.rows = append(v.rows, []any{c.Title, "unavailable"})
					continue
				}
				count := c.Count
				cards[i].Count = &count
				v.rows = append(v.rows, []any{c.Title, count})
			}
			if o.Network != nil {
				v.footer = fmt.Sprintf("network: %d connections, %.1f%% utilization, %.1f ms latency",
					o.Network.ActiveConnections, o.Network.Utilization, o.Network.Latency)
			} else {
				v.footer = "network stats unavailable"
			}
			v.value = map[string]any{
				"cards":      cards,
				"network":    o.Network,
				"fetched_at": o.FetchedAt,
			}
			return a.renderer().render(v)
		}),
	}
}

func when(t api.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
