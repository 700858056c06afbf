package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/billing"
	"github.com/jrsteele09/isp-console/reports"
)

func newBillingCmd(a *app) *cobra.Command {
	var status string
	invoices := &cobra.Command{
		Use:   "invoices",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			page, err := billing.NewService(a.client).Invoices(cmd.Context(), status)
			if err != nil {
				return err
			}
			v := view{value: page.Items, headers: []string{"id", "number", "customer", "amount", "status", "due"}}
			for _, inv := range page.Items {
				v.rows = append(v.rows, []any{inv.ID, inv.Number, inv.CustomerID, money(inv.Amount), inv.Status, when(inv.DueAt)})
			}
			return a.renderer().render(v)
		}),
	}
	invoices.Flags().StringVar(&status, "status", "", "only invoices in this status")

	payments := &cobra.Command{
		Use:   "payments",
		Short: "List payments",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			page, err := billing.NewService(a.client).Payments(cmd.Context())
			if err != nil {
				return err
			}
			v := view{value: page.Items, headers: []string{"id", "invoice", "customer", "amount", "method", "paid"}}
			for _, p := range page.Items {
				v.rows = append(v.rows, []any{p.ID, p.InvoiceID, p.CustomerID, money(p.Amount), p.Method, when(p.PaidAt)})
			}
			return a.renderer().render(v)
		}),
	}

	var period string
	generate := &cobra.Command{
		Use:   "generate-invoice <customer-id>",
		Short: "Generate an invoice for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			var inv *billing.Invoice
			err := a.busy("Generating invoice...", func() error {
				var err error
				inv, err = billing.NewService(a.client).GenerateInvoice(cmd.Context(), billing.GenerateInvoiceRequest{
					CustomerID: api.ID(args[0]),
					Period:     period,
				})
				return err
			})
			if err != nil {
				return err
			}
			return a.renderer().render(keyValues(inv,
				[2]any{"id", inv.ID},
				[2]any{"number", inv.Number},
				[2]any{"amount", money(inv.Amount)},
				[2]any{"status", inv.Status},
				[2]any{"due", when(inv.DueAt)},
			))
		}),
	}
	generate.Flags().StringVar(&period, "period", "", "billing period, e.g. 2026-09")

	var method string
	pay := &cobra.Command{
		Use:   "pay <invoice-id> <amount>",
		Short: "Record a payment against an invoice",
		Args:  cobra.ExactArgs(2),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			p, err := billing.NewService(a.client).ProcessPayment(cmd.Context(), billing.ProcessPaymentRequest{
				InvoiceID: api.ID(args[0]),
				Amount:    amount,
				Method:    method,
			})
			if err != nil {
				return err
			}
			return message(a.renderer(), "Payment %s of %s recorded", p.ID, money(p.Amount))
		}),
	}
	pay.Flags().StringVar(&method, "method", "cash", "payment method")

	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Invoices and payments",
	}
	cmd.AddCommand(invoices, payments, generate, pay)
	return cmd
}

func newReportsCmd(a *app) *cobra.Command {
	var period string
	show := &cobra.Command{
		Use:       "show <revenue|customers|network>",
		Short:     "Show a report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(reports.KindRevenue), string(reports.KindCustomers), string(reports.KindNetwork)},
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			svc := reports.NewService(a.client)
			var (
				r   *reports.Report
				err error
			)
			switch reports.Kind(args[0]) {
			case reports.KindRevenue:
				r, err = svc.Revenue(cmd.Context(), period)
			case reports.KindCustomers:
				r, err = svc.Customers(cmd.Context(), period)
			case reports.KindNetwork:
				r, err = svc.Network(cmd.Context(), period)
			default:
				return fmt.Errorf("unknown report %q: use revenue, customers or network", args[0])
			}
			if err != nil {
				return err
			}

			v := view{value: r, headers: []string{"label", "value"}, footer: "period " + r.Period}
			for _, p := range r.Series {
				v.rows = append(v.rows, []any{p.Label, p.Value})
			}
			totals := make([]string, 0, len(r.Totals))
			for k := range r.Totals {
				totals = append(totals, k)
			}
			sort.Strings(totals)
			for _, k := range totals {
				v.rows = append(v.rows, []any{"total " + k, r.Totals[k]})
			}
			return a.renderer().render(v)
		}),
	}
	show.Flags().StringVar(&period, "period", "", "reporting period, e.g. month or 2026-09")

	var format, file string
	export := &cobra.Command{
		Use:   "export <revenue|customers|network>",
		Short: "Download a rendered report",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			kind := reports.Kind(args[0])
			var data []byte
			err := a.busy("Exporting report...", func() error {
				var err error
				data, err = reports.NewService(a.client).Export(cmd.Context(), kind, reports.Format(format), period)
				return err
			})
			if err != nil {
				return err
			}
			if file == "" {
				file = fmt.Sprintf("%s-report.%s", kind, format)
			}
			if err := os.WriteFile(file, data, 0o600); err != nil {
				return err
			}
			return message(a.renderer(), "Wrote %d bytes to %s", len(data), file)
		}),
	}
	export.Flags().StringVar(&format, "format", string(reports.FormatCSV), "csv, pdf or xlsx")
	export.Flags().StringVar(&period, "period", "", "reporting period")
	export.Flags().StringVar(&file, "file", "", "output file (default <report>-report.<format>)")

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Revenue, customer and network reports",
	}
	cmd.AddCommand(show, export)
	return cmd
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
