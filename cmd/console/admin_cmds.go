package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/internal/utils"
	"github.com/jrsteele09/isp-console/organizations"
	"github.com/jrsteele09/isp-console/roles"
	"github.com/jrsteele09/isp-console/users"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage console users",
	}
	cmd.AddCommand(newUsersListCmd(a), newUsersGetCmd(a), newUsersCreateCmd(a), newUsersUpdateCmd(a), newUsersDeleteCmd(a))
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	var params users.ListParams
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			var list []users.User
			footer := ""
			err := a.busy("Loading users...", func() error {
				if all {
					q := params.Query()
					q.Del("page")
					items, err := api.ListAll[users.User](cmd.Context(), a.client, api.Users, q, 0)
					list = items
					return err
				}
				page, err := users.NewService(a.client).List(cmd.Context(), params)
				if err != nil {
					return err
				}
				list = page.Items
				footer = pageFooter(params.Page, len(page.Items), page.Count, page.HasNext())
				return nil
			})
			if err != nil {
				return err
			}

			v := view{value: list, headers: []string{"id", "login id", "name", "email", "type", "active"}, footer: footer}
			for _, u := range list {
				v.rows = append(v.rows, []any{u.ID, u.LoginID, u.Name, u.Email, u.UserType, yesNo(u.IsActive)})
			}
			return a.renderer().render(v)
		}),
	}
	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", users.DefaultPageSize, "users per page")
	cmd.Flags().StringVar(&params.Search, "search", "", "filter by login id, name or email")
	cmd.Flags().BoolVar(&all, "all", false, "follow every page")
	return cmd
}

func newUsersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			u, err := users.NewService(a.client).Get(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return err
			}
			return a.renderer().render(userView(u))
		}),
	}
}

func newUsersCreateCmd(a *app) *cobra.Command {
	var form users.CreateForm
	var userType, org string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			form.UserType = users.UserType(userType)
			form.OrganizationID = api.ID(org)
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			var created *users.User
			err := a.busy("Creating user...", func() error {
				var err error
				created, err = users.NewService(a.client).Create(cmd.Context(), form)
				return err
			})
			if err != nil {
				return err
			}
			return a.renderer().render(userView(created))
		}),
	}
	f := cmd.Flags()
	f.StringVar(&form.LoginID, "login-id", "", "login id")
	f.StringVar(&form.Name, "name", "", "full name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Mobile, "mobile", "", "mobile number")
	f.StringVar(&userType, "type", string(users.UserTypeUser), "user, manager or admin")
	f.StringVar(&org, "organization", "", "organization id")
	f.StringVar(&form.Password, "password", "", "initial password")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "repeat the password (defaults to --password)")
	return cmd
}

func newUsersUpdateCmd(a *app) *cobra.Command {
	var name, email, mobile, userType string
	var active bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a user; unset flags are left alone",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			var form users.UpdateForm
			f := cmd.Flags()
			if f.Changed("name") {
				form.Name = utils.Ptr(name)
			}
			if f.Changed("email") {
				form.Email = utils.Ptr(email)
			}
			if f.Changed("mobile") {
				form.Mobile = utils.Ptr(mobile)
			}
			if f.Changed("type") {
				form.UserType = utils.Ptr(users.UserType(userType))
			}
			if f.Changed("active") {
				form.IsActive = utils.Ptr(active)
			}
			if form == (users.UpdateForm{}) {
				return fmt.Errorf("nothing to update: pass at least one of --name, --email, --mobile, --type, --active")
			}

			u, err := users.NewService(a.client).Update(cmd.Context(), api.ID(args[0]), form)
			if err != nil {
				return err
			}
			return a.renderer().render(userView(u))
		}),
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&email, "email", "", "email address")
	f.StringVar(&mobile, "mobile", "", "mobile number")
	f.StringVar(&userType, "type", "", "user, manager or admin")
	f.BoolVar(&active, "active", true, "whether the account may sign in")
	return cmd
}

func newUsersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string) error {
			if err := users.NewService(a.client).Delete(cmd.Context(), api.ID(args[0])); err != nil {
				return err
			}
			return message(a.renderer(), "User %s deleted", args[0])
		}),
	}
}

func newRolesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Manage roles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			page, err := roles.NewService(a.client).List(cmd.Context(), nil)
			if err != nil {
				return err
			}
			v := view{value: page.Items, headers: []string{"id", "name", "users", "permissions", "active"}}
			for _, r := range page.Items {
				v.rows = append(v.rows, []any{r.ID, r.Name, r.UserCount, len(r.Permissions), yesNo(r.IsActive)})
			}
			return a.renderer().render(v)
		}),
	})
	return cmd
}

func newOrgsCmd(a *app) *cobra.Command {
	var page int
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(cmd *cobra.Command, _ []string) error {
			p, err := organizations.NewService(a.client).Page(cmd.Context(), page, search)
			if err != nil {
				return err
			}
			v := view{
				value:   p.Items,
				headers: []string{"id", "code", "name", "email", "active"},
				footer:  pageFooter(page, len(p.Items), p.Count, p.HasNext()),
			}
			for _, o := range p.Items {
				v.rows = append(v.rows, []any{o.ID, o.Code, o.Name, o.Email, yesNo(o.IsActive)})
			}
			return a.renderer().render(v)
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().StringVar(&search, "search", "", "filter by name or code")

	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations"},
		Short:   "Manage organizations",
	}
	cmd.AddCommand(list)
	return cmd
}

func pageFooter(page, shown, total int, more bool) string {
	if page < 1 {
		page = 1
	}
	s := fmt.Sprintf("page %d, %d of %d", page, shown, total)
	if more {
		s += fmt.Sprintf(", next with --page %d", page+1)
	}
	return s
}
