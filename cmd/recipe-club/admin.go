package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkolev/recipe-club/internal/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative user management",
	}
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminPromoteCmd())
	cmd.AddCommand(newAdminDemoteCmd())
	cmd.AddCommand(newAdminDeleteUserCmd())
	return cmd
}

func usersSettle(a *app) error {
	return settle(a.users,
		func() bool { return a.users.State().Loading },
		func() string { return a.users.State().Error })
}

func newAdminUsersCmd() *cobra.Command {
	var page, pageSize int
	var name, email, role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			filters := model.DefaultUserFilters()
			filters.CurrentPage = page
			filters.PageSize = pageSize
			filters.Name = name
			filters.Email = email
			filters.Role = role

			a.users.GetAllUsers(context.Background(), filters)
			if err := usersSettle(a); err != nil {
				return err
			}
			st := a.users.State()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tLAST ACTIVE")
			for _, u := range st.Users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.LastActive)
			}
			_ = w.Flush()
			fmt.Printf("%d of %d results\n", len(st.Users), st.TotalResults)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "results per page")
	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&email, "email", "", "filter by email")
	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	return cmd
}

func adminUserRunE(run func(a *app, ctx context.Context, id string)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		run(a, context.Background(), args[0])
		return usersSettle(a)
	}
}

func newAdminPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <user-id>",
		Short: "Grant the admin role",
		Args:  cobra.ExactArgs(1),
		RunE:  adminUserRunE(func(a *app, ctx context.Context, id string) { a.users.PromoteUserToAdmin(ctx, id) }),
	}
}

func newAdminDemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demote <user-id>",
		Short: "Revoke the admin role",
		Args:  cobra.ExactArgs(1),
		RunE:  adminUserRunE(func(a *app, ctx context.Context, id string) { a.users.DemoteAdminToUser(ctx, id) }),
	}
}

func newAdminDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE:  adminUserRunE(func(a *app, ctx context.Context, id string) { a.users.AdminDeleteUser(ctx, id) }),
	}
}
