package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkolev/recipe-club/internal/model"
)

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Print("Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.users.Login(context.Background(), model.LoginRequest{Email: email, Password: password})
			if err := settle(a.users, func() bool { return a.users.State().Loading }, func() string { return a.users.State().Error }); err != nil {
				return err
			}

			st := a.users.State()
			fmt.Printf("logged in as %s\n", st.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.users.Logout(context.Background())
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.users.IsLoggedIn() {
				fmt.Println("not logged in")
				return nil
			}
			st := a.users.State()
			fmt.Printf("%s <%s> role=%s\n", st.User.Name, st.User.Email, st.User.Role)
			return nil
		},
	}
}
