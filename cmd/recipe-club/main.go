package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recipe-club",
		Short: "Terminal client for the Recipe Club API",
		Long:  "Recipe Club: browse, submit, rate and favorite recipes from the terminal.",
	}

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newRecipesCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newArticlesCmd())
	rootCmd.AddCommand(newAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
