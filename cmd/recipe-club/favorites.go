package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkolev/recipe-club/internal/model"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your favorite recipes",
	}
	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesToggleCmd())
	return cmd
}

func favoritesSettle(a *app) error {
	return settle(a.favorites,
		func() bool { return a.favorites.State().Loading },
		func() string { return a.favorites.State().Error })
}

func newFavoritesListCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your favorite recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.users.IsLoggedIn() {
				return fmt.Errorf("log in first")
			}

			a.favorites.LoadFavoriteRecipes(context.Background(), model.FavoritesParams{
				CurrentPage: page,
				PageSize:    pageSize,
			})
			if err := favoritesSettle(a); err != nil {
				return err
			}
			st := a.favorites.State()
			printRecipes(st.FavoriteRecipes, st.TotalResults)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 100, "results per page")
	return cmd
}

func newFavoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <recipe-id>",
		Short: "Add or remove a recipe from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.users.IsLoggedIn() {
				return fmt.Errorf("log in first")
			}

			// The coordinator loads the id collection when it sees the
			// hydrated session; wait for it so the toggle sees current
			// membership.
			if err := favoritesSettle(a); err != nil {
				return err
			}

			before := len(a.favorites.State().FavoriteRecipeIDs)
			a.favorites.ToggleFavorite(context.Background(), args[0])
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := awaitToggle(ctx, a, before); err != nil {
				return err
			}
			if msg := a.favorites.State().Error; msg != "" {
				return fmt.Errorf("%s", msg)
			}
			st := a.favorites.State()
			fmt.Printf("%d favorites\n", len(st.FavoriteRecipeIDs))
			return nil
		},
	}
}

func awaitToggle(ctx context.Context, a *app, before int) error {
	for {
		st := a.favorites.State()
		if len(st.FavoriteRecipeIDs) != before || st.Error != "" {
			return nil
		}
		ch := a.favorites.Changed()
		st = a.favorites.State()
		if len(st.FavoriteRecipeIDs) != before || st.Error != "" {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for the API: %w", ctx.Err())
		}
	}
}
