package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
)

func newRecipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse and moderate recipes",
	}
	cmd.AddCommand(newRecipesListCmd())
	cmd.AddCommand(newRecipesShowCmd())
	cmd.AddCommand(newRecipesRandomCmd())
	cmd.AddCommand(newRecipesApproveCmd())
	cmd.AddCommand(newRecipesRejectCmd())
	cmd.AddCommand(newRecipesDeleteCmd())
	return cmd
}

func recipesSettle(a *app) error {
	return settle(a.recipes,
		func() bool { return a.recipes.State().Loading },
		func() string { return a.recipes.State().Error })
}

func printRecipes(recipes []model.Recipe, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tRATING\tCREATED BY")
	for _, r := range recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f (%d)\t%s\n",
			r.ID, r.Name, r.Status, r.Rating.AverageRating, r.Rating.RatingCount, r.CreatedBy)
	}
	_ = w.Flush()
	fmt.Printf("%d of %d results\n", len(recipes), total)
}

func newRecipesListCmd() *cobra.Command {
	var segment string
	var page, pageSize int
	var search, status, categoryID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes for a segment (all, my, admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			filters := model.DefaultRecipeFilters()
			filters.CurrentPage = page
			filters.PageSize = pageSize
			filters.SearchText = search
			filters.Status = status
			filters.CategoryID = categoryID

			a.recipes.LoadRecipes(context.Background(), filters, gateway.Segment(segment))
			if err := recipesSettle(a); err != nil {
				return err
			}
			st := a.recipes.State()
			printRecipes(st.Recipes, st.TotalResults)
			return nil
		},
	}
	cmd.Flags().StringVar(&segment, "segment", "all", "collection view: all, my or admin")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 6, "results per page")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	return cmd
}

func newRecipesShowCmd() *cobra.Command {
	var segment string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.recipes.LoadRecipeDetails(context.Background(), args[0], gateway.Segment(segment))
			if err := recipesSettle(a); err != nil {
				return err
			}
			r := a.recipes.State().SelectedRecipe
			if r == nil {
				return fmt.Errorf("recipe %s not found", args[0])
			}
			fmt.Printf("%s: %s\n", r.Name, r.Description)
			fmt.Printf("status: %s  prep: %dm  cook: %dm  servings: %d\n", r.Status, r.PrepTime, r.CookTime, r.Servings)
			fmt.Printf("rating: %.1f from %d votes\n", r.Rating.AverageRating, r.Rating.RatingCount)
			for _, ing := range r.Ingredients {
				fmt.Printf("  - %s %s %s\n", ing.Quantity, ing.Unit, ing.Name)
			}
			for _, ins := range r.Instructions {
				fmt.Printf("  %d. %s\n", ins.SortOrder, ins.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&segment, "segment", "all", "collection view: all, my or admin")
	return cmd
}

func newRecipesRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random [count]",
		Short: "Show random recipes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 3
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
				count = n
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.recipes.GetRandomRecipes(context.Background(), count)
			if err := recipesSettle(a); err != nil {
				return err
			}
			st := a.recipes.State()
			printRecipes(st.Recipes, len(st.Recipes))
			return nil
		},
	}
}

func newRecipesApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending recipe (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  moderationRunE(func(a *app, ctx context.Context, id string) { a.recipes.ApproveRecipe(ctx, id) }),
	}
}

func newRecipesRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending recipe (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  moderationRunE(func(a *app, ctx context.Context, id string) { a.recipes.RejectRecipe(ctx, id) }),
	}
}

func newRecipesDeleteCmd() *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your recipes (or any, with --admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if admin {
				a.recipes.AdminDeleteRecipe(context.Background(), args[0])
			} else {
				a.recipes.DeleteRecipe(context.Background(), args[0])
			}
			return recipesSettle(a)
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "delete as administrator")
	return cmd
}

func moderationRunE(run func(a *app, ctx context.Context, id string)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		run(a, context.Background(), args[0])
		return recipesSettle(a)
	}
}
