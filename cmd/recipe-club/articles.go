package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newArticlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Browse articles",
	}
	cmd.AddCommand(newArticlesCategoriesCmd())
	cmd.AddCommand(newArticlesListCmd())
	cmd.AddCommand(newArticlesShowCmd())
	return cmd
}

func articlesSettle(a *app) error {
	return settle(a.articles,
		func() bool { return a.articles.State().Loading },
		func() string { return a.articles.State().Error })
}

func newArticlesCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List article categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.articles.GetArticleCategories(context.Background())
			if err := articlesSettle(a); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tARTICLES")
			for _, c := range a.articles.State().Categories {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.ID, c.Name, c.ArticlesCount)
			}
			return w.Flush()
		},
	}
}

func newArticlesListCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "list <category-id>",
		Short: "List articles in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			params := a.articles.State().Params
			params.CurrentPage = page
			params.PageSize = pageSize
			a.articles.SetParams(params)

			a.articles.GetArticlesByCategory(context.Background(), args[0])
			if err := articlesSettle(a); err != nil {
				return err
			}
			st := a.articles.State()
			if st.SelectedCategory != nil {
				fmt.Printf("category: %s\n", st.SelectedCategory.Name)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, art := range st.Articles {
				fmt.Fprintf(w, "%s\t%s\t%s\n", art.ID, art.Name, art.CreatedAt.Format("2006-01-02"))
			}
			_ = w.Flush()
			fmt.Printf("%d of %d results\n", len(st.Articles), st.TotalResults)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "results per page")
	return cmd
}

func newArticlesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.articles.GetArticleByID(context.Background(), args[0])
			if err := articlesSettle(a); err != nil {
				return err
			}
			art := a.articles.State().SelectedArticle
			if art == nil {
				return fmt.Errorf("article %s not found", args[0])
			}
			fmt.Printf("%s\n\n%s\n", art.Name, art.Description)
			for _, p := range art.Paragraphs {
				if p.Title != "" {
					fmt.Printf("\n## %s\n", p.Title)
				}
				fmt.Printf("\n%s\n", p.Description)
			}
			return nil
		},
	}
}
