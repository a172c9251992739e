package gateway

import (
	"context"
	"net/url"

	"github.com/mkolev/recipe-club/internal/model"
)

type favoriteClient struct {
	c *Client
}

func (f *favoriteClient) ListIDs(ctx context.Context) (Result[[]string], error) {
	return getJSON[[]string](ctx, f.c, "/api/favorites", nil)
}

func (f *favoriteClient) Add(ctx context.Context, recipeID string) (Result[NoData], error) {
	return postJSON[NoData](ctx, f.c, "/api/favorites/"+url.PathEscape(recipeID), nil)
}

func (f *favoriteClient) Remove(ctx context.Context, recipeID string) (Result[NoData], error) {
	return del[NoData](ctx, f.c, "/api/favorites/"+url.PathEscape(recipeID))
}

// ListDetailed fetches full recipes for the favorites view. The backend
// takes pagination in the request body rather than the query string.
func (f *favoriteClient) ListDetailed(ctx context.Context, params model.FavoritesParams) (Result[RecipeList], error) {
	body := struct {
		CurrentPage int `json:"currentPage"`
		PageSize    int `json:"pageSize"`
	}{CurrentPage: params.CurrentPage, PageSize: params.PageSize}
	return postJSON[RecipeList](ctx, f.c, "/api/favorites/recipes", body)
}
