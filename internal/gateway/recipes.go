package gateway

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/mkolev/recipe-club/internal/model"
)

type recipeClient struct {
	c *Client
}

// recipeQuery builds the query string for a recipe list fetch. Optional
// filters are only sent when set, matching what the backend expects.
func recipeQuery(f model.RecipeFilters) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.CurrentPage))
	q.Set("pageSize", strconv.Itoa(f.PageSize))
	if f.SearchText != "" {
		q.Set("searchText", f.SearchText)
	}
	if f.SearchByName != "" {
		q.Set("searchByName", f.SearchByName)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.TypeOfProcessingID != "" {
		q.Set("typeOfProcessingId", f.TypeOfProcessingID)
	}
	if f.DegreeOfDifficultyID != "" {
		q.Set("degreeOfDifficultyId", f.DegreeOfDifficultyID)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	if f.CreatedAtFrom != nil {
		q.Set("createdAtFrom", f.CreatedAtFrom.Format(time.RFC3339))
	}
	if f.CreatedAtTo != nil {
		q.Set("createdAtTo", f.CreatedAtTo.Format(time.RFC3339))
	}
	return q
}

func (r *recipeClient) List(ctx context.Context, filters model.RecipeFilters, segment Segment) (Result[RecipeList], error) {
	return getJSON[RecipeList](ctx, r.c, "/api/recipes/"+string(segment), recipeQuery(filters))
}

func (r *recipeClient) GetByID(ctx context.Context, id string, segment Segment) (Result[model.Recipe], error) {
	return getJSON[model.Recipe](ctx, r.c, "/api/recipes/"+string(segment)+"/"+url.PathEscape(id), nil)
}

func buildRecipeForm(p RecipePayload) func(w *multipart.Writer) error {
	return func(w *multipart.Writer) error {
		if err := w.WriteField("name", p.Name); err != nil {
			return err
		}
		if err := w.WriteField("description", p.Description); err != nil {
			return err
		}
		if err := w.WriteField("categoryId", p.CategoryID); err != nil {
			return err
		}
		if err := w.WriteField("typeOfProcessingId", p.TypeOfProcessingID); err != nil {
			return err
		}
		if err := w.WriteField("degreeOfDifficultyId", p.DegreeOfDifficultyID); err != nil {
			return err
		}
		if err := w.WriteField("prepTime", strconv.Itoa(p.PrepTime)); err != nil {
			return err
		}
		if err := w.WriteField("cookTime", strconv.Itoa(p.CookTime)); err != nil {
			return err
		}
		if err := w.WriteField("servings", strconv.Itoa(p.Servings)); err != nil {
			return err
		}
		if err := writeJSONField(w, "ingredients", p.Ingredients); err != nil {
			return err
		}
		if err := writeJSONField(w, "instructions", p.Instructions); err != nil {
			return err
		}
		for _, img := range p.Images {
			if err := writeFilePart(w, "images", img); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *recipeClient) Create(ctx context.Context, payload RecipePayload) (Result[model.Recipe], error) {
	return postMultipart[model.Recipe](ctx, r.c, "/api/recipes/add", buildRecipeForm(payload))
}

func (r *recipeClient) Update(ctx context.Context, id string, payload RecipePayload) (Result[model.Recipe], error) {
	return postMultipart[model.Recipe](ctx, r.c, "/api/recipes/"+url.PathEscape(id), buildRecipeForm(payload))
}

func (r *recipeClient) Delete(ctx context.Context, id string) (Result[NoData], error) {
	return del[NoData](ctx, r.c, "/api/recipes/"+url.PathEscape(id))
}

func (r *recipeClient) AdminDelete(ctx context.Context, id string) (Result[NoData], error) {
	return del[NoData](ctx, r.c, "/api/recipes/"+url.PathEscape(id)+"/admin-delete")
}

func (r *recipeClient) Random(ctx context.Context, count int) (Result[[]model.Recipe], error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	return getJSON[[]model.Recipe](ctx, r.c, "/api/recipes/random-recipes", q)
}

func (r *recipeClient) Lookups(ctx context.Context) (Result[model.RecipeLookups], error) {
	return getJSON[model.RecipeLookups](ctx, r.c, "/api/recipes/lookups", nil)
}

func (r *recipeClient) Approve(ctx context.Context, id string) (Result[model.Recipe], error) {
	return postJSON[model.Recipe](ctx, r.c, "/api/recipes/"+url.PathEscape(id)+"/approve", nil)
}

func (r *recipeClient) Reject(ctx context.Context, id string) (Result[model.Recipe], error) {
	return postJSON[model.Recipe](ctx, r.c, "/api/recipes/"+url.PathEscape(id)+"/reject", nil)
}

func (r *recipeClient) Rate(ctx context.Context, id string, rating int) (Result[model.Rating], error) {
	body := struct {
		Rating int `json:"rating"`
	}{Rating: rating}
	return postJSON[model.Rating](ctx, r.c, "/api/recipes/"+url.PathEscape(id)+"/rate", body)
}
