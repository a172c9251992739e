package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
)

func TestRecipeList_QueryEncoding(t *testing.T) {
	var got url.Values
	r := chi.NewRouter()
	r.Get("/api/recipes/{segment}", func(w http.ResponseWriter, req *http.Request) {
		got = req.URL.Query()
		respond(t, w, gateway.RecipeList{}, "")
	})
	c := newTestClient(t, r, nil)

	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	filters := model.RecipeFilters{
		CurrentPage:   2,
		PageSize:      6,
		SearchText:    "soup",
		Status:        model.StatusPending,
		CategoryID:    "5",
		SortBy:        "createdAt",
		SortOrder:     "desc",
		CreatedAtFrom: &from,
	}
	if _, err := c.Recipes().List(context.Background(), filters, gateway.SegmentAdmin); err != nil {
		t.Fatalf("list: %v", err)
	}

	want := map[string]string{
		"page":          "2",
		"pageSize":      "6",
		"searchText":    "soup",
		"status":        "pending",
		"categoryId":    "5",
		"sortBy":        "createdAt",
		"sortOrder":     "desc",
		"createdAtFrom": "2026-01-15T00:00:00Z",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("query[%s] = %q, want %q", k, got.Get(k), v)
		}
	}
	// Unset optional filters stay off the wire entirely.
	for _, k := range []string{"searchByName", "typeOfProcessingId", "degreeOfDifficultyId", "createdAtTo"} {
		if got.Has(k) {
			t.Errorf("query[%s] = %q, want absent", k, got.Get(k))
		}
	}
}

func TestRecipeList_SegmentsMapToRoutes(t *testing.T) {
	var gotSegment string
	r := chi.NewRouter()
	r.Get("/api/recipes/{segment}", func(w http.ResponseWriter, req *http.Request) {
		gotSegment = chi.URLParam(req, "segment")
		respond(t, w, gateway.RecipeList{}, "")
	})
	c := newTestClient(t, r, nil)

	for _, seg := range []gateway.Segment{gateway.SegmentAll, gateway.SegmentMy, gateway.SegmentAdmin} {
		if _, err := c.Recipes().List(context.Background(), model.DefaultRecipeFilters(), seg); err != nil {
			t.Fatalf("list %s: %v", seg, err)
		}
		if gotSegment != string(seg) {
			t.Errorf("route segment = %q, want %q", gotSegment, seg)
		}
	}
}

func TestRecipeCreate_MultipartForm(t *testing.T) {
	type received struct {
		name        string
		prepTime    string
		ingredients []model.Ingredient
		images      []string
	}
	var got received
	r := chi.NewRouter()
	r.Post("/api/recipes/add", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		got.name = req.FormValue("name")
		got.prepTime = req.FormValue("prepTime")
		if err := json.Unmarshal([]byte(req.FormValue("ingredients")), &got.ingredients); err != nil {
			t.Errorf("decode ingredients: %v", err)
		}
		for _, fh := range req.MultipartForm.File["images"] {
			got.images = append(got.images, fh.Filename)
		}
		respond(t, w, model.Recipe{ID: "r-new"}, "recipe added")
	})
	c := newTestClient(t, r, nil)

	payload := gateway.RecipePayload{
		Name:     "Tarator",
		PrepTime: 15,
		Ingredients: []model.Ingredient{
			{Name: "cucumber", Quantity: "1", Unit: "pc"},
			{Name: "yogurt", Quantity: "500", Unit: "g"},
		},
		Images: []gateway.File{
			{Name: "bowl.jpg", Content: []byte{0xff, 0xd8}},
			{Name: "closeup.jpg", Content: []byte{0xff, 0xd8}},
		},
	}
	res, err := c.Recipes().Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got.name != "Tarator" || got.prepTime != "15" {
		t.Errorf("form fields = %+v", got)
	}
	if len(got.ingredients) != 2 || got.ingredients[1].Name != "yogurt" {
		t.Errorf("ingredients = %+v", got.ingredients)
	}
	if len(got.images) != 2 || got.images[0] != "bowl.jpg" {
		t.Errorf("images = %v", got.images)
	}
	if res.Data.ID != "r-new" || res.Message != "recipe added" {
		t.Errorf("result = %+v", res)
	}
}

func TestRecipeModeration_Routes(t *testing.T) {
	var hits []string
	record := func(w http.ResponseWriter, req *http.Request) {
		hits = append(hits, req.Method+" "+req.URL.Path)
		respond(t, w, model.Recipe{}, "")
	}
	r := chi.NewRouter()
	r.Post("/api/recipes/{id}/approve", record)
	r.Post("/api/recipes/{id}/reject", record)
	c := newTestClient(t, r, nil)

	ctx := context.Background()
	if _, err := c.Recipes().Approve(ctx, "r1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := c.Recipes().Reject(ctx, "r2"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	want := []string{"POST /api/recipes/r1/approve", "POST /api/recipes/r2/reject"}
	for i, w := range want {
		if hits[i] != w {
			t.Errorf("hit[%d] = %q, want %q", i, hits[i], w)
		}
	}
}

func TestRecipeDelete_Routes(t *testing.T) {
	var hits []string
	r := chi.NewRouter()
	record := func(w http.ResponseWriter, req *http.Request) {
		hits = append(hits, req.Method+" "+req.URL.Path)
		respond(t, w, nil, "recipe deleted")
	}
	r.Delete("/api/recipes/{id}", record)
	r.Delete("/api/recipes/{id}/admin-delete", record)
	c := newTestClient(t, r, nil)

	ctx := context.Background()
	if _, err := c.Recipes().Delete(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Recipes().AdminDelete(ctx, "r2"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	want := []string{"DELETE /api/recipes/r1", "DELETE /api/recipes/r2/admin-delete"}
	for i, w := range want {
		if hits[i] != w {
			t.Errorf("hit[%d] = %q, want %q", i, hits[i], w)
		}
	}
}

func TestRecipeRate_Body(t *testing.T) {
	var gotBody struct {
		Rating int `json:"rating"`
	}
	r := chi.NewRouter()
	r.Post("/api/recipes/{id}/rate", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotBody)
		respond(t, w, model.Rating{AverageRating: 4.2, RatingCount: 5, UserRating: 4}, "thanks")
	})
	c := newTestClient(t, r, nil)

	res, err := c.Recipes().Rate(context.Background(), "r1", 4)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if gotBody.Rating != 4 {
		t.Errorf("body rating = %d, want 4", gotBody.Rating)
	}
	if res.Data.UserRating != 4 || res.Data.RatingCount != 5 {
		t.Errorf("rating = %+v", res.Data)
	}
}

func TestRecipeRandom_CountQuery(t *testing.T) {
	var gotCount string
	r := chi.NewRouter()
	r.Get("/api/recipes/random-recipes", func(w http.ResponseWriter, req *http.Request) {
		gotCount = req.URL.Query().Get("count")
		respond(t, w, []model.Recipe{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}, "")
	})
	c := newTestClient(t, r, nil)

	res, err := c.Recipes().Random(context.Background(), 3)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if gotCount != "3" {
		t.Errorf("count = %q, want 3", gotCount)
	}
	if len(res.Data) != 3 {
		t.Errorf("got %d recipes", len(res.Data))
	}
}
