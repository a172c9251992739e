package store

import (
	"context"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
	"github.com/mkolev/recipe-club/internal/notify"
)

// RecipeState is the read snapshot of the recipe store.
type RecipeState struct {
	Recipes        []model.Recipe
	Loading        bool
	Error          string
	SelectedRecipe *model.Recipe
	Lookups        *model.RecipeLookups
	Params         model.RecipeFilters
	TotalResults   int
}

// RecipeStore owns recipe list/detail state, reference lookups and the
// moderation operations.
type RecipeStore struct {
	pipeline
	gw  gateway.RecipeGateway
	nav notify.Navigator

	loadOp    op
	lookupsOp op
	detailOp  op
	randomOp  op

	recipes        []model.Recipe
	selectedRecipe *model.Recipe
	lookups        *model.RecipeLookups
	params         model.RecipeFilters
	totalResults   int
}

func NewRecipeStore(gw gateway.RecipeGateway, notifier notify.Notifier, nav notify.Navigator) *RecipeStore {
	return &RecipeStore{
		pipeline: newPipeline("recipes", notifier),
		gw:       gw,
		nav:      nav,
		lookups:  &model.RecipeLookups{},
		params:   model.DefaultRecipeFilters(),
	}
}

// State returns a copy of the current state.
func (s *RecipeStore) State() RecipeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RecipeState{
		Recipes:        s.recipes,
		Loading:        s.loading,
		Error:          s.err,
		SelectedRecipe: s.selectedRecipe,
		Lookups:        s.lookups,
		Params:         s.params,
		TotalResults:   s.totalResults,
	}
}

// LoadRecipes fetches one page of the segment's collection view and
// replaces the list. The input filters become the store's params as-is.
func (s *RecipeStore) LoadRecipes(ctx context.Context, filters model.RecipeFilters, segment gateway.Segment) {
	token := s.loadOp.begin()
	s.start(func() { s.params = filters })
	go func() {
		res, err := s.gw.List(ctx, filters, segment)
		if err != nil {
			s.fail(&s.loadOp, token, err, "failed to load recipes", func() {
				s.recipes = nil
				s.totalResults = 0
			})
			return
		}
		s.succeed(&s.loadOp, token, func() {
			s.recipes = res.Data.Recipes
			s.totalResults = res.Data.TotalResults
		})
	}()
}

// LoadLookups fetches the static filter reference data. On failure the
// lookups are cleared entirely rather than left partial.
func (s *RecipeStore) LoadLookups(ctx context.Context) {
	token := s.lookupsOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.Lookups(ctx)
		if err != nil {
			s.fail(&s.lookupsOp, token, err, "failed to load reference data", func() {
				s.lookups = nil
			})
			return
		}
		s.succeed(&s.lookupsOp, token, func() {
			lk := res.Data
			s.lookups = &lk
		})
	}()
}

// LoadRecipeDetails fetches a single recipe into SelectedRecipe.
func (s *RecipeStore) LoadRecipeDetails(ctx context.Context, id string, segment gateway.Segment) {
	token := s.detailOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.GetByID(ctx, id, segment)
		if err != nil {
			s.fail(&s.detailOp, token, err, "failed to load recipe", func() {
				s.selectedRecipe = nil
			})
			return
		}
		s.succeed(&s.detailOp, token, func() {
			r := res.Data
			s.selectedRecipe = &r
		})
	}()
}

// AddRecipe submits a new recipe and, on success, navigates to the
// caller's own recipe list.
func (s *RecipeStore) AddRecipe(ctx context.Context, payload gateway.RecipePayload) {
	s.start(nil)
	go func() {
		res, err := s.gw.Create(ctx, payload)
		if err != nil {
			s.fail(nil, 0, err, "failed to add recipe", nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
		s.nav.NavigateTo("/recipes/my")
	}()
}

// UpdateRecipe submits changed recipe data. On success the matching list
// entry is patched in place from the response (keeping its id) instead of
// re-fetching the page.
func (s *RecipeStore) UpdateRecipe(ctx context.Context, id string, payload gateway.RecipePayload) {
	s.start(nil)
	go func() {
		res, err := s.gw.Update(ctx, id, payload)
		if err != nil {
			s.fail(nil, 0, err, "failed to update recipe", nil)
			return
		}
		s.succeed(nil, 0, func() {
			updated := make([]model.Recipe, len(s.recipes))
			for i, r := range s.recipes {
				if r.ID == id {
					merged := res.Data
					merged.ID = id
					updated[i] = merged
				} else {
					updated[i] = r
				}
			}
			s.recipes = updated
		})
		s.notifier.Success(res.Message)
		s.nav.NavigateTo("/recipes/my/" + id)
	}()
}

// DeleteRecipe removes one of the caller's recipes. Success re-fetches the
// "my" segment with the current params so pagination totals stay correct.
func (s *RecipeStore) DeleteRecipe(ctx context.Context, id string) {
	s.deleteAndReload(ctx, id, gateway.SegmentMy, s.gw.Delete)
}

// AdminDeleteRecipe removes any recipe; success re-fetches the admin
// segment.
func (s *RecipeStore) AdminDeleteRecipe(ctx context.Context, id string) {
	s.deleteAndReload(ctx, id, gateway.SegmentAdmin, s.gw.AdminDelete)
}

func (s *RecipeStore) deleteAndReload(ctx context.Context, id string, segment gateway.Segment, call func(context.Context, string) (gateway.Result[gateway.NoData], error)) {
	s.start(nil)
	go func() {
		res, err := call(ctx, id)
		if err != nil {
			s.fail(nil, 0, err, "failed to delete recipe", nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
		s.mu.Lock()
		params := s.params
		s.mu.Unlock()
		s.LoadRecipes(ctx, params, segment)
	}()
}

// ApproveRecipe moves a pending recipe to active; the admin list is
// re-fetched with pageSize pinned to the moderation view's ten rows.
func (s *RecipeStore) ApproveRecipe(ctx context.Context, id string) {
	s.moderate(ctx, id, s.gw.Approve, "failed to approve recipe")
}

// RejectRecipe moves a pending recipe to rejected.
func (s *RecipeStore) RejectRecipe(ctx context.Context, id string) {
	s.moderate(ctx, id, s.gw.Reject, "failed to reject recipe")
}

func (s *RecipeStore) moderate(ctx context.Context, id string, call func(context.Context, string) (gateway.Result[model.Recipe], error), fallback string) {
	s.start(nil)
	go func() {
		res, err := call(ctx, id)
		if err != nil {
			s.fail(nil, 0, err, fallback, nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
		s.mu.Lock()
		params := s.params
		s.mu.Unlock()
		params.PageSize = 10
		s.LoadRecipes(ctx, params, gateway.SegmentAdmin)
	}()
}

// RateRecipe submits a rating and patches only the selected recipe's
// rating sub-field; the list collection is untouched.
func (s *RecipeStore) RateRecipe(ctx context.Context, id string, rating int) {
	s.start(nil)
	go func() {
		res, err := s.gw.Rate(ctx, id, rating)
		if err != nil {
			s.fail(nil, 0, err, "failed to rate recipe", nil)
			return
		}
		s.succeed(nil, 0, func() {
			if s.selectedRecipe != nil {
				updated := *s.selectedRecipe
				updated.Rating = res.Data
				s.selectedRecipe = &updated
			}
		})
		s.notifier.Success(res.Message)
	}()
}

// GetRandomRecipes replaces the list with a homepage teaser, independent
// of params and pagination.
func (s *RecipeStore) GetRandomRecipes(ctx context.Context, count int) {
	token := s.randomOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.Random(ctx, count)
		if err != nil {
			s.fail(&s.randomOp, token, err, "failed to load recipes", func() {
				s.recipes = nil
			})
			return
		}
		s.succeed(&s.randomOp, token, func() {
			s.recipes = res.Data
		})
	}()
}

// SetParams replaces the filter descriptor without fetching.
func (s *RecipeStore) SetParams(params model.RecipeFilters) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.bc.notify()
}

// ClearParams resets the filter descriptor to its defaults.
func (s *RecipeStore) ClearParams() {
	s.SetParams(model.DefaultRecipeFilters())
}

func (s *RecipeStore) ClearRecipes() {
	s.mu.Lock()
	s.recipes = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *RecipeStore) ClearSelectedRecipe() {
	s.mu.Lock()
	s.selectedRecipe = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *RecipeStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.bc.notify()
}
