package store

import (
	"context"
	"slices"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
	"github.com/mkolev/recipe-club/internal/notify"
)

// FavoriteState is the read snapshot of the favorite store.
type FavoriteState struct {
	FavoriteRecipeIDs []string
	FavoriteRecipes   []model.Recipe
	Params            model.FavoritesParams
	Loading           bool
	Error             string
	TotalResults      int
}

// FavoriteStore owns the logged-in user's favorite recipe ids and,
// independently, the detailed favorites page.
type FavoriteStore struct {
	pipeline
	gw gateway.FavoriteGateway

	idsOp      op
	detailedOp op

	favoriteIDs     []string
	favoriteRecipes []model.Recipe
	params          model.FavoritesParams
	totalResults    int
}

func NewFavoriteStore(gw gateway.FavoriteGateway, notifier notify.Notifier) *FavoriteStore {
	return &FavoriteStore{
		pipeline: newPipeline("favorites", notifier),
		gw:       gw,
		params:   model.DefaultFavoritesParams(),
	}
}

// State returns a copy of the current state.
func (s *FavoriteStore) State() FavoriteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FavoriteState{
		FavoriteRecipeIDs: s.favoriteIDs,
		FavoriteRecipes:   s.favoriteRecipes,
		Params:            s.params,
		Loading:           s.loading,
		Error:             s.err,
		TotalResults:      s.totalResults,
	}
}

// LoadFavorites replaces the favorite id collection with the server's.
// Callers are expected to invoke it only while logged in; the coordinator
// enforces that.
func (s *FavoriteStore) LoadFavorites(ctx context.Context) {
	token := s.idsOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.ListIDs(ctx)
		if err != nil {
			s.fail(&s.idsOp, token, err, "failed to load favorites", func() {
				s.favoriteIDs = nil
			})
			return
		}
		s.succeed(&s.idsOp, token, func() {
			s.favoriteIDs = res.Data
		})
	}()
}

// AddFavorite marks a recipe as favorite and appends its id on success.
func (s *FavoriteStore) AddFavorite(ctx context.Context, recipeID string) {
	s.start(nil)
	go func() {
		res, err := s.gw.Add(ctx, recipeID)
		if err != nil {
			s.fail(nil, 0, err, "failed to add favorite", nil)
			return
		}
		s.succeed(nil, 0, func() {
			s.favoriteIDs = append(slices.Clone(s.favoriteIDs), recipeID)
		})
		s.notifier.Success(res.Message)
	}()
}

// RemoveFavorite unmarks a recipe and filters its id out on success.
func (s *FavoriteStore) RemoveFavorite(ctx context.Context, recipeID string) {
	s.start(nil)
	go func() {
		res, err := s.gw.Remove(ctx, recipeID)
		if err != nil {
			s.fail(nil, 0, err, "failed to remove favorite", nil)
			return
		}
		s.succeed(nil, 0, func() {
			s.favoriteIDs = withoutID(s.favoriteIDs, recipeID)
		})
		s.notifier.Success(res.Message)
	}()
}

// ToggleFavorite adds or removes depending on current membership of the
// id. It does not run the loading discipline: the heart icon flips on
// response without blanking the surrounding view. When the detailed
// favorites list is already loaded, success re-fetches it with the current
// params so names, images and ratings stay consistent; an inactive detail
// view skips that round-trip.
func (s *FavoriteStore) ToggleFavorite(ctx context.Context, recipeID string) {
	s.mu.Lock()
	isFavorite := slices.Contains(s.favoriteIDs, recipeID)
	s.mu.Unlock()

	go func() {
		if isFavorite {
			res, err := s.gw.Remove(ctx, recipeID)
			if err != nil {
				s.toggleFailed(err, "failed to remove favorite")
				return
			}
			s.mu.Lock()
			s.favoriteIDs = withoutID(s.favoriteIDs, recipeID)
			s.mu.Unlock()
			s.bc.notify()
			s.notifier.Success(orDefault(res.Message, "recipe removed from favorites"))
		} else {
			res, err := s.gw.Add(ctx, recipeID)
			if err != nil {
				s.toggleFailed(err, "failed to add favorite")
				return
			}
			s.mu.Lock()
			s.favoriteIDs = append(slices.Clone(s.favoriteIDs), recipeID)
			s.mu.Unlock()
			s.bc.notify()
			s.notifier.Success(orDefault(res.Message, "recipe added to favorites"))
		}

		s.mu.Lock()
		detailLoaded := len(s.favoriteRecipes) > 0
		params := s.params
		s.mu.Unlock()
		if detailLoaded {
			s.LoadFavoriteRecipes(ctx, params)
		}
	}()
}

func (s *FavoriteStore) toggleFailed(err error, fallback string) {
	msg := gateway.MessageOf(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	s.notifier.Error(msg)
	s.bc.notify()
}

// LoadFavoriteRecipes fetches full recipes for the favorites view,
// independent of the id-only collection.
func (s *FavoriteStore) LoadFavoriteRecipes(ctx context.Context, params model.FavoritesParams) {
	token := s.detailedOp.begin()
	s.start(func() { s.params = params })
	go func() {
		res, err := s.gw.ListDetailed(ctx, params)
		if err != nil {
			s.fail(&s.detailedOp, token, err, "failed to load favorite recipes", func() {
				s.favoriteRecipes = nil
			})
			return
		}
		s.succeed(&s.detailedOp, token, func() {
			s.favoriteRecipes = res.Data.Recipes
			s.totalResults = res.Data.TotalResults
		})
	}()
}

// SetParams replaces the page descriptor without fetching.
func (s *FavoriteStore) SetParams(params model.FavoritesParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.bc.notify()
}

// ClearFavorites resets the id collection and error only; the detail list
// keeps whatever page it had.
func (s *FavoriteStore) ClearFavorites() {
	s.mu.Lock()
	s.favoriteIDs = nil
	s.err = ""
	s.mu.Unlock()
	s.bc.notify()
}

func (s *FavoriteStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.bc.notify()
}

func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
