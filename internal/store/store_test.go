package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
	"github.com/mkolev/recipe-club/internal/store"
)

// recorder captures notifications for assertions.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	r.successes = append(r.successes, msg)
	r.mu.Unlock()
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	r.errors = append(r.errors, msg)
	r.mu.Unlock()
}

func (r *recorder) Info(msg string) {
	r.mu.Lock()
	r.infos = append(r.infos, msg)
	r.mu.Unlock()
}

func (r *recorder) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

// navRecorder captures redirects.
type navRecorder struct {
	mu     sync.Mutex
	routes []string
}

func (n *navRecorder) NavigateTo(route string) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	n.mu.Unlock()
}

func (n *navRecorder) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

// waitFor blocks until pred holds, failing the test after two seconds.
func waitFor(t *testing.T, w store.Watchable, pred func() bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Await(ctx, w, pred); err != nil {
		t.Fatalf("condition not reached: %v", err)
	}
}

// eventually polls pred for side effects that happen after the store's
// final broadcast (navigation, notifications).
func eventually(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

// listCall records one recipe list fetch.
type listCall struct {
	filters model.RecipeFilters
	segment gateway.Segment
}

// fakeRecipeGateway lets each test script the gateway per method. Nil
// functions mean "succeed with zero value".
type fakeRecipeGateway struct {
	mu        sync.Mutex
	listCalls []listCall

	listFn    func(model.RecipeFilters, gateway.Segment) (gateway.Result[gateway.RecipeList], error)
	getFn     func(string, gateway.Segment) (gateway.Result[model.Recipe], error)
	createFn  func(gateway.RecipePayload) (gateway.Result[model.Recipe], error)
	updateFn  func(string, gateway.RecipePayload) (gateway.Result[model.Recipe], error)
	deleteFn  func(string) (gateway.Result[gateway.NoData], error)
	randomFn  func(int) (gateway.Result[[]model.Recipe], error)
	lookupsFn func() (gateway.Result[model.RecipeLookups], error)
	approveFn func(string) (gateway.Result[model.Recipe], error)
	rejectFn  func(string) (gateway.Result[model.Recipe], error)
	rateFn    func(string, int) (gateway.Result[model.Rating], error)
}

func (f *fakeRecipeGateway) recordList(filters model.RecipeFilters, segment gateway.Segment) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, listCall{filters: filters, segment: segment})
	f.mu.Unlock()
}

func (f *fakeRecipeGateway) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func (f *fakeRecipeGateway) lastListCall() listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[len(f.listCalls)-1]
}

func (f *fakeRecipeGateway) List(_ context.Context, filters model.RecipeFilters, segment gateway.Segment) (gateway.Result[gateway.RecipeList], error) {
	f.recordList(filters, segment)
	if f.listFn != nil {
		return f.listFn(filters, segment)
	}
	return gateway.Result[gateway.RecipeList]{}, nil
}

func (f *fakeRecipeGateway) GetByID(_ context.Context, id string, segment gateway.Segment) (gateway.Result[model.Recipe], error) {
	if f.getFn != nil {
		return f.getFn(id, segment)
	}
	return gateway.Result[model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Create(_ context.Context, payload gateway.RecipePayload) (gateway.Result[model.Recipe], error) {
	if f.createFn != nil {
		return f.createFn(payload)
	}
	return gateway.Result[model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Update(_ context.Context, id string, payload gateway.RecipePayload) (gateway.Result[model.Recipe], error) {
	if f.updateFn != nil {
		return f.updateFn(id, payload)
	}
	return gateway.Result[model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Delete(_ context.Context, id string) (gateway.Result[gateway.NoData], error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeRecipeGateway) AdminDelete(_ context.Context, id string) (gateway.Result[gateway.NoData], error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeRecipeGateway) Random(_ context.Context, count int) (gateway.Result[[]model.Recipe], error) {
	if f.randomFn != nil {
		return f.randomFn(count)
	}
	return gateway.Result[[]model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Lookups(_ context.Context) (gateway.Result[model.RecipeLookups], error) {
	if f.lookupsFn != nil {
		return f.lookupsFn()
	}
	return gateway.Result[model.RecipeLookups]{}, nil
}

func (f *fakeRecipeGateway) Approve(_ context.Context, id string) (gateway.Result[model.Recipe], error) {
	if f.approveFn != nil {
		return f.approveFn(id)
	}
	return gateway.Result[model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Reject(_ context.Context, id string) (gateway.Result[model.Recipe], error) {
	if f.rejectFn != nil {
		return f.rejectFn(id)
	}
	return gateway.Result[model.Recipe]{}, nil
}

func (f *fakeRecipeGateway) Rate(_ context.Context, id string, rating int) (gateway.Result[model.Rating], error) {
	if f.rateFn != nil {
		return f.rateFn(id, rating)
	}
	return gateway.Result[model.Rating]{}, nil
}

// fakeFavoriteGateway scripts the favorites endpoints.
type fakeFavoriteGateway struct {
	mu            sync.Mutex
	detailedCalls []model.FavoritesParams
	addCalls      int
	removeCalls   int

	listIDsFn  func() (gateway.Result[[]string], error)
	addFn      func(string) (gateway.Result[gateway.NoData], error)
	removeFn   func(string) (gateway.Result[gateway.NoData], error)
	detailedFn func(model.FavoritesParams) (gateway.Result[gateway.RecipeList], error)
}

func (f *fakeFavoriteGateway) ListIDs(_ context.Context) (gateway.Result[[]string], error) {
	if f.listIDsFn != nil {
		return f.listIDsFn()
	}
	return gateway.Result[[]string]{}, nil
}

func (f *fakeFavoriteGateway) Add(_ context.Context, recipeID string) (gateway.Result[gateway.NoData], error) {
	f.mu.Lock()
	f.addCalls++
	f.mu.Unlock()
	if f.addFn != nil {
		return f.addFn(recipeID)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeFavoriteGateway) Remove(_ context.Context, recipeID string) (gateway.Result[gateway.NoData], error) {
	f.mu.Lock()
	f.removeCalls++
	f.mu.Unlock()
	if f.removeFn != nil {
		return f.removeFn(recipeID)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeFavoriteGateway) ListDetailed(_ context.Context, params model.FavoritesParams) (gateway.Result[gateway.RecipeList], error) {
	f.mu.Lock()
	f.detailedCalls = append(f.detailedCalls, params)
	f.mu.Unlock()
	if f.detailedFn != nil {
		return f.detailedFn(params)
	}
	return gateway.Result[gateway.RecipeList]{}, nil
}

func (f *fakeFavoriteGateway) detailedCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.detailedCalls)
}

// fakeUserGateway scripts the user endpoints.
type fakeUserGateway struct {
	mu           sync.Mutex
	listAllCalls []model.UserFilters

	loginFn    func(model.LoginRequest) (gateway.Result[model.AuthResponse], error)
	signupFn   func(model.SignupRequest) (gateway.Result[model.AuthResponse], error)
	forgotFn   func(string) (gateway.Result[gateway.NoData], error)
	resetFn    func(string, string) (gateway.Result[gateway.NoData], error)
	updateFn   func(string, gateway.ProfilePayload) (gateway.Result[model.User], error)
	listAllFn  func(model.UserFilters) (gateway.Result[gateway.UserList], error)
	promoteFn  func(string) (gateway.Result[model.User], error)
	demoteFn   func(string) (gateway.Result[model.User], error)
	adminDelFn func(string) (gateway.Result[model.User], error)
}

func (f *fakeUserGateway) Login(_ context.Context, req model.LoginRequest) (gateway.Result[model.AuthResponse], error) {
	if f.loginFn != nil {
		return f.loginFn(req)
	}
	return gateway.Result[model.AuthResponse]{}, nil
}

func (f *fakeUserGateway) Signup(_ context.Context, req model.SignupRequest) (gateway.Result[model.AuthResponse], error) {
	if f.signupFn != nil {
		return f.signupFn(req)
	}
	return gateway.Result[model.AuthResponse]{}, nil
}

func (f *fakeUserGateway) ForgotPassword(_ context.Context, email string) (gateway.Result[gateway.NoData], error) {
	if f.forgotFn != nil {
		return f.forgotFn(email)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeUserGateway) ResetPassword(_ context.Context, token, newPassword string) (gateway.Result[gateway.NoData], error) {
	if f.resetFn != nil {
		return f.resetFn(token, newPassword)
	}
	return gateway.Result[gateway.NoData]{}, nil
}

func (f *fakeUserGateway) UpdateProfile(_ context.Context, userID string, payload gateway.ProfilePayload) (gateway.Result[model.User], error) {
	if f.updateFn != nil {
		return f.updateFn(userID, payload)
	}
	return gateway.Result[model.User]{}, nil
}

func (f *fakeUserGateway) ListAll(_ context.Context, filters model.UserFilters) (gateway.Result[gateway.UserList], error) {
	f.mu.Lock()
	f.listAllCalls = append(f.listAllCalls, filters)
	f.mu.Unlock()
	if f.listAllFn != nil {
		return f.listAllFn(filters)
	}
	return gateway.Result[gateway.UserList]{}, nil
}

func (f *fakeUserGateway) listAllCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listAllCalls)
}

func (f *fakeUserGateway) Promote(_ context.Context, userID string) (gateway.Result[model.User], error) {
	if f.promoteFn != nil {
		return f.promoteFn(userID)
	}
	return gateway.Result[model.User]{}, nil
}

func (f *fakeUserGateway) Demote(_ context.Context, userID string) (gateway.Result[model.User], error) {
	if f.demoteFn != nil {
		return f.demoteFn(userID)
	}
	return gateway.Result[model.User]{}, nil
}

func (f *fakeUserGateway) AdminDelete(_ context.Context, userID string) (gateway.Result[model.User], error) {
	if f.adminDelFn != nil {
		return f.adminDelFn(userID)
	}
	return gateway.Result[model.User]{}, nil
}

// fakeArticleGateway scripts the article endpoints.
type fakeArticleGateway struct {
	categoriesFn func() (gateway.Result[[]model.ArticleCategory], error)
	listFn       func(string, int, int) (gateway.Result[gateway.ArticleList], error)
	getFn        func(string) (gateway.Result[model.Article], error)
	createFn     func(gateway.ArticlePayload) (gateway.Result[model.Article], error)
	updateFn     func(string, gateway.ArticlePayload) (gateway.Result[model.Article], error)
	deleteFn     func(string) (gateway.Result[model.Article], error)
}

func (f *fakeArticleGateway) Categories(_ context.Context) (gateway.Result[[]model.ArticleCategory], error) {
	if f.categoriesFn != nil {
		return f.categoriesFn()
	}
	return gateway.Result[[]model.ArticleCategory]{}, nil
}

func (f *fakeArticleGateway) ListByCategory(_ context.Context, categoryID string, page, pageSize int) (gateway.Result[gateway.ArticleList], error) {
	if f.listFn != nil {
		return f.listFn(categoryID, page, pageSize)
	}
	return gateway.Result[gateway.ArticleList]{}, nil
}

func (f *fakeArticleGateway) GetByID(_ context.Context, id string) (gateway.Result[model.Article], error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return gateway.Result[model.Article]{}, nil
}

func (f *fakeArticleGateway) Create(_ context.Context, payload gateway.ArticlePayload) (gateway.Result[model.Article], error) {
	if f.createFn != nil {
		return f.createFn(payload)
	}
	return gateway.Result[model.Article]{}, nil
}

func (f *fakeArticleGateway) Update(_ context.Context, id string, payload gateway.ArticlePayload) (gateway.Result[model.Article], error) {
	if f.updateFn != nil {
		return f.updateFn(id, payload)
	}
	return gateway.Result[model.Article]{}, nil
}

func (f *fakeArticleGateway) Delete(_ context.Context, id string) (gateway.Result[model.Article], error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return gateway.Result[model.Article]{}, nil
}

func makeRecipes(ids ...string) []model.Recipe {
	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Recipe{ID: id, Name: "recipe " + id})
	}
	return out
}
