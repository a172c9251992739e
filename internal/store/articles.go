package store

import (
	"context"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
	"github.com/mkolev/recipe-club/internal/notify"
)

// ArticleState is the read snapshot of the article store.
type ArticleState struct {
	Categories       []model.ArticleCategory
	SelectedCategory *model.ArticleCategory
	Loading          bool
	Error            string
	Articles         []model.Article
	SelectedArticle  *model.Article
	Params           model.ArticleParams
	TotalResults     int
}

// ArticleStore owns the article category list and per-category pages.
type ArticleStore struct {
	pipeline
	gw  gateway.ArticleGateway
	nav notify.Navigator

	categoriesOp op
	listOp       op
	detailOp     op

	categories       []model.ArticleCategory
	selectedCategory *model.ArticleCategory
	articles         []model.Article
	selectedArticle  *model.Article
	params           model.ArticleParams
	totalResults     int
}

func NewArticleStore(gw gateway.ArticleGateway, notifier notify.Notifier, nav notify.Navigator) *ArticleStore {
	return &ArticleStore{
		pipeline: newPipeline("articles", notifier),
		gw:       gw,
		nav:      nav,
		params:   model.DefaultArticleParams(),
	}
}

// State returns a copy of the current state.
func (s *ArticleStore) State() ArticleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ArticleState{
		Categories:       s.categories,
		SelectedCategory: s.selectedCategory,
		Loading:          s.loading,
		Error:            s.err,
		Articles:         s.articles,
		SelectedArticle:  s.selectedArticle,
		Params:           s.params,
		TotalResults:     s.totalResults,
	}
}

// GetArticleCategories fetches the category listing.
func (s *ArticleStore) GetArticleCategories(ctx context.Context) {
	token := s.categoriesOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.Categories(ctx)
		if err != nil {
			s.fail(&s.categoriesOp, token, err, "failed to load article categories", func() {
				s.categories = nil
			})
			return
		}
		s.succeed(&s.categoriesOp, token, func() {
			s.categories = res.Data
		})
	}()
}

// GetArticlesByCategory fetches one page of the category's articles using
// the store's current page/pageSize. The selected category is derived from
// the first returned article's embedded category; an empty page leaves it
// nil and callers fall back to the category list they already hold.
func (s *ArticleStore) GetArticlesByCategory(ctx context.Context, categoryID string) {
	token := s.listOp.begin()
	var page, pageSize int
	s.start(func() {
		s.params.CategoryID = categoryID
		page = s.params.CurrentPage
		pageSize = s.params.PageSize
	})
	go func() {
		res, err := s.gw.ListByCategory(ctx, categoryID, page, pageSize)
		if err != nil {
			s.fail(&s.listOp, token, err, "failed to load articles", func() {
				s.articles = nil
				s.totalResults = 0
			})
			return
		}
		s.succeed(&s.listOp, token, func() {
			s.articles = res.Data.Articles
			s.totalResults = res.Data.TotalResults
			if len(res.Data.Articles) > 0 {
				cat := res.Data.Articles[0].ArticleCategory
				s.selectedCategory = &cat
			} else {
				s.selectedCategory = nil
			}
		})
	}()
}

// GetArticleByID fetches a single article into SelectedArticle.
func (s *ArticleStore) GetArticleByID(ctx context.Context, id string) {
	token := s.detailOp.begin()
	s.start(nil)
	go func() {
		res, err := s.gw.GetByID(ctx, id)
		if err != nil {
			s.fail(&s.detailOp, token, err, "failed to load article", func() {
				s.selectedArticle = nil
			})
			return
		}
		s.succeed(&s.detailOp, token, func() {
			a := res.Data
			s.selectedArticle = &a
		})
	}()
}

// CreateArticle submits a new article; success navigates back to the
// category list.
func (s *ArticleStore) CreateArticle(ctx context.Context, payload gateway.ArticlePayload) {
	s.mutate(ctx, "failed to create article", func(ctx context.Context) (string, error) {
		res, err := s.gw.Create(ctx, payload)
		return res.Message, err
	})
}

// UpdateArticle submits changed article data; success navigates back to
// the category list.
func (s *ArticleStore) UpdateArticle(ctx context.Context, id string, payload gateway.ArticlePayload) {
	s.mutate(ctx, "failed to update article", func(ctx context.Context) (string, error) {
		res, err := s.gw.Update(ctx, id, payload)
		return res.Message, err
	})
}

// DeleteArticle removes an article; success navigates back to the
// category list.
func (s *ArticleStore) DeleteArticle(ctx context.Context, id string) {
	s.mutate(ctx, "failed to delete article", func(ctx context.Context) (string, error) {
		res, err := s.gw.Delete(ctx, id)
		return res.Message, err
	})
}

func (s *ArticleStore) mutate(ctx context.Context, fallback string, call func(context.Context) (string, error)) {
	s.start(nil)
	go func() {
		msg, err := call(ctx)
		if err != nil {
			s.fail(nil, 0, err, fallback, nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(msg)
		s.nav.NavigateTo("/article-categories")
	}()
}

// SetParams replaces the page descriptor without fetching.
func (s *ArticleStore) SetParams(params model.ArticleParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.bc.notify()
}

func (s *ArticleStore) ClearSelectedArticle() {
	s.mu.Lock()
	s.selectedArticle = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *ArticleStore) ClearSelectedCategory() {
	s.mu.Lock()
	s.selectedCategory = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *ArticleStore) ClearArticles() {
	s.mu.Lock()
	s.articles = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *ArticleStore) ClearCategories() {
	s.mu.Lock()
	s.categories = nil
	s.mu.Unlock()
	s.bc.notify()
}
