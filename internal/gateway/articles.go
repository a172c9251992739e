package gateway

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/mkolev/recipe-club/internal/model"
)

type articleClient struct {
	c *Client
}

func (a *articleClient) Categories(ctx context.Context) (Result[[]model.ArticleCategory], error) {
	return getJSON[[]model.ArticleCategory](ctx, a.c, "/api/articles/article-categories", nil)
}

func (a *articleClient) ListByCategory(ctx context.Context, categoryID string, page, pageSize int) (Result[ArticleList], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return getJSON[ArticleList](ctx, a.c, "/api/articles/article-categories/"+url.PathEscape(categoryID), q)
}

func (a *articleClient) GetByID(ctx context.Context, id string) (Result[model.Article], error) {
	return getJSON[model.Article](ctx, a.c, "/api/articles/"+url.PathEscape(id), nil)
}

func buildArticleForm(p ArticlePayload) func(w *multipart.Writer) error {
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
		if p.MainImage != nil {
			if err := writeFilePart(w, "mainImage", *p.MainImage); err != nil {
				return err
			}
		}
		// Paragraph text travels as one JSON field; each paragraph image is
		// a separate file part named after its sort order so the backend can
		// join them back up.
		type paragraphMeta struct {
			Title       string `json:"title,omitempty"`
			Description string `json:"description"`
			SortOrder   int    `json:"sortOrder"`
		}
		metas := make([]paragraphMeta, 0, len(p.Paragraphs))
		for _, par := range p.Paragraphs {
			metas = append(metas, paragraphMeta{
				Title:       par.Title,
				Description: par.Description,
				SortOrder:   par.SortOrder,
			})
		}
		if err := writeJSONField(w, "paragraphs", metas); err != nil {
			return err
		}
		for _, par := range p.Paragraphs {
			if par.Image == nil {
				continue
			}
			field := "paragraphImage_" + strconv.Itoa(par.SortOrder)
			if err := writeFilePart(w, field, *par.Image); err != nil {
				return err
			}
		}
		return nil
	}
}

func (a *articleClient) Create(ctx context.Context, payload ArticlePayload) (Result[model.Article], error) {
	return postMultipart[model.Article](ctx, a.c, "/api/articles/add-article", buildArticleForm(payload))
}

func (a *articleClient) Update(ctx context.Context, id string, payload ArticlePayload) (Result[model.Article], error) {
	return postMultipart[model.Article](ctx, a.c, "/api/articles/"+url.PathEscape(id), buildArticleForm(payload))
}

func (a *articleClient) Delete(ctx context.Context, id string) (Result[model.Article], error) {
	return del[model.Article](ctx, a.c, "/api/articles/delete-article/"+url.PathEscape(id))
}
