// Package gateway is the typed REST client for the Recipe Club API. Every
// call decodes the server's {data, message, success} envelope into a
// Result[T] or returns a *gateway.Error carrying the backend's message.
package gateway

import (
	"context"
	"fmt"

	"github.com/mkolev/recipe-club/internal/model"
)

// Segment selects the server-side collection view for recipe endpoints.
// The endpoint shape is identical; authorization and data scope differ.
type Segment string

const (
	SegmentAll   Segment = "all"
	SegmentMy    Segment = "my"
	SegmentAdmin Segment = "admin"
)

// Result is the decoded success envelope of a gateway call.
type Result[T any] struct {
	Data    T
	Message string
}

// NoData marks calls whose response payload the client does not consume.
type NoData struct{}

// Error is a non-success response from the API. Message may be empty when
// the backend omits one; callers are expected to substitute their own
// fallback before showing it to a user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// MessageOf extracts the backend-provided message from err, or returns
// fallback when err is not a *Error or carries no message.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if asError(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// RecipeList is the payload of a paginated recipe fetch.
type RecipeList struct {
	Recipes      []model.Recipe `json:"recipes"`
	TotalResults int            `json:"totalResults"`
}

// UserList is the payload of the admin user listing.
type UserList struct {
	Users        []model.User `json:"users"`
	TotalResults int          `json:"totalResults"`
}

// ArticleList is the payload of a per-category article page.
type ArticleList struct {
	Articles     []model.Article `json:"articles"`
	TotalResults int             `json:"totalResults"`
}

// File is an uploaded file part of a multipart payload.
type File struct {
	Name    string
	Content []byte
}

// RecipePayload is the multipart body for recipe create/update. Ingredients
// and instructions travel as JSON form fields, images as file parts.
type RecipePayload struct {
	Name                 string
	Description          string
	CategoryID           string
	TypeOfProcessingID   string
	DegreeOfDifficultyID string
	PrepTime             int
	CookTime             int
	Servings             int
	Ingredients          []model.Ingredient
	Instructions         []model.Instruction
	Images               []File
}

// ParagraphPayload is one ordered paragraph of an article payload. Image is
// optional; SortOrder fixes its position.
type ParagraphPayload struct {
	Title       string
	Description string
	SortOrder   int
	Image       *File
}

// ArticlePayload is the multipart body for article create/update.
type ArticlePayload struct {
	Name        string
	Description string
	CategoryID  string
	MainImage   *File
	Paragraphs  []ParagraphPayload
}

// RecipeGateway covers the recipe endpoints.
type RecipeGateway interface {
	List(ctx context.Context, filters model.RecipeFilters, segment Segment) (Result[RecipeList], error)
	GetByID(ctx context.Context, id string, segment Segment) (Result[model.Recipe], error)
	Create(ctx context.Context, payload RecipePayload) (Result[model.Recipe], error)
	Update(ctx context.Context, id string, payload RecipePayload) (Result[model.Recipe], error)
	Delete(ctx context.Context, id string) (Result[NoData], error)
	AdminDelete(ctx context.Context, id string) (Result[NoData], error)
	Random(ctx context.Context, count int) (Result[[]model.Recipe], error)
	Lookups(ctx context.Context) (Result[model.RecipeLookups], error)
	Approve(ctx context.Context, id string) (Result[model.Recipe], error)
	Reject(ctx context.Context, id string) (Result[model.Recipe], error)
	Rate(ctx context.Context, id string, rating int) (Result[model.Rating], error)
}

// ArticleGateway covers the article endpoints.
type ArticleGateway interface {
	Categories(ctx context.Context) (Result[[]model.ArticleCategory], error)
	ListByCategory(ctx context.Context, categoryID string, page, pageSize int) (Result[ArticleList], error)
	GetByID(ctx context.Context, id string) (Result[model.Article], error)
	Create(ctx context.Context, payload ArticlePayload) (Result[model.Article], error)
	Update(ctx context.Context, id string, payload ArticlePayload) (Result[model.Article], error)
	Delete(ctx context.Context, id string) (Result[model.Article], error)
}

// UserGateway covers authentication, profile and admin user endpoints.
type UserGateway interface {
	Login(ctx context.Context, req model.LoginRequest) (Result[model.AuthResponse], error)
	Signup(ctx context.Context, req model.SignupRequest) (Result[model.AuthResponse], error)
	ForgotPassword(ctx context.Context, email string) (Result[NoData], error)
	ResetPassword(ctx context.Context, token, newPassword string) (Result[NoData], error)
	UpdateProfile(ctx context.Context, userID string, payload ProfilePayload) (Result[model.User], error)
	ListAll(ctx context.Context, filters model.UserFilters) (Result[UserList], error)
	Promote(ctx context.Context, userID string) (Result[model.User], error)
	Demote(ctx context.Context, userID string) (Result[model.User], error)
	AdminDelete(ctx context.Context, userID string) (Result[model.User], error)
}

// ProfilePayload is the multipart body for profile updates. Avatar is
// optional.
type ProfilePayload struct {
	Username    string
	Name        string
	Email       string
	Gender      string
	DateOfBirth string
	Avatar      *File
}

// FavoriteGateway covers the favorites endpoints.
type FavoriteGateway interface {
	ListIDs(ctx context.Context) (Result[[]string], error)
	Add(ctx context.Context, recipeID string) (Result[NoData], error)
	Remove(ctx context.Context, recipeID string) (Result[NoData], error)
	ListDetailed(ctx context.Context, params model.FavoritesParams) (Result[RecipeList], error)
}
