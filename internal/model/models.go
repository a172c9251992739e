// Package model holds the domain entities exchanged with the Recipe Club API
// and the filter descriptors that drive paginated list fetches.
package model

import "time"

// Role values carried on User.Role.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// Recipe moderation states.
const (
	StatusActive   = "active"
	StatusRejected = "rejected"
	StatusPending  = "pending"
)

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	DateCreated string `json:"dateCreated,omitempty"`
	LastActive  string `json:"lastActive,omitempty"`
	Role        string `json:"role,omitempty"`
}

func (u *User) IsAdmin() bool      { return u != nil && u.Role == RoleAdmin }
func (u *User) IsSuperAdmin() bool { return u != nil && u.Role == RoleSuperAdmin }

type Rating struct {
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	UserRating    int     `json:"userRating"`
}

type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type Instruction struct {
	ID          string `json:"id"`
	SortOrder   int    `json:"sortOrder"`
	Description string `json:"description"`
}

type Image struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
	CreatedAt string `json:"createdAt"`
}

type Recipe struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"userId"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Category           string        `json:"category"`
	TypeOfProcessing   string        `json:"typeOfProcessing"`
	DegreeOfDifficulty string        `json:"degreeOfDifficulty"`
	PrepTime           int           `json:"prepTime"`
	CookTime           int           `json:"cookTime"`
	Servings           int           `json:"servings"`
	Status             string        `json:"status"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
	Ingredients        []Ingredient  `json:"ingredients"`
	Instructions       []Instruction `json:"instructions"`
	Images             []Image       `json:"images"`
	CreatedBy          string        `json:"createdBy"`
	Rating             Rating        `json:"rating"`
}

// LookupItem is one entry of a static reference list (categories, processing
// types, difficulty levels).
type LookupItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type RecipeLookups struct {
	Categories         []LookupItem `json:"categories"`
	ProcessingTypes    []LookupItem `json:"processingTypes"`
	DegreeOfDifficulty []LookupItem `json:"degreeOfDifficulty"`
}

type ArticleCategory struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl,omitempty"`
	SortOrder     int    `json:"sortOrder,omitempty"`
	ArticlesCount int    `json:"articlesCount,omitempty"`
}

type Paragraph struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	SortOrder   int    `json:"sortOrder"`
}

type Article struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"createdAt"`
	ArticleCategory ArticleCategory `json:"articleCategory"`
	Paragraphs      []Paragraph     `json:"paragraphs"`
	MainImageURL    string          `json:"mainImageUrl"`
}

// RecipeFilters is the filter/sort/pagination descriptor for recipe lists.
// Zero-valued optional fields are omitted from the outgoing query string.
type RecipeFilters struct {
	CurrentPage          int
	PageSize             int
	SearchText           string
	SearchByName         string
	Status               string
	CategoryID           string
	TypeOfProcessingID   string
	DegreeOfDifficultyID string
	SortBy               string
	SortOrder            string
	CreatedAtFrom        *time.Time
	CreatedAtTo          *time.Time
}

// DefaultRecipeFilters returns the filters applied before the user touches
// anything: first page of six, newest first.
func DefaultRecipeFilters() RecipeFilters {
	return RecipeFilters{
		CurrentPage: 1,
		PageSize:    6,
		SortBy:      "createdAt",
		SortOrder:   "desc",
	}
}

// UserFilters is the admin user-list descriptor.
type UserFilters struct {
	CurrentPage   int
	PageSize      int
	Name          string
	Email         string
	Gender        string
	Role          string
	SortBy        string
	SortOrder     string
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
}

func DefaultUserFilters() UserFilters {
	return UserFilters{
		CurrentPage: 1,
		PageSize:    10,
		SortBy:      "dateCreated",
		SortOrder:   "desc",
	}
}

// ArticleParams drives per-category article pages.
type ArticleParams struct {
	CurrentPage int
	PageSize    int
	CategoryID  string
}

func DefaultArticleParams() ArticleParams {
	return ArticleParams{CurrentPage: 1, PageSize: 10}
}

// FavoritesParams drives the detailed favorites list.
type FavoritesParams struct {
	CurrentPage int
	PageSize    int
}

func DefaultFavoritesParams() FavoritesParams {
	return FavoritesParams{CurrentPage: 1, PageSize: 100}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the profile fields collected at registration.
type SignupRequest struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Password    string `json:"password"`
}

// AuthResponse is the payload of a successful login or signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
