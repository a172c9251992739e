package gateway

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/mkolev/recipe-club/internal/model"
)

type userClient struct {
	c *Client
}

func (u *userClient) Login(ctx context.Context, req model.LoginRequest) (Result[model.AuthResponse], error) {
	return postJSON[model.AuthResponse](ctx, u.c, "/api/auth/login", req)
}

func (u *userClient) Signup(ctx context.Context, req model.SignupRequest) (Result[model.AuthResponse], error) {
	return postJSON[model.AuthResponse](ctx, u.c, "/api/auth/register", req)
}

func (u *userClient) ForgotPassword(ctx context.Context, email string) (Result[NoData], error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return postJSON[NoData](ctx, u.c, "/api/auth/forgot-password", body)
}

func (u *userClient) ResetPassword(ctx context.Context, token, newPassword string) (Result[NoData], error) {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{Token: token, NewPassword: newPassword}
	return postJSON[NoData](ctx, u.c, "/api/auth/reset-password", body)
}

func (u *userClient) UpdateProfile(ctx context.Context, userID string, payload ProfilePayload) (Result[model.User], error) {
	build := func(w *multipart.Writer) error {
		fields := map[string]string{
			"username":    payload.Username,
			"name":        payload.Name,
			"email":       payload.Email,
			"gender":      payload.Gender,
			"dateOfBirth": payload.DateOfBirth,
		}
		for k, v := range fields {
			if v == "" {
				continue
			}
			if err := w.WriteField(k, v); err != nil {
				return err
			}
		}
		if payload.Avatar != nil {
			return writeFilePart(w, "avatar", *payload.Avatar)
		}
		return nil
	}
	return postMultipart[model.User](ctx, u.c, "/api/users/"+url.PathEscape(userID), build)
}

func userQuery(f model.UserFilters) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.CurrentPage))
	q.Set("pageSize", strconv.Itoa(f.PageSize))
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
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

func (u *userClient) ListAll(ctx context.Context, filters model.UserFilters) (Result[UserList], error) {
	return getJSON[UserList](ctx, u.c, "/api/users/all-users", userQuery(filters))
}

func (u *userClient) Promote(ctx context.Context, userID string) (Result[model.User], error) {
	return postJSON[model.User](ctx, u.c, "/api/users/"+url.PathEscape(userID)+"/promote", nil)
}

func (u *userClient) Demote(ctx context.Context, userID string) (Result[model.User], error) {
	return postJSON[model.User](ctx, u.c, "/api/users/"+url.PathEscape(userID)+"/demote", nil)
}

func (u *userClient) AdminDelete(ctx context.Context, userID string) (Result[model.User], error) {
	return del[model.User](ctx, u.c, "/api/users/"+url.PathEscape(userID))
}
