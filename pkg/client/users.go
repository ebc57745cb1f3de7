package client

import (
	"context"
	"net/http"
)

// UsersAPI covers /users.
type UsersAPI struct{ c *Client }

// Register creates an account and stores the returned session.
func (a *UsersAPI) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if err := a.c.do(ctx, http.MethodPost, "/users/register", req, &out); err != nil {
		return nil, err
	}
	if err := a.c.session.Save(out.User, out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in and stores the returned session.
func (a *UsersAPI) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := a.c.do(ctx, http.MethodPost, "/users/login", body, &out); err != nil {
		return nil, err
	}
	if err := a.c.session.Save(out.User, out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the stored session. The server keeps no session state.
func (a *UsersAPI) Logout() error {
	return a.c.session.Clear()
}

func (a *UsersAPI) List(ctx context.Context) ([]User, error) {
	var out []User
	return out, a.c.do(ctx, http.MethodGet, "/users", nil, &out)
}

func (a *UsersAPI) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := a.c.do(ctx, http.MethodGet, pathf("/users/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes a profile. Updating the signed-in user refreshes the stored copy.
func (a *UsersAPI) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out User
	if err := a.c.do(ctx, http.MethodPut, pathf("/users/%s", id), req, &out); err != nil {
		return nil, err
	}
	if state := a.c.session.State(); state.UserID == out.ID {
		if err := a.c.session.Save(out, state.Token); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (a *UsersAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, pathf("/users/%s", id), nil, nil)
}

func (a *UsersAPI) Activities(ctx context.Context, id string) ([]Activity, error) {
	var out []Activity
	return out, a.c.do(ctx, http.MethodGet, pathf("/users/%s/activities", id), nil, &out)
}
