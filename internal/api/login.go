package api

import (
	"context"
	"net/http"

	"github.com/sahaj/followup/internal/domain"
)

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type loginUser struct {
	domain.User
	Role *domain.Role `json:"role,omitempty"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login authenticates by mobile and password. The returned identity already
// carries the role's permission set denormalized for local checks.
func (c *Client) Login(ctx context.Context, mobile, password string) (string, domain.Identity, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/login", nil,
		loginRequest{Mobile: mobile, Password: password}, &resp)
	if err != nil {
		return "", domain.Identity{}, err
	}
	role := domain.Role{ID: resp.User.RoleID, Name: resp.User.RoleName}
	if resp.User.Role != nil {
		role = *resp.User.Role
	}
	return resp.Token, domain.NewIdentity(resp.User.User, role), nil
}
