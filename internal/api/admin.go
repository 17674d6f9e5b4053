package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sahaj/followup/internal/domain"
)

// ListUsers fetches operator accounts. A non-zero roleID narrows the list,
// which is how the eligible-moderator set is obtained.
func (c *Client) ListUsers(ctx context.Context, roleID int64) ([]domain.User, error) {
	var q url.Values
	if roleID != 0 {
		q = url.Values{"role_id": []string{strconv.FormatInt(roleID, 10)}}
	}
	var out []domain.User
	if err := c.do(ctx, "list users", http.MethodGet, "/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser registers a new operator account.
func (c *Client) CreateUser(ctx context.Context, u domain.User, password string) error {
	body := struct {
		domain.User
		Password string `json:"password"`
	}{User: u, Password: password}
	return c.do(ctx, "create user", http.MethodPost, "/users", nil, body, nil)
}

// UpdateUser replaces an operator's editable fields.
func (c *Client) UpdateUser(ctx context.Context, id int64, u domain.User) error {
	return c.do(ctx, "update user", http.MethodPut, fmt.Sprintf("/users/%d", id), nil, u, nil)
}

// ListRoles fetches all roles with their permission sets.
func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var out []domain.Role
	if err := c.do(ctx, "list roles", http.MethodGet, "/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRole fetches one role.
func (c *Client) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	var out domain.Role
	err := c.do(ctx, "get role", http.MethodGet, fmt.Sprintf("/roles/%d", id), nil, nil, &out)
	return out, err
}

type rolePayload struct {
	Name        string  `json:"name"`
	Permissions []int64 `json:"permissions"`
}

// CreateRole submits a role as a name plus numeric permission ids.
func (c *Client) CreateRole(ctx context.Context, name string, permissionIDs []int64) error {
	return c.do(ctx, "create role", http.MethodPost, "/roles", nil,
		rolePayload{Name: name, Permissions: permissionIDs}, nil)
}

// UpdateRole replaces a role's name and permission ids.
func (c *Client) UpdateRole(ctx context.Context, id int64, name string, permissionIDs []int64) error {
	return c.do(ctx, "update role", http.MethodPut, fmt.Sprintf("/roles/%d", id), nil,
		rolePayload{Name: name, Permissions: permissionIDs}, nil)
}

// ListPermissions fetches the permission catalog.
func (c *Client) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	var out []domain.Permission
	if err := c.do(ctx, "list permissions", http.MethodGet, "/permissions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListZones fetches the zone lookup table.
func (c *Client) ListZones(ctx context.Context) ([]domain.Zone, error) {
	var out []domain.Zone
	if err := c.do(ctx, "list zones", http.MethodGet, "/zones", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats are the aggregate counts shown on the home screen.
type Stats struct {
	TotalSeekers int64 `json:"total_seekers"`
	Assigned     int64 `json:"assigned"`
	Unassigned   int64 `json:"unassigned"`
	Interested   int64 `json:"interested"`
}

// DashboardStats fetches the aggregate counts.
func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, "dashboard stats", http.MethodGet, "/dashboard/stats", nil, nil, &out)
	return out, err
}
