package domain

// Permission is a single named capability as served by /permissions.
type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Role owns the many-to-many relation to permissions. Users never hold
// permissions directly.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// User is an operator account row.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email,omitempty"`
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name,omitempty"`
	ZoneID   *int64 `json:"zone_id,omitempty"`
}

// Identity is the authenticated operator, with its role's permission set
// denormalized for fast local checks. It is created on login, replaced
// wholesale on logout, and serialized as-is into the session store.
type Identity struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Mobile      string         `json:"mobile"`
	Email       string         `json:"email,omitempty"`
	RoleID      int64          `json:"role_id"`
	RoleName    string         `json:"role_name"`
	Permissions map[int64]bool `json:"permissions"`
}

// NewIdentity denormalizes a user and its role into an Identity.
func NewIdentity(u User, r Role) Identity {
	perms := make(map[int64]bool, len(r.Permissions))
	for _, p := range r.Permissions {
		perms[p.ID] = true
	}
	return Identity{
		ID:          u.ID,
		Name:        u.Name,
		Mobile:      u.Mobile,
		Email:       u.Email,
		RoleID:      r.ID,
		RoleName:    r.Name,
		Permissions: perms,
	}
}
