// Package auth is the client-side authorization model: pure checks over the
// identity's denormalized permission set. It only decides what the UI shows;
// the server re-enforces every permission on its own.
package auth

import "github.com/sahaj/followup/internal/domain"

// Allowed reports whether the identity may perform an action gated by the
// given permission. A nil permission means the action is permission-free and
// is always allowed.
func Allowed(id domain.Identity, perm *int64) bool {
	if perm == nil {
		return true
	}
	return id.Permissions[*perm]
}

// MenuItem is a home-screen entry, optionally gated by a permission.
type MenuItem struct {
	Title  string
	Screen string
	Perm   *int64
}

// VisibleMenu returns the entries the identity may see, in input order.
func VisibleMenu(id domain.Identity, items []MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if Allowed(id, it.Perm) {
			out = append(out, it)
		}
	}
	return out
}

// Perm is a convenience for building gated menu items.
func Perm(id int64) *int64 { return &id }
