package auth

import (
	"testing"

	"github.com/sahaj/followup/internal/domain"
)

func identityWith(perms ...int64) domain.Identity {
	id := domain.Identity{ID: 1, Permissions: map[int64]bool{}}
	for _, p := range perms {
		id.Permissions[p] = true
	}
	return id
}

func TestAllowed(t *testing.T) {
	id := identityWith(1, 3)

	if !Allowed(id, nil) {
		t.Error("nil permission must always be allowed")
	}
	if !Allowed(id, Perm(3)) {
		t.Error("granted permission denied")
	}
	if Allowed(id, Perm(7)) {
		t.Error("missing permission allowed")
	}
	if Allowed(domain.Identity{}, Perm(1)) {
		t.Error("empty identity allowed a gated action")
	}
}

func TestVisibleMenuFiltersAndKeepsOrder(t *testing.T) {
	items := []MenuItem{
		{Title: "Seekers", Perm: Perm(2)},
		{Title: "Users", Perm: Perm(3)},
		{Title: "Roles", Perm: Perm(4)},
		{Title: "Logout"},
	}
	got := VisibleMenu(identityWith(2, 4), items)
	want := []string{"Seekers", "Roles", "Logout"}
	if len(got) != len(want) {
		t.Fatalf("visible = %d items, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("item %d = %q, want %q", i, got[i].Title, title)
		}
	}
}
