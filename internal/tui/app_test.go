package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahaj/followup/internal/api"
	"github.com/sahaj/followup/internal/config"
	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
	"github.com/sahaj/followup/internal/service"
	"github.com/sahaj/followup/internal/session"
	"github.com/sahaj/followup/internal/workflow"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := session.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := api.New("http://127.0.0.1:1", time.Second, nil)
	cfg := config.Config{}
	cfg.API.ModeratorRoleID = 1
	cfg.UI.DateFormat = "02/01/2006"
	return New(context.Background(), cfg, Deps{
		API:   client,
		Store: store,
		Dup:   &service.DupCheck{API: client},
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testSeekers() []domain.Seeker {
	return []domain.Seeker{
		{ID: 3, FirstName: "Asha", LastName: "Patil", Mobile: "9876543210"},
		{ID: 7, FirstName: "Rahul", LastName: "Deshmukh", Mobile: "9123456780"},
	}
}

func TestRestoreWithoutSessionGoesToLogin(t *testing.T) {
	a := newTestApp(t)
	if a.screen != screenLoading {
		t.Fatalf("initial screen = %v", a.screen)
	}
	a.Update(restoredMsg{})
	if a.screen != screenLogin {
		t.Errorf("screen = %v, want login", a.screen)
	}
}

func TestRestoreWithSessionGoesHome(t *testing.T) {
	a := newTestApp(t)
	a.Update(restoredMsg{sess: &session.Session{
		Token: "tok",
		Identity: domain.Identity{
			ID:          7,
			Name:        "Asha",
			Permissions: map[int64]bool{permManageSeekers: true},
		},
	}})
	if a.screen != screenHome {
		t.Fatalf("screen = %v, want home", a.screen)
	}
	// gated entries match the permission set: seekers yes, admin no
	titles := make([]string, 0, len(a.menu))
	for _, m := range a.menu {
		titles = append(titles, m.Title)
	}
	want := []string{"Seekers", "Add Seeker", "Logout"}
	if len(titles) != len(want) {
		t.Fatalf("menu = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("menu = %v, want %v", titles, want)
			break
		}
	}
}

func TestStaleSeekersResponseDiscarded(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	stale := a.nextSeq()
	a.nextSeq() // the screen moved on

	a.Update(seekersMsg{seq: stale, list: testSeekers()})
	if len(a.seekers) != 0 {
		t.Error("stale response was applied")
	}
}

func TestSeekersListInstallsSelectionUniverse(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	seq := a.nextSeq()

	a.Update(seekersMsg{seq: seq, list: testSeekers()})
	if len(a.seekers) != 2 {
		t.Fatalf("seekers = %d", len(a.seekers))
	}
	if err := a.assign.Toggle(3); err != nil {
		t.Errorf("known id rejected: %v", err)
	}
	if err := a.assign.Toggle(99); err == nil {
		t.Error("unknown id accepted")
	}
}

func TestSearchNarrowsVisibleList(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	seq := a.nextSeq()
	a.Update(seekersMsg{seq: seq, list: testSeekers()})

	a.searching = true
	a.handleSearchKey(keyRunes("rahul"))
	vis := a.visibleSeekers()
	if len(vis) != 1 || vis[0].ID != 7 {
		t.Errorf("visible = %+v", vis)
	}

	// clearing the search restores the fetched list untouched
	a.handleSearchKey(tea.KeyMsg{Type: tea.KeyEsc})
	if len(a.visibleSeekers()) != 2 {
		t.Error("escape did not clear the search")
	}
}

func TestFilterModalEscDiscardsEdits(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	a.applied = filter.Criteria{Zone: "Pune"}
	a.criteria = a.applied
	a.modal = modalFilter

	a.criteria.Zone = "Mumbai"
	a.criteria.AttendedPuja = filter.True
	a.handleFilterKey(tea.KeyMsg{Type: tea.KeyEsc})

	if a.modal != modalNone {
		t.Error("modal still open")
	}
	if a.criteria != a.applied || a.criteria.Zone != "Pune" {
		t.Errorf("edits survived esc: %+v", a.criteria)
	}
}

func TestFilterModalEnterApplies(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	a.modal = modalFilter
	a.criteria = filter.Criteria{Zone: "Pune", AttendedPuja: filter.True}

	_, cmd := a.handleFilterKey(tea.KeyMsg{Type: tea.KeyEnter})
	if a.applied != a.criteria {
		t.Errorf("applied = %+v", a.applied)
	}
	if cmd == nil {
		t.Error("apply did not trigger a fetch")
	}
}

func TestAssignFailureKeepsModalAndSelection(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenSeekers
	seq := a.nextSeq()
	a.Update(seekersMsg{seq: seq, list: testSeekers()})
	mustNil(t, a.assign.Toggle(3))
	mustNil(t, a.assign.Toggle(7))
	a.assign.ModeratorsLoaded([]domain.User{{ID: 12, Name: "Mod"}})
	a.modal = modalAssign
	a.assign.Choose(12)
	if _, _, err := a.assign.Commit(); err != nil {
		t.Fatal(err)
	}

	a.Update(assignDoneMsg{seq: a.seq, err: &api.NetworkError{Op: "assign moderator"}})

	if a.assign.Phase() != workflow.ChoosingModerator {
		t.Errorf("phase = %v", a.assign.Phase())
	}
	if a.assign.Count() != 2 || a.assign.Chosen() != 12 {
		t.Error("operator work lost on failure")
	}
}

func TestChecklistToggleBuildsChangeSet(t *testing.T) {
	a := newTestApp(t)
	a.screen = screenChecklist
	a.detail = &domain.Seeker{ID: 5, FirstName: "Asha", Mobile: "9876543210", Type: domain.TypePublic}
	a.clBase = domain.Checklist{AttendedSession1: true, Session1Comments: "kept"}
	a.clCursor = 0 // "Attended 1st session"

	a.handleChecklistKey(tea.KeyMsg{Type: tea.KeySpace})
	view := a.clView()
	if view.AttendedSession1 {
		t.Error("toggle did not flip the merged view")
	}
	if view.Session1Comments != "kept" {
		t.Error("toggle touched the comment")
	}
	if a.clBase.AttendedSession1 != true {
		t.Error("toggle mutated the fetched base")
	}

	// second press restores; the change set still records the explicit value
	a.handleChecklistKey(tea.KeyMsg{Type: tea.KeySpace})
	if !a.clView().AttendedSession1 {
		t.Error("second toggle did not restore")
	}
}

func TestUserEditKeepsRoleAndZoneUntouched(t *testing.T) {
	a := newTestApp(t)
	zone := int64(9)
	existing := domain.User{ID: 4, Name: "Asha", Mobile: "9876543210", RoleID: 5, ZoneID: &zone}
	a.goUserForm(&existing)

	a.Update(rolesMsg{seq: a.seq, list: []domain.Role{{ID: 1, Name: "admin"}, {ID: 5, Name: "moderator"}}})
	a.Update(zonesMsg{seq: a.seq, list: []domain.Zone{{ID: 2, Name: "Mumbai"}, {ID: 9, Name: "Pune"}}})

	u, err := a.userFromForm()
	if err != nil {
		t.Fatal(err)
	}
	if u.RoleID != 5 {
		t.Errorf("untouched edit changed role_id: sent %d, want 5", u.RoleID)
	}
	if u.ZoneID == nil || *u.ZoneID != 9 {
		t.Errorf("untouched edit dropped zone_id: sent %v", u.ZoneID)
	}
}

func TestUserEditPickersStillCycle(t *testing.T) {
	a := newTestApp(t)
	zone := int64(9)
	existing := domain.User{ID: 4, Name: "Asha", Mobile: "9876543210", RoleID: 5, ZoneID: &zone}
	a.goUserForm(&existing)
	a.Update(rolesMsg{seq: a.seq, list: []domain.Role{{ID: 1, Name: "admin"}, {ID: 5, Name: "moderator"}}})
	a.Update(zonesMsg{seq: a.seq, list: []domain.Zone{{ID: 9, Name: "Pune"}}})

	// move to the role row and cycle once: the preselection is a starting
	// point, not a lock
	for i, f := range a.userFields() {
		if f.isRole {
			a.userForm.cursor = i
		}
	}
	a.handleUserFormKey(tea.KeyMsg{Type: tea.KeySpace})

	u, err := a.userFromForm()
	if err != nil {
		t.Fatal(err)
	}
	if u.RoleID != 1 {
		t.Errorf("cycled role = %d, want 1", u.RoleID)
	}
}

func TestUserMessageMasksDenied(t *testing.T) {
	denied := &api.APIError{Op: "list users", Status: 403, Message: "forbidden"}
	if got := userMessage(denied); got != "the request was rejected" {
		t.Errorf("denied message = %q", got)
	}
	plain := &api.APIError{Op: "list users", Status: 500, Message: "boom"}
	if got := userMessage(plain); got == "the request was rejected" {
		t.Error("non-authorization failure masked")
	}
}

func TestAppendKey(t *testing.T) {
	s, _ := appendKey("ab", keyRunes("c"))
	if s != "abc" {
		t.Errorf("runes: %q", s)
	}
	s, _ = appendKey("abc", tea.KeyMsg{Type: tea.KeyBackspace})
	if s != "ab" {
		t.Errorf("backspace: %q", s)
	}
	s, _ = appendKey("ab", tea.KeyMsg{Type: tea.KeySpace})
	if s != "ab " {
		t.Errorf("space: %q", s)
	}
	s, _ = appendKey("", tea.KeyMsg{Type: tea.KeyBackspace})
	if s != "" {
		t.Errorf("backspace on empty: %q", s)
	}
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
