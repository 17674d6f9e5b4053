package workflow

import (
	"errors"
	"testing"

	"github.com/sahaj/followup/internal/domain"
)

func mods() []domain.User {
	return []domain.User{{ID: 12, Name: "Asha"}, {ID: 15, Name: "Rahul"}}
}

func TestToggleIsSymmetric(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7, 9})

	if err := a.Toggle(7); err != nil {
		t.Fatal(err)
	}
	if !a.IsSelected(7) || a.Phase() != Selecting {
		t.Fatalf("after toggle: selected=%v phase=%v", a.IsSelected(7), a.Phase())
	}
	if err := a.Toggle(7); err != nil {
		t.Fatal(err)
	}
	if a.IsSelected(7) || a.Phase() != Idle {
		t.Fatalf("double toggle did not restore prior state: selected=%v phase=%v", a.IsSelected(7), a.Phase())
	}
}

func TestToggleUnknownID(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7})
	if err := a.Toggle(99); !errors.Is(err, ErrUnknownSeeker) {
		t.Fatalf("got %v, want ErrUnknownSeeker", err)
	}
}

func TestBeginWithoutSelection(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7})
	if err := a.Begin(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("got %v, want ErrNothingSelected", err)
	}
}

func TestFullAssignmentFlow(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7, 9})
	mustToggle(t, a, 7)
	mustToggle(t, a, 3)

	if err := a.Begin(); err != nil {
		t.Fatal(err)
	}
	a.ModeratorsLoaded(mods())
	if a.Phase() != ChoosingModerator {
		t.Fatalf("phase = %v", a.Phase())
	}
	a.Choose(12)

	modID, ids, err := a.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if modID != 12 {
		t.Errorf("moderator = %d", modID)
	}
	// one batch, sorted ids
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Errorf("ids = %v", ids)
	}
	if a.Phase() != Committing {
		t.Errorf("phase = %v", a.Phase())
	}

	a.CommitSucceeded()
	if a.Phase() != Idle || a.Count() != 0 || a.Chosen() != 0 {
		t.Errorf("not cleared: phase=%v count=%d chosen=%d", a.Phase(), a.Count(), a.Chosen())
	}
}

func TestCommitWithoutModeratorIsLocalReject(t *testing.T) {
	a := New()
	a.SetList([]int64{3})
	mustToggle(t, a, 3)
	a.ModeratorsLoaded(mods())

	_, _, err := a.Commit()
	if !errors.Is(err, ErrNoModerator) {
		t.Fatalf("got %v, want ErrNoModerator", err)
	}
	if a.Phase() != ChoosingModerator {
		t.Errorf("rejected commit changed phase to %v", a.Phase())
	}
}

func TestCommitFailurePreservesWork(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7})
	mustToggle(t, a, 3)
	mustToggle(t, a, 7)
	a.ModeratorsLoaded(mods())
	a.Choose(15)
	if _, _, err := a.Commit(); err != nil {
		t.Fatal(err)
	}

	a.CommitFailed()
	if a.Phase() != ChoosingModerator {
		t.Errorf("phase = %v", a.Phase())
	}
	if !a.IsSelected(3) || !a.IsSelected(7) {
		t.Error("selection lost on failure")
	}
	if a.Chosen() != 15 {
		t.Errorf("chosen moderator lost: %d", a.Chosen())
	}

	// the retry needs no re-selection
	modID, ids, err := a.Commit()
	if err != nil || modID != 15 || len(ids) != 2 {
		t.Errorf("retry: %d %v %v", modID, ids, err)
	}
}

func TestCommitOutsideChoicePhase(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7})

	if _, _, err := a.Commit(); !errors.Is(err, ErrNotChoosing) {
		t.Errorf("commit while idle: %v, want ErrNotChoosing", err)
	}

	// a non-empty selection alone is still not enough
	mustToggle(t, a, 3)
	if _, _, err := a.Commit(); !errors.Is(err, ErrNotChoosing) {
		t.Errorf("commit while selecting: %v, want ErrNotChoosing", err)
	}

	a.ModeratorsLoaded(mods())
	a.Choose(12)
	if _, _, err := a.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := a.Commit(); !errors.Is(err, ErrBusy) {
		t.Errorf("commit while committing: %v, want ErrBusy", err)
	}
}

func TestBusyWhileCommitting(t *testing.T) {
	a := New()
	a.SetList([]int64{3})
	mustToggle(t, a, 3)
	a.ModeratorsLoaded(mods())
	a.Choose(12)
	if _, _, err := a.Commit(); err != nil {
		t.Fatal(err)
	}

	if err := a.Toggle(3); !errors.Is(err, ErrBusy) {
		t.Errorf("toggle while committing: %v", err)
	}
	if err := a.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("begin while committing: %v", err)
	}
}

func TestModeratorsFailedStaysSelecting(t *testing.T) {
	a := New()
	a.SetList([]int64{3})
	mustToggle(t, a, 3)

	// the fetch failed: the workflow must not present an empty candidate
	// list as if no moderators existed
	a.ModeratorsFailed()
	if a.Phase() != Selecting {
		t.Errorf("phase = %v", a.Phase())
	}
	if !a.IsSelected(3) {
		t.Error("selection lost")
	}
}

func TestSetListClearsEverything(t *testing.T) {
	a := New()
	a.SetList([]int64{3, 7})
	mustToggle(t, a, 3)
	a.ModeratorsLoaded(mods())
	a.Choose(12)

	a.SetList([]int64{3, 7, 9})
	if a.Count() != 0 || a.Phase() != Idle || a.Chosen() != 0 {
		t.Errorf("stale state survived refresh: count=%d phase=%v chosen=%d", a.Count(), a.Phase(), a.Chosen())
	}
}

func mustToggle(t *testing.T, a *Assignment, id int64) {
	t.Helper()
	if err := a.Toggle(id); err != nil {
		t.Fatal(err)
	}
}
