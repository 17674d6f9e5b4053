// Package workflow holds the multi-select batch-assignment state machine
// used by the seekers list: Idle -> Selecting -> ChoosingModerator ->
// Committing, with failure paths that preserve the operator's work.
package workflow

import (
	"errors"
	"sort"

	"github.com/sahaj/followup/internal/domain"
)

// Phase is the workflow's current state.
type Phase int

const (
	Idle Phase = iota
	Selecting
	ChoosingModerator
	Committing
)

func (p Phase) String() string {
	switch p {
	case Selecting:
		return "selecting"
	case ChoosingModerator:
		return "choosing-moderator"
	case Committing:
		return "committing"
	default:
		return "idle"
	}
}

var (
	// ErrNothingSelected rejects starting an assignment with an empty set.
	ErrNothingSelected = errors.New("no seekers selected")
	// ErrNoModerator rejects committing before a moderator was chosen. The
	// rejection is local; no request is issued.
	ErrNoModerator = errors.New("no moderator chosen")
	// ErrBusy rejects actions while a commit is in flight.
	ErrBusy = errors.New("assignment in progress")
	// ErrNotChoosing rejects committing outside the moderator-choice phase.
	ErrNotChoosing = errors.New("no moderator choice in progress")
	// ErrUnknownSeeker rejects toggling an id that is not in the current list.
	ErrUnknownSeeker = errors.New("seeker not in current list")
)

// Assignment is one list-screen visit's selection set plus the assignment
// transaction built on top of it. It is purely local state; the single
// network side effect is the request payload returned by Commit.
type Assignment struct {
	phase    Phase
	visible  map[int64]bool
	selected map[int64]bool

	moderators []domain.User
	chosen     int64 // 0 = none
}

// New returns an empty workflow in Idle.
func New() *Assignment {
	return &Assignment{
		visible:  map[int64]bool{},
		selected: map[int64]bool{},
	}
}

// Phase returns the current phase.
func (a *Assignment) Phase() Phase { return a.phase }

// SetList installs the ids of the freshly fetched seeker list. Any previous
// selection is cleared rather than risk referencing stale ids.
func (a *Assignment) SetList(ids []int64) {
	a.visible = make(map[int64]bool, len(ids))
	for _, id := range ids {
		a.visible[id] = true
	}
	a.selected = map[int64]bool{}
	a.moderators = nil
	a.chosen = 0
	a.phase = Idle
}

// Toggle flips one seeker in or out of the selection. It is symmetric and
// idempotent per id: toggling twice restores the prior state.
func (a *Assignment) Toggle(id int64) error {
	if a.phase == Committing {
		return ErrBusy
	}
	if !a.visible[id] {
		return ErrUnknownSeeker
	}
	if a.selected[id] {
		delete(a.selected, id)
	} else {
		a.selected[id] = true
	}
	if len(a.selected) == 0 {
		a.phase = Idle
	} else if a.phase == Idle {
		a.phase = Selecting
	}
	return nil
}

// IsSelected reports membership in the selection set.
func (a *Assignment) IsSelected(id int64) bool { return a.selected[id] }

// Selected returns the selection as a sorted id list.
func (a *Assignment) Selected() []int64 {
	out := make([]int64, 0, len(a.selected))
	for id := range a.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the selection size.
func (a *Assignment) Count() int { return len(a.selected) }

// Begin starts choosing a moderator for the current selection. The caller
// fetches the eligible-moderator set and reports back via ModeratorsLoaded
// or ModeratorsFailed; until then the workflow stays in Selecting.
func (a *Assignment) Begin() error {
	if a.phase == Committing {
		return ErrBusy
	}
	if len(a.selected) == 0 {
		return ErrNothingSelected
	}
	return nil
}

// ModeratorsLoaded delivers the fetched candidates and opens the choice
// surface.
func (a *Assignment) ModeratorsLoaded(mods []domain.User) {
	if len(a.selected) == 0 {
		return
	}
	a.moderators = mods
	a.phase = ChoosingModerator
}

// ModeratorsFailed keeps the workflow in Selecting; an empty candidate list
// is never presented as if no moderators existed.
func (a *Assignment) ModeratorsFailed() {
	if a.phase == ChoosingModerator {
		a.phase = Selecting
	}
}

// Moderators returns the candidates loaded for the choice surface.
func (a *Assignment) Moderators() []domain.User { return a.moderators }

// Choose records the moderator the operator picked.
func (a *Assignment) Choose(moderatorID int64) {
	if a.phase != ChoosingModerator {
		return
	}
	a.chosen = moderatorID
}

// Chosen returns the picked moderator id, 0 if none yet.
func (a *Assignment) Chosen() int64 { return a.chosen }

// Commit moves to Committing and returns the batch to submit: one request
// covering the whole selection. Committing without a chosen moderator is
// rejected locally.
func (a *Assignment) Commit() (moderatorID int64, seekerIDs []int64, err error) {
	if a.phase == Committing {
		return 0, nil, ErrBusy
	}
	if a.phase != ChoosingModerator {
		return 0, nil, ErrNotChoosing
	}
	if a.chosen == 0 {
		return 0, nil, ErrNoModerator
	}
	a.phase = Committing
	return a.chosen, a.Selected(), nil
}

// CommitSucceeded clears the workflow; the caller re-fetches the list with
// the last-applied criteria, which in turn calls SetList.
func (a *Assignment) CommitSucceeded() {
	a.selected = map[int64]bool{}
	a.moderators = nil
	a.chosen = 0
	a.phase = Idle
}

// CommitFailed returns to ChoosingModerator with the selection and choice
// intact so the operator can retry without re-selecting.
func (a *Assignment) CommitFailed() {
	if a.phase == Committing {
		a.phase = ChoosingModerator
	}
}
