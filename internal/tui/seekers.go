package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
	"github.com/sahaj/followup/internal/workflow"
)

// visibleSeekers applies the client-side search on top of the server-side
// filtered list. The two layers compose with AND and stay independent.
func (a *App) visibleSeekers() []domain.Seeker {
	return filter.ApplySearch(a.seekers, a.search)
}

func (a *App) onSeekers(m seekersMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	a.seekers = m.list
	ids := make([]int64, len(m.list))
	for i, s := range m.list {
		ids[i] = s.ID
	}
	// a fresh list always clears the selection set
	a.assign.SetList(ids)
	if a.listCursor >= len(a.seekers) {
		a.listCursor = 0
	}
	a.status = ""
	return a, nil
}

func (a *App) handleSeekersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	vis := a.visibleSeekers()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		return a, a.goHome()
	case "up", "k":
		if a.listCursor > 0 {
			a.listCursor--
		}
	case "down", "j":
		if a.listCursor < len(vis)-1 {
			a.listCursor++
		}
	case "/":
		a.searching = true
	case "r":
		a.status = "refreshing..."
		return a, a.loadSeekers(a.nextSeq(), a.applied)
	case "f":
		a.criteria = a.applied
		a.filterCur = 0
		a.modal = modalFilter
	case " ", "space":
		if len(vis) > 0 {
			if err := a.assign.Toggle(vis[a.listCursor].ID); err != nil {
				a.status = err.Error()
			}
		}
	case "a":
		if err := a.assign.Begin(); err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.status = "loading moderators..."
		return a, a.loadModerators(a.seq)
	case "n":
		return a, a.goSeekerForm(nil)
	case "enter":
		if len(vis) > 0 {
			return a, a.goDetail(vis[a.listCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.search = ""
		return a, nil
	case tea.KeyEnter:
		a.searching = false
		return a, nil
	}
	a.search, _ = appendKey(a.search, m)
	if a.listCursor >= len(a.visibleSeekers()) {
		a.listCursor = 0
	}
	return a, nil
}

func (a *App) onModerators(m moderatorsMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		// stay in Selecting: an empty list must not masquerade as
		// "no moderators exist"
		a.assign.ModeratorsFailed()
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	a.assign.ModeratorsLoaded(m.list)
	if a.assign.Phase() == workflow.ChoosingModerator {
		a.modCursor = 0
		a.modal = modalAssign
		a.status = ""
	}
	return a, nil
}

func (a *App) onAssignDone(m assignDoneMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		// selection and choice survive so the operator can retry
		a.assign.CommitFailed()
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	a.assign.CommitSucceeded()
	a.modal = modalNone
	a.status = "moderator assigned"
	// re-fetch through the last-applied criteria, preserving the view
	return a, a.loadSeekers(a.nextSeq(), a.applied)
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalFilter:
		return a.handleFilterKey(m)
	case modalAssign:
		return a.handleAssignKey(m)
	case modalDup:
		return a.handleDupKey(m)
	}
	return a, nil
}

// filterField binds one row of the filter form to the criteria struct.
type filterField struct {
	label string
	text  *string
	tri   *filter.Tristate
}

func (a *App) filterFields() []filterField {
	c := &a.criteria
	return []filterField{
		{label: "Zone", text: &c.Zone},
		{label: "Type", text: &c.Type},
		{label: "Interested in followup", tri: &c.InterestedInFollowup},
		{label: "Attended puja", tri: &c.AttendedPuja},
		{label: "Attended centre", tri: &c.AttendedCentres},
		{label: "Attended session 1", tri: &c.AttendedSession1},
		{label: "Attended session 2", tri: &c.AttendedSession2},
		{label: "Attended session 3", tri: &c.AttendedSession3},
		{label: "Attended session 4", tri: &c.AttendedSession4},
		{label: "Month 1", tri: &c.Month1},
		{label: "Month 2", tri: &c.Month2},
		{label: "Month 3", tri: &c.Month3},
		{label: "Month 4", tri: &c.Month4},
	}
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := a.filterFields()
	switch m.String() {
	case "esc":
		// discard edits; the applied criteria stay in force
		a.modal = modalNone
		a.criteria = a.applied
		return a, nil
	case "ctrl+r":
		a.criteria = filter.Criteria{}
		return a, nil
	case "up":
		if a.filterCur > 0 {
			a.filterCur--
		}
		return a, nil
	case "down", "tab":
		if a.filterCur < len(fields)-1 {
			a.filterCur++
		}
		return a, nil
	case "enter":
		a.applied = a.criteria
		a.modal = modalNone
		a.status = "applying filter..."
		return a, a.loadSeekers(a.nextSeq(), a.applied)
	}
	f := fields[a.filterCur]
	if f.tri != nil {
		if m.Type == tea.KeySpace {
			*f.tri = f.tri.Cycle()
		}
		return a, nil
	}
	*f.text, _ = appendKey(*f.text, m)
	return a, nil
}

func (a *App) handleAssignKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	mods := a.assign.Moderators()
	switch m.String() {
	case "esc":
		// abandon the choice surface; the selection itself survives
		a.assign.ModeratorsFailed()
		a.modal = modalNone
		return a, nil
	case "up", "k":
		if a.modCursor > 0 {
			a.modCursor--
		}
	case "down", "j":
		if a.modCursor < len(mods)-1 {
			a.modCursor++
		}
	case " ", "space":
		if len(mods) > 0 {
			a.assign.Choose(mods[a.modCursor].ID)
		}
	case "enter":
		modID, ids, err := a.assign.Commit()
		if err != nil {
			// local rejection, no request goes out
			a.status = err.Error()
			return a, nil
		}
		a.status = "assigning..."
		return a, a.assignCmd(a.seq, modID, ids)
	}
	return a, nil
}
