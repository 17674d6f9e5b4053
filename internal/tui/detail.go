package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahaj/followup/internal/domain"
)

// goDetail fetches the seeker and its checklist in parallel; they are
// independent reads and the profile renders even if the checklist fails.
func (a *App) goDetail(id int64) tea.Cmd {
	a.screen = screenDetail
	a.detail = nil
	a.checklist = nil
	a.checklistErr = ""
	a.status = "loading..."
	seq := a.nextSeq()
	return tea.Batch(a.loadSeekerDetail(seq, id), a.loadChecklist(seq, id))
}

func (a *App) onSeekerDetail(m seekerDetailMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	s := m.seeker
	a.detail = &s
	a.status = ""
	return a, nil
}

func (a *App) onChecklist(m checklistMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		a.checklist = nil
		a.checklistErr = "not loaded"
		return a, nil
	}
	doc := m.doc
	a.checklist = &doc
	a.checklistErr = ""
	if a.screen == screenChecklist {
		// editor entry: this fetch is the read half of read-merge-write
		a.clBase = doc
		a.clChange = domain.ChecklistChange{}
		a.status = ""
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.screen = screenSeekers
		a.status = ""
		a.nextSeq()
		return a, nil
	case "e":
		if a.detail != nil {
			return a, a.goSeekerForm(a.detail)
		}
	case "c":
		if a.detail == nil {
			return a, nil
		}
		a.screen = screenChecklist
		a.clCursor = 0
		a.clEditing = false
		a.clChange = domain.ChecklistChange{}
		a.status = "loading checklist..."
		// always re-read before editing so the merge starts from the
		// freshest document
		return a, a.loadChecklist(a.nextSeq(), a.detail.ID)
	}
	return a, nil
}

// checklist editor rows: flags toggle with space, comments edit with enter.
type checklistRow struct {
	label   string
	flag    func(*domain.Checklist) *domain.FlexBool
	flagSet func(*domain.ChecklistChange) **bool
	text    func(*domain.Checklist) *string
	textSet func(*domain.ChecklistChange) **string
}

func checklistRows() []checklistRow {
	return []checklistRow{
		{label: "Attended 1st session",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedSession1 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedSession1 }},
		{label: "1st session comments",
			text:    func(c *domain.Checklist) *string { return &c.Session1Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Session1Comments }},
		{label: "Attended 2nd session",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedSession2 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedSession2 }},
		{label: "2nd session comments",
			text:    func(c *domain.Checklist) *string { return &c.Session2Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Session2Comments }},
		{label: "Attended 3rd session",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedSession3 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedSession3 }},
		{label: "3rd session comments",
			text:    func(c *domain.Checklist) *string { return &c.Session3Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Session3Comments }},
		{label: "Attended 4th session",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedSession4 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedSession4 }},
		{label: "4th session comments",
			text:    func(c *domain.Checklist) *string { return &c.Session4Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Session4Comments }},
		{label: "Feeling vibrations",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.FeelingVibrations },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.FeelingVibrations }},
		{label: "Attended centre",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedCentres },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedCentres }},
		{label: "Attended seminar",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedSeminar },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedSeminar }},
		{label: "Attended puja",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.AttendedPuja },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.AttendedPuja }},
		{label: "Month 1",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.Month1 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.Month1 }},
		{label: "Month 1 comments",
			text:    func(c *domain.Checklist) *string { return &c.Month1Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Month1Comments }},
		{label: "Month 2",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.Month2 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.Month2 }},
		{label: "Month 2 comments",
			text:    func(c *domain.Checklist) *string { return &c.Month2Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Month2Comments }},
		{label: "Month 3",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.Month3 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.Month3 }},
		{label: "Month 3 comments",
			text:    func(c *domain.Checklist) *string { return &c.Month3Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Month3Comments }},
		{label: "Month 4",
			flag:    func(c *domain.Checklist) *domain.FlexBool { return &c.Month4 },
			flagSet: func(c *domain.ChecklistChange) **bool { return &c.Month4 }},
		{label: "Month 4 comments",
			text:    func(c *domain.Checklist) *string { return &c.Month4Comments },
			textSet: func(c *domain.ChecklistChange) **string { return &c.Month4Comments }},
	}
}

// clView is the document as the operator sees it: the fetched base with the
// pending change set merged on top.
func (a *App) clView() domain.Checklist {
	return domain.Merge(a.clBase, a.clChange)
}

func (a *App) handleChecklistKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := checklistRows()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		if a.detail == nil {
			a.screen = screenSeekers
			return a, nil
		}
		return a, a.goDetail(a.detail.ID)
	case "up", "k":
		if a.clCursor > 0 {
			a.clCursor--
		}
	case "down", "j":
		if a.clCursor < len(rows)-1 {
			a.clCursor++
		}
	case " ", "space":
		row := rows[a.clCursor]
		if row.flag != nil {
			view := a.clView()
			cur := bool(*row.flag(&view))
			next := !cur
			*row.flagSet(&a.clChange) = &next
		}
	case "enter":
		row := rows[a.clCursor]
		if row.text != nil {
			view := a.clView()
			a.clInput = *row.text(&view)
			a.clEditing = true
		}
	case "s":
		if a.detail == nil {
			return a, nil
		}
		if a.clChange.Empty() {
			a.status = "nothing changed"
			return a, nil
		}
		a.status = "saving checklist..."
		return a, a.saveChecklistCmd(a.seq, a.detail.ID, a.clBase, a.clChange)
	}
	return a, nil
}

func (a *App) handleChecklistInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.clEditing = false
		a.clInput = ""
		return a, nil
	case tea.KeyEnter:
		row := checklistRows()[a.clCursor]
		if row.textSet != nil {
			text := a.clInput
			*row.textSet(&a.clChange) = &text
		}
		a.clEditing = false
		a.clInput = ""
		return a, nil
	}
	a.clInput, _ = appendKey(a.clInput, m)
	return a, nil
}

func (a *App) onChecklistSaved(m checklistSavedMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		// editor state is untouched; the operator retries explicitly
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	a.status = "checklist saved"
	if a.detail != nil {
		return a, a.goDetail(a.detail.ID)
	}
	a.screen = screenSeekers
	return a, nil
}
