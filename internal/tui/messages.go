package tui

import (
	"github.com/sahaj/followup/internal/api"
	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/service"
	"github.com/sahaj/followup/internal/session"
)

// Messages delivered by completed commands. Fetch results carry the seq
// they were issued under; Update drops any message from a torn-down screen.

type restoredMsg struct {
	sess *session.Session
}

type loggedInMsg struct {
	token    string
	identity domain.Identity
}

type loggedOutMsg struct{}

type statsMsg struct {
	seq   int
	stats api.Stats
	err   error
}

type seekersMsg struct {
	seq  int
	list []domain.Seeker
	err  error
}

type moderatorsMsg struct {
	seq  int
	list []domain.User
	err  error
}

type assignDoneMsg struct {
	seq int
	err error
}

type seekerDetailMsg struct {
	seq    int
	seeker domain.Seeker
	err    error
}

// checklistMsg keeps its error separate so a failed checklist fetch only
// degrades the checklist section, never the whole profile.
type checklistMsg struct {
	seq int
	doc domain.Checklist
	err error
}

type checklistSavedMsg struct {
	seq int
	err error
}

type zonesMsg struct {
	seq  int
	list []domain.Zone
}

type dupMsg struct {
	seq     int
	matches []service.Match
	draft   domain.Seeker
}

type seekerSavedMsg struct {
	seq     int
	created bool
	err     error
}

type usersMsg struct {
	seq  int
	list []domain.User
}

type rolesMsg struct {
	seq  int
	list []domain.Role
}

type permsMsg struct {
	seq  int
	list []domain.Permission
}

type adminSavedMsg struct {
	seq  int
	what string
	err  error
}

type statusMsg string

type errMsg struct{ err error }
