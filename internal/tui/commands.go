package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
)

// restoreCmd runs once at startup. Whatever the outcome, exactly one
// restoredMsg resolves the loading screen.
func (a *App) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		sess, err := a.store.Restore()
		if err != nil {
			// persistence failure reads as "no session"
			a.log.Warn("session restore failed", zap.Error(err))
			return restoredMsg{}
		}
		return restoredMsg{sess: sess}
	}
}

// loginCmd authenticates and persists the credential+identity pair. If the
// pair cannot be persisted the login does not count.
func (a *App) loginCmd(mobile, password string) tea.Cmd {
	return func() tea.Msg {
		token, id, err := a.api.Login(a.ctx, mobile, password)
		if err != nil {
			return errMsg{err}
		}
		if err := a.store.Login(token, id); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{token: token, identity: id}
	}
}

// logoutCmd clears the persisted pair; local logout always succeeds.
func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Logout(); err != nil {
			a.log.Warn("session clear failed", zap.Error(err))
		}
		return loggedOutMsg{}
	}
}

func (a *App) loadStats(seq int) tea.Cmd {
	return func() tea.Msg {
		stats, err := a.api.DashboardStats(a.ctx)
		return statsMsg{seq: seq, stats: stats, err: err}
	}
}

func (a *App) loadSeekers(seq int, crit filter.Criteria) tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListSeekers(a.ctx, crit)
		return seekersMsg{seq: seq, list: list, err: err}
	}
}

func (a *App) loadModerators(seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListUsers(a.ctx, a.moderatorID)
		return moderatorsMsg{seq: seq, list: list, err: err}
	}
}

func (a *App) assignCmd(seq int, moderatorID int64, seekerIDs []int64) tea.Cmd {
	return func() tea.Msg {
		err := a.api.AssignModerator(a.ctx, moderatorID, seekerIDs)
		return assignDoneMsg{seq: seq, err: err}
	}
}

func (a *App) loadSeekerDetail(seq int, id int64) tea.Cmd {
	return func() tea.Msg {
		s, err := a.api.GetSeeker(a.ctx, id)
		return seekerDetailMsg{seq: seq, seeker: s, err: err}
	}
}

func (a *App) loadChecklist(seq int, seekerID int64) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.api.GetChecklist(a.ctx, seekerID)
		return checklistMsg{seq: seq, doc: doc, err: err}
	}
}

func (a *App) saveChecklistCmd(seq int, seekerID int64, base domain.Checklist, change domain.ChecklistChange) tea.Cmd {
	return func() tea.Msg {
		merged := domain.Merge(base, change)
		err := a.api.PutChecklist(a.ctx, seekerID, merged)
		return checklistSavedMsg{seq: seq, err: err}
	}
}

func (a *App) loadZones(seq int) tea.Cmd {
	return func() tea.Msg {
		zones, err := a.api.ListZones(a.ctx)
		if err != nil {
			// the picker degrades to manual id entry
			a.log.Warn("zones fetch failed", zap.Error(err))
			return zonesMsg{seq: seq}
		}
		return zonesMsg{seq: seq, list: zones}
	}
}

// dupCheckCmd screens a draft against the existing collection before the
// create goes out. The check is advisory: if it cannot run, the create
// proceeds unwarned.
func (a *App) dupCheckCmd(seq int, draft domain.Seeker) tea.Cmd {
	return func() tea.Msg {
		matches, err := a.dup.FindSimilar(a.ctx, draft)
		if err != nil {
			a.log.Warn("duplicate check failed", zap.Error(err))
			return dupMsg{seq: seq, draft: draft}
		}
		return dupMsg{seq: seq, matches: matches, draft: draft}
	}
}

func (a *App) createSeekerCmd(seq int, draft domain.Seeker) tea.Cmd {
	return func() tea.Msg {
		_, err := a.api.CreateSeeker(a.ctx, draft)
		return seekerSavedMsg{seq: seq, created: true, err: err}
	}
}

func (a *App) updateSeekerCmd(seq int, id int64, patch domain.SeekerPatch) tea.Cmd {
	return func() tea.Msg {
		err := a.api.UpdateSeeker(a.ctx, id, patch)
		return seekerSavedMsg{seq: seq, err: err}
	}
}

func (a *App) loadUsers(seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListUsers(a.ctx, 0)
		if err != nil {
			return errMsg{err}
		}
		return usersMsg{seq: seq, list: list}
	}
}

func (a *App) loadRoles(seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListRoles(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return rolesMsg{seq: seq, list: list}
	}
}

func (a *App) loadPermissions(seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListPermissions(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return permsMsg{seq: seq, list: list}
	}
}

func (a *App) saveUserCmd(seq int, u domain.User, password string, create bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if create {
			err = a.api.CreateUser(a.ctx, u, password)
		} else {
			err = a.api.UpdateUser(a.ctx, u.ID, u)
		}
		return adminSavedMsg{seq: seq, what: "user", err: err}
	}
}

func (a *App) saveRoleCmd(seq int, id int64, name string, permIDs []int64) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			err = a.api.CreateRole(a.ctx, name, permIDs)
		} else {
			err = a.api.UpdateRole(a.ctx, id, name, permIDs)
		}
		return adminSavedMsg{seq: seq, what: "role", err: err}
	}
}
