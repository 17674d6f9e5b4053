package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahaj/followup/internal/auth"
	"github.com/sahaj/followup/internal/filter"
	"github.com/sahaj/followup/internal/workflow"
)

func (a *App) onRestored(m restoredMsg) (tea.Model, tea.Cmd) {
	if m.sess == nil {
		a.goLogin()
		return a, nil
	}
	a.identity = m.sess.Identity
	a.loggedIn = true
	a.api.SetToken(m.sess.Token)
	return a, a.goHome()
}

func (a *App) onLoggedIn(m loggedInMsg) (tea.Model, tea.Cmd) {
	a.identity = m.identity
	a.loggedIn = true
	a.loggingIn = false
	a.api.SetToken(m.token)
	a.loginMobile, a.loginPassword = "", ""
	a.status = ""
	return a, a.goHome()
}

func (a *App) goLogin() {
	a.api.ClearToken()
	a.screen = screenLogin
	a.modal = modalNone
	a.loginFocus = 0
	a.loggingIn = false
	a.status = ""
	a.nextSeq()
}

// goHome rebuilds the permission-filtered menu and refreshes the stats card.
func (a *App) goHome() tea.Cmd {
	a.screen = screenHome
	a.modal = modalNone
	a.menuCursor = 0
	a.status = ""
	a.menu = auth.VisibleMenu(a.identity, []auth.MenuItem{
		{Title: "Seekers", Screen: string(screenSeekers), Perm: auth.Perm(permManageSeekers)},
		{Title: "Add Seeker", Screen: string(screenSeeker), Perm: auth.Perm(permManageSeekers)},
		{Title: "Users", Screen: string(screenUsers), Perm: auth.Perm(permManageUsers)},
		{Title: "Roles", Screen: string(screenRoles), Perm: auth.Perm(permManageRoles)},
		{Title: "Logout", Screen: "logout"},
	})
	return a.loadStats(a.nextSeq())
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab", "down":
		a.loginFocus = (a.loginFocus + 1) % 2
		return a, nil
	case "shift+tab", "up":
		a.loginFocus = (a.loginFocus + 1) % 2
		return a, nil
	}
	if m.Type == tea.KeyEnter {
		if a.loginFocus == 0 {
			a.loginFocus = 1
			return a, nil
		}
		if a.loggingIn {
			return a, nil
		}
		mobile := strings.TrimSpace(a.loginMobile)
		if mobile == "" || a.loginPassword == "" {
			a.status = "enter mobile and password"
			return a, nil
		}
		a.loggingIn = true
		a.status = "signing in..."
		return a, a.loginCmd(mobile, a.loginPassword)
	}
	if a.loginFocus == 0 {
		a.loginMobile, _ = appendKey(a.loginMobile, m)
	} else {
		a.loginPassword, _ = appendKey(a.loginPassword, m)
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.menuCursor > 0 {
			a.menuCursor--
		}
	case "down", "j":
		if a.menuCursor < len(a.menu)-1 {
			a.menuCursor++
		}
	case "enter":
		if len(a.menu) == 0 {
			return a, nil
		}
		return a.openMenuEntry(a.menu[a.menuCursor])
	}
	return a, nil
}

func (a *App) openMenuEntry(item auth.MenuItem) (tea.Model, tea.Cmd) {
	switch item.Screen {
	case string(screenSeekers):
		return a, a.goSeekers()
	case string(screenSeeker):
		return a, a.goSeekerForm(nil)
	case string(screenUsers):
		a.screen = screenUsers
		a.status = ""
		return a, a.loadUsers(a.nextSeq())
	case string(screenRoles):
		a.screen = screenRoles
		a.status = ""
		return a, a.loadRoles(a.nextSeq())
	case "logout":
		return a, a.logoutCmd()
	}
	return a, nil
}

// goSeekers enters the list screen with a fresh visit: filter criteria back
// to don't-consider, empty search, empty selection.
func (a *App) goSeekers() tea.Cmd {
	a.screen = screenSeekers
	a.modal = modalNone
	a.status = "loading seekers..."
	a.search = ""
	a.searching = false
	a.listCursor = 0
	a.criteria = filter.Criteria{}
	a.applied = filter.Criteria{}
	a.assign = workflow.New()
	return a.loadSeekers(a.nextSeq(), a.applied)
}
