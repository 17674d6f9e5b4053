// Package tui is the terminal front-end. One App model drives every screen;
// all remote calls are tea.Cmd closures whose completion delivers exactly
// one message back to Update, so nothing ever blocks the event loop.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sahaj/followup/internal/api"
	"github.com/sahaj/followup/internal/auth"
	"github.com/sahaj/followup/internal/config"
	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
	"github.com/sahaj/followup/internal/service"
	"github.com/sahaj/followup/internal/session"
	"github.com/sahaj/followup/internal/workflow"
)

type screen string

const (
	screenLoading   screen = "loading"
	screenLogin     screen = "login"
	screenHome      screen = "home"
	screenSeekers   screen = "seekers"
	screenDetail    screen = "detail"
	screenChecklist screen = "checklist"
	screenSeeker    screen = "seekerForm"
	screenUsers     screen = "users"
	screenUser      screen = "userForm"
	screenRoles     screen = "roles"
	screenRole      screen = "roleForm"
)

type modalState string

const (
	modalNone   modalState = ""
	modalFilter modalState = "filter"
	modalAssign modalState = "assignModerator"
	modalDup    modalState = "duplicateWarning"
)

// Permission ids as seeded by the backend. These gate menu visibility only;
// the server re-checks every call.
const (
	permManageSeekers int64 = 2
	permManageUsers   int64 = 3
	permManageRoles   int64 = 4
)

// App ties together screens.
type App struct {
	ctx   context.Context
	cfg   config.Config
	api   *api.Client
	store *session.Store
	dup   *service.DupCheck
	log   *zap.Logger

	screen screen
	modal  modalState
	status string

	// seq stamps every in-flight fetch; a response carrying a stale seq
	// belongs to a screen that was torn down and is discarded.
	seq int

	identity domain.Identity
	loggedIn bool

	// login form
	loginMobile   string
	loginPassword string
	loginFocus    int
	loggingIn     bool

	// home
	menu       []auth.MenuItem
	menuCursor int
	stats      *api.Stats

	// seekers list
	seekers    []domain.Seeker
	listCursor int
	search     string
	searching  bool
	criteria   filter.Criteria // form under edit in the filter modal
	applied    filter.Criteria // last-applied criteria, reused by re-fetches
	filterCur  int
	assign     *workflow.Assignment
	modCursor  int

	// seeker detail
	detail       *domain.Seeker
	checklist    *domain.Checklist
	checklistErr string

	// checklist editor
	clBase    domain.Checklist
	clChange  domain.ChecklistChange
	clCursor  int
	clEditing bool
	clInput   string

	// seeker add/edit form
	form seekerForm

	// duplicate warning
	dupMatches []service.Match
	dupDraft   domain.Seeker

	// users admin
	users      []domain.User
	userCursor int
	userForm   userForm

	// roles admin
	roles      []domain.Role
	perms      []domain.Permission
	roleCursor int
	roleForm   roleForm

	zones       []domain.Zone
	moderatorID int64
}

// Deps are the collaborators the TUI is wired with.
type Deps struct {
	API   *api.Client
	Store *session.Store
	Dup   *service.DupCheck
	Log   *zap.Logger
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:         ctx,
		cfg:         cfg,
		api:         deps.API,
		store:       deps.Store,
		dup:         deps.Dup,
		log:         log,
		screen:      screenLoading,
		assign:      workflow.New(),
		moderatorID: cfg.API.ModeratorRoleID,
	}
}

// Init kicks off session restore. Until restoredMsg arrives the app renders
// the indeterminate loading state, never a false "logged out".
func (a *App) Init() tea.Cmd {
	return a.restoreCmd()
}

// nextSeq invalidates every response still in flight.
func (a *App) nextSeq() int {
	a.seq++
	return a.seq
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case restoredMsg:
		return a.onRestored(m)
	case loggedInMsg:
		return a.onLoggedIn(m)
	case loggedOutMsg:
		a.loggedIn = false
		a.identity = domain.Identity{}
		a.goLogin()
		return a, nil

	case statsMsg:
		if m.seq == a.seq && m.err == nil {
			a.stats = &m.stats
		}
		return a, nil

	case seekersMsg:
		return a.onSeekers(m)
	case moderatorsMsg:
		return a.onModerators(m)
	case assignDoneMsg:
		return a.onAssignDone(m)

	case seekerDetailMsg:
		return a.onSeekerDetail(m)
	case checklistMsg:
		return a.onChecklist(m)
	case checklistSavedMsg:
		return a.onChecklistSaved(m)

	case zonesMsg:
		if m.seq == a.seq {
			a.zones = m.list
			if a.screen == screenUser {
				a.syncUserForm()
			}
		}
		return a, nil
	case dupMsg:
		return a.onDupChecked(m)
	case seekerSavedMsg:
		return a.onSeekerSaved(m)

	case usersMsg:
		if m.seq == a.seq {
			a.users = m.list
			if a.userCursor >= len(a.users) {
				a.userCursor = 0
			}
		}
		return a, nil
	case rolesMsg:
		if m.seq == a.seq {
			a.roles = m.list
			if a.roleCursor >= len(a.roles) {
				a.roleCursor = 0
			}
			if a.screen == screenUser {
				a.syncUserForm()
			}
		}
		return a, nil
	case permsMsg:
		if m.seq == a.seq {
			a.perms = m.list
		}
		return a, nil
	case adminSavedMsg:
		return a.onAdminSaved(m)

	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	// text-entry surfaces get the raw key stream first
	if a.screen == screenLogin {
		return a.handleLoginKey(m)
	}
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	if a.searching {
		return a.handleSearchKey(m)
	}
	if a.clEditing {
		return a.handleChecklistInputKey(m)
	}
	if a.form.editing || a.userForm.editing || a.roleForm.editing {
		return a.handleFormInputKey(m)
	}

	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.screen {
	case screenLoading:
		return a, nil
	case screenHome:
		return a.handleHomeKey(m)
	case screenSeekers:
		return a.handleSeekersKey(m)
	case screenDetail:
		return a.handleDetailKey(m)
	case screenChecklist:
		return a.handleChecklistKey(m)
	case screenSeeker:
		return a.handleSeekerFormKey(m)
	case screenUsers:
		return a.handleUsersKey(m)
	case screenUser:
		return a.handleUserFormKey(m)
	case screenRoles:
		return a.handleRolesKey(m)
	case screenRole:
		return a.handleRoleFormKey(m)
	}
	return a, nil
}

// userMessage keeps remote authorization denials generic: the menu gate
// should have hidden the action, so the detail is noise to the operator.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Denied() {
		return "the request was rejected"
	}
	return err.Error()
}

// appendKey applies one key event to a text buffer.
func appendKey(s string, m tea.KeyMsg) (string, bool) {
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(s) > 0 {
			s = s[:len(s)-1]
		}
		return s, true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyRunes:
		return s + string(m.Runes), true
	}
	return s, false
}
