package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahaj/followup/internal/domain"
)

// seekerForm backs both the add and the edit screen; id 0 means create.
type seekerForm struct {
	editing bool
	cursor  int
	input   string

	id         int64
	orig       domain.Seeker // baseline for the sparse patch on edit
	firstName  string
	lastName   string
	mobile     string
	email      string
	address    string
	city       string
	occupation string
	zoneRaw    string // numeric id as text, empty = no zone
	typ        domain.SeekerType
	interested bool
	called     bool
}

type userForm struct {
	editing bool
	cursor  int
	input   string

	id       int64
	name     string
	mobile   string
	email    string
	password string
	roleIdx  int
	zoneIdx  int // -1 = no zone

	// the existing assignment, resolved into roleIdx/zoneIdx once the
	// lookup lists arrive
	roleID int64
	zoneID *int64
}

type roleForm struct {
	editing bool
	cursor  int // 0 = name row, then one row per permission
	input   string

	id       int64
	name     string
	selected map[int64]bool
}

func (a *App) goSeekerForm(existing *domain.Seeker) tea.Cmd {
	a.screen = screenSeeker
	a.status = ""
	f := seekerForm{typ: domain.TypePublic}
	if existing != nil {
		f.id = existing.ID
		f.orig = *existing
		f.firstName = existing.FirstName
		f.lastName = existing.LastName
		f.mobile = existing.Mobile
		f.email = existing.Email
		f.address = existing.Address
		f.city = existing.City
		f.occupation = existing.Occupation
		f.typ = existing.Type
		f.interested = existing.InterestedInFollowup
		f.called = existing.Called
		if existing.ZoneID != nil {
			f.zoneRaw = strconv.FormatInt(*existing.ZoneID, 10)
		}
	}
	a.form = f
	return a.loadZones(a.nextSeq())
}

// seekerField describes one form row; exactly one of the field kinds is set.
type seekerField struct {
	label  string
	text   *string
	toggle *bool
	isType bool
	isZone bool
}

func (a *App) seekerFields() []seekerField {
	f := &a.form
	return []seekerField{
		{label: "First name", text: &f.firstName},
		{label: "Last name", text: &f.lastName},
		{label: "Mobile", text: &f.mobile},
		{label: "Email", text: &f.email},
		{label: "Address", text: &f.address},
		{label: "City", text: &f.city},
		{label: "Zone", isZone: true},
		{label: "Type", isType: true},
		{label: "Occupation", text: &f.occupation},
		{label: "Interested in followup", toggle: &f.interested},
		{label: "Called", toggle: &f.called},
	}
}

// cycleZone steps the zone picker through no-zone plus every known zone.
func (a *App) cycleZone() {
	if len(a.zones) == 0 {
		return
	}
	cur := -1
	for i, z := range a.zones {
		if strconv.FormatInt(z.ID, 10) == a.form.zoneRaw {
			cur = i
			break
		}
	}
	cur++
	if cur >= len(a.zones) {
		a.form.zoneRaw = "" // wrap around to "no zone"
		return
	}
	a.form.zoneRaw = strconv.FormatInt(a.zones[cur].ID, 10)
}

func (a *App) zoneLabel(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "(none)"
	}
	for _, z := range a.zones {
		if strconv.FormatInt(z.ID, 10) == raw {
			return z.Name
		}
	}
	return raw
}

func (a *App) handleSeekerFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := a.seekerFields()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		if a.form.id != 0 && a.detail != nil {
			return a, a.goDetail(a.form.id)
		}
		return a, a.goHome()
	case "up", "k":
		if a.form.cursor > 0 {
			a.form.cursor--
		}
	case "down", "j", "tab":
		if a.form.cursor < len(fields)-1 {
			a.form.cursor++
		}
	case " ", "space":
		f := fields[a.form.cursor]
		switch {
		case f.toggle != nil:
			*f.toggle = !*f.toggle
		case f.isType:
			if a.form.typ == domain.TypePublic {
				a.form.typ = domain.TypePratishthan
			} else {
				a.form.typ = domain.TypePublic
			}
		case f.isZone:
			a.cycleZone()
		}
	case "enter":
		f := fields[a.form.cursor]
		if f.text != nil {
			a.form.input = *f.text
			a.form.editing = true
		}
	case "s":
		return a.submitSeekerForm()
	}
	return a, nil
}

func (a *App) submitSeekerForm() (tea.Model, tea.Cmd) {
	f := a.form
	if f.id == 0 {
		draft := domain.Seeker{
			FirstName:            strings.TrimSpace(f.firstName),
			LastName:             strings.TrimSpace(f.lastName),
			Mobile:               strings.TrimSpace(f.mobile),
			Email:                strings.TrimSpace(f.email),
			Address:              strings.TrimSpace(f.address),
			City:                 strings.TrimSpace(f.city),
			Occupation:           strings.TrimSpace(f.occupation),
			Type:                 f.typ,
			InterestedInFollowup: f.interested,
			Called:               f.called,
		}
		if raw := strings.TrimSpace(f.zoneRaw); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				a.status = "zone must be a numeric id"
				return a, nil
			}
			draft.ZoneID = &id
		}
		// validation blocks the network call entirely
		if err := draft.Validate(); err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.status = "checking for duplicates..."
		return a, a.dupCheckCmd(a.seq, draft)
	}

	patch, err := a.buildSeekerPatch()
	if err != nil {
		a.status = err.Error()
		return a, nil
	}
	a.status = "saving..."
	return a, a.updateSeekerCmd(a.seq, f.id, patch)
}

// buildSeekerPatch emits only what changed — the seeker resource accepts
// sparse updates — except zone, which is always stated explicitly so an
// empty selection travels as null rather than vanishing.
func (a *App) buildSeekerPatch() (domain.SeekerPatch, error) {
	f := a.form
	var p domain.SeekerPatch
	set := func(dst **string, now, was string) {
		now = strings.TrimSpace(now)
		if now != was {
			v := now
			*dst = &v
		}
	}
	set(&p.FirstName, f.firstName, f.orig.FirstName)
	set(&p.LastName, f.lastName, f.orig.LastName)
	set(&p.Mobile, f.mobile, f.orig.Mobile)
	set(&p.Email, f.email, f.orig.Email)
	set(&p.Address, f.address, f.orig.Address)
	set(&p.City, f.city, f.orig.City)
	set(&p.Occupation, f.occupation, f.orig.Occupation)
	if f.typ != f.orig.Type {
		t := f.typ
		p.Type = &t
	}
	if f.interested != f.orig.InterestedInFollowup {
		v := f.interested
		p.InterestedInFollowup = &v
	}
	if f.called != f.orig.Called {
		v := f.called
		p.Called = &v
	}
	if p.Mobile != nil && *p.Mobile == "" {
		return p, &domain.ValidationError{Field: "mobile", Message: "mobile number is required"}
	}
	if err := p.SetZone(f.zoneRaw); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) onDupChecked(m dupMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if len(m.matches) == 0 {
		a.status = "saving..."
		return a, a.createSeekerCmd(a.seq, m.draft)
	}
	a.dupMatches = m.matches
	a.dupDraft = m.draft
	a.modal = modalDup
	a.status = ""
	return a, nil
}

func (a *App) handleDupKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		a.modal = modalNone
		a.status = "saving..."
		return a, a.createSeekerCmd(a.seq, a.dupDraft)
	case "n", "N", "esc":
		a.modal = modalNone
		a.status = "cancelled"
	}
	return a, nil
}

func (a *App) onSeekerSaved(m seekerSavedMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	if m.created {
		a.status = "seeker added"
		return a, a.goHome()
	}
	a.status = "seeker updated"
	if a.form.id != 0 {
		return a, a.goDetail(a.form.id)
	}
	return a, a.goHome()
}

func (a *App) handleUsersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		return a, a.goHome()
	case "up", "k":
		if a.userCursor > 0 {
			a.userCursor--
		}
	case "down", "j":
		if a.userCursor < len(a.users)-1 {
			a.userCursor++
		}
	case "n":
		return a, a.goUserForm(nil)
	case "enter":
		if len(a.users) > 0 {
			u := a.users[a.userCursor]
			return a, a.goUserForm(&u)
		}
	}
	return a, nil
}

func (a *App) goUserForm(existing *domain.User) tea.Cmd {
	a.screen = screenUser
	a.status = ""
	f := userForm{zoneIdx: -1}
	if existing != nil {
		f.id = existing.ID
		f.name = existing.Name
		f.mobile = existing.Mobile
		f.email = existing.Email
		f.roleID = existing.RoleID
		f.zoneID = existing.ZoneID
	}
	a.userForm = f
	seq := a.nextSeq()
	return tea.Batch(a.loadRoles(seq), a.loadZones(seq))
}

// syncUserForm points the pickers at the user's current role and zone once
// the lookup lists are in, so an untouched edit saves exactly what was there.
func (a *App) syncUserForm() {
	f := &a.userForm
	if f.roleID != 0 {
		for i, r := range a.roles {
			if r.ID == f.roleID {
				f.roleIdx = i
				break
			}
		}
	}
	if f.zoneID != nil {
		for i, z := range a.zones {
			if z.ID == *f.zoneID {
				f.zoneIdx = i
				break
			}
		}
	}
}

type userField struct {
	label  string
	text   *string
	isRole bool
	isZone bool
}

func (a *App) userFields() []userField {
	f := &a.userForm
	fields := []userField{
		{label: "Name", text: &f.name},
		{label: "Mobile", text: &f.mobile},
		{label: "Email", text: &f.email},
	}
	if f.id == 0 {
		fields = append(fields, userField{label: "Password", text: &f.password})
	}
	fields = append(fields,
		userField{label: "Role", isRole: true},
		userField{label: "Zone", isZone: true},
	)
	return fields
}

func (a *App) handleUserFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := a.userFields()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.screen = screenUsers
		return a, a.loadUsers(a.nextSeq())
	case "up", "k":
		if a.userForm.cursor > 0 {
			a.userForm.cursor--
		}
	case "down", "j", "tab":
		if a.userForm.cursor < len(fields)-1 {
			a.userForm.cursor++
		}
	case " ", "space":
		f := fields[a.userForm.cursor]
		if f.isRole && len(a.roles) > 0 {
			a.userForm.roleIdx = (a.userForm.roleIdx + 1) % len(a.roles)
		}
		if f.isZone && len(a.zones) > 0 {
			a.userForm.zoneIdx++
			if a.userForm.zoneIdx >= len(a.zones) {
				a.userForm.zoneIdx = -1
			}
		}
	case "enter":
		f := fields[a.userForm.cursor]
		if f.text != nil {
			a.userForm.input = *f.text
			a.userForm.editing = true
		}
	case "s":
		return a.submitUserForm()
	}
	return a, nil
}

func (a *App) submitUserForm() (tea.Model, tea.Cmd) {
	u, err := a.userFromForm()
	if err != nil {
		a.status = err.Error()
		return a, nil
	}
	create := a.userForm.id == 0
	a.status = "saving..."
	return a, a.saveUserCmd(a.seq, u, a.userForm.password, create)
}

// userFromForm assembles the payload the save will carry.
func (a *App) userFromForm() (domain.User, error) {
	f := a.userForm
	if strings.TrimSpace(f.name) == "" || strings.TrimSpace(f.mobile) == "" {
		return domain.User{}, errors.New("name and mobile are required")
	}
	if len(a.roles) == 0 {
		return domain.User{}, errors.New("roles not loaded yet")
	}
	if f.id == 0 && f.password == "" {
		return domain.User{}, errors.New("password is required")
	}
	u := domain.User{
		ID:     f.id,
		Name:   strings.TrimSpace(f.name),
		Mobile: strings.TrimSpace(f.mobile),
		Email:  strings.TrimSpace(f.email),
		RoleID: a.roles[f.roleIdx].ID,
	}
	if f.zoneIdx >= 0 && f.zoneIdx < len(a.zones) {
		id := a.zones[f.zoneIdx].ID
		u.ZoneID = &id
	}
	return u, nil
}

func (a *App) handleRolesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		return a, a.goHome()
	case "up", "k":
		if a.roleCursor > 0 {
			a.roleCursor--
		}
	case "down", "j":
		if a.roleCursor < len(a.roles)-1 {
			a.roleCursor++
		}
	case "n":
		return a, a.goRoleForm(nil)
	case "enter":
		if len(a.roles) > 0 {
			r := a.roles[a.roleCursor]
			return a, a.goRoleForm(&r)
		}
	}
	return a, nil
}

func (a *App) goRoleForm(existing *domain.Role) tea.Cmd {
	a.screen = screenRole
	a.status = ""
	f := roleForm{selected: map[int64]bool{}}
	if existing != nil {
		f.id = existing.ID
		f.name = existing.Name
		// normalize to numeric ids, as the permission rows key on them
		for _, p := range existing.Permissions {
			f.selected[p.ID] = true
		}
	}
	a.roleForm = f
	return a.loadPermissions(a.nextSeq())
}

func (a *App) handleRoleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(a.perms) + 1 // name row + one per permission
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.screen = screenRoles
		return a, a.loadRoles(a.nextSeq())
	case "up", "k":
		if a.roleForm.cursor > 0 {
			a.roleForm.cursor--
		}
	case "down", "j", "tab":
		if a.roleForm.cursor < rows-1 {
			a.roleForm.cursor++
		}
	case " ", "space":
		if a.roleForm.cursor > 0 {
			p := a.perms[a.roleForm.cursor-1]
			if a.roleForm.selected[p.ID] {
				delete(a.roleForm.selected, p.ID)
			} else {
				a.roleForm.selected[p.ID] = true
			}
		}
	case "enter":
		if a.roleForm.cursor == 0 {
			a.roleForm.input = a.roleForm.name
			a.roleForm.editing = true
		}
	case "s":
		name := strings.TrimSpace(a.roleForm.name)
		if name == "" {
			a.status = "role name is required"
			return a, nil
		}
		ids := make([]int64, 0, len(a.roleForm.selected))
		for _, p := range a.perms {
			if a.roleForm.selected[p.ID] {
				ids = append(ids, p.ID)
			}
		}
		a.status = "saving..."
		return a, a.saveRoleCmd(a.seq, a.roleForm.id, name, ids)
	}
	return a, nil
}

func (a *App) onAdminSaved(m adminSavedMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		return a, nil
	}
	if m.err != nil {
		a.status = "error: " + userMessage(m.err)
		return a, nil
	}
	switch m.what {
	case "user":
		a.status = "user saved"
		a.screen = screenUsers
		return a, a.loadUsers(a.nextSeq())
	case "role":
		a.status = "role saved"
		a.screen = screenRoles
		return a, a.loadRoles(a.nextSeq())
	}
	return a, nil
}

// handleFormInputKey routes the raw key stream into whichever form field is
// capturing text.
func (a *App) handleFormInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	commit := func(buf *string, editing *bool, apply func(string)) (tea.Model, tea.Cmd) {
		switch m.Type {
		case tea.KeyEsc:
			*editing = false
			*buf = ""
			return a, nil
		case tea.KeyEnter:
			apply(*buf)
			*editing = false
			*buf = ""
			return a, nil
		}
		*buf, _ = appendKey(*buf, m)
		return a, nil
	}

	if a.form.editing {
		return commit(&a.form.input, &a.form.editing, func(v string) {
			if f := a.seekerFields()[a.form.cursor]; f.text != nil {
				*f.text = v
			}
		})
	}
	if a.userForm.editing {
		return commit(&a.userForm.input, &a.userForm.editing, func(v string) {
			if f := a.userFields()[a.userForm.cursor]; f.text != nil {
				*f.text = v
			}
		})
	}
	if a.roleForm.editing {
		return commit(&a.roleForm.input, &a.roleForm.editing, func(v string) {
			a.roleForm.name = v
		})
	}
	return a, nil
}
