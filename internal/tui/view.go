package tui

import (
	"fmt"
	"strings"

	"github.com/sahaj/followup/internal/domain"
)

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenLoading:
		body = statusStyle.Render("restoring session...")
	case screenLogin:
		body = a.viewLogin()
	case screenHome:
		body = a.viewHome()
	case screenSeekers:
		body = a.viewSeekers()
	case screenDetail:
		body = a.viewDetail()
	case screenChecklist:
		body = a.viewChecklist()
	case screenSeeker:
		body = a.viewSeekerForm()
	case screenUsers:
		body = a.viewUsers()
	case screenUser:
		body = a.viewUserForm()
	case screenRoles:
		body = a.viewRoles()
	case screenRole:
		body = a.viewRoleForm()
	}

	switch a.modal {
	case modalFilter:
		body = a.viewFilterModal()
	case modalAssign:
		body = a.viewAssignModal()
	case modalDup:
		body = a.viewDupModal()
	}

	out := body
	if a.status != "" {
		out += "\n\n" + statusStyle.Render(a.status)
	}
	return out + "\n"
}

func cursor(on bool) string {
	if on {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func check(on bool) string {
	if on {
		return yesStyle.Render("[x]")
	}
	return "[ ]"
}

func field(label, value string, focused, editing bool, buf string) string {
	v := value
	if editing {
		v = buf + cursorStyle.Render("█")
	}
	line := fmt.Sprintf("%s%s %s", cursor(focused), labelStyle.Render(label+":"), v)
	return line
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sahaj Followup") + "\n\n")
	mobile := a.loginMobile
	if a.loginFocus == 0 {
		mobile += cursorStyle.Render("█")
	}
	pw := strings.Repeat("*", len(a.loginPassword))
	if a.loginFocus == 1 {
		pw += cursorStyle.Render("█")
	}
	b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(a.loginFocus == 0), labelStyle.Render("Mobile:"), mobile))
	b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(a.loginFocus == 1), labelStyle.Render("Password:"), pw))
	b.WriteString("\n" + footerStyle.Render("tab switch · enter sign in · ctrl+c quit"))
	return b.String()
}

func (a *App) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sahaj Followup"))
	if a.identity.Name != "" {
		b.WriteString(dimStyle.Render("  ·  " + a.identity.Name + " (" + a.identity.RoleName + ")"))
	}
	b.WriteString("\n\n")

	if a.stats != nil {
		s := a.stats
		card := fmt.Sprintf("seekers %d   assigned %d   unassigned %d   interested %d",
			s.TotalSeekers, s.Assigned, s.Unassigned, s.Interested)
		b.WriteString(boxStyle.Render(card) + "\n\n")
	}

	for i, item := range a.menu {
		b.WriteString(cursor(i == a.menuCursor) + item.Title + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("↑/↓ move · enter open · q quit"))
	return b.String()
}

func (a *App) viewSeekers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Seekers"))
	if !a.applied.Empty() {
		b.WriteString(warnStyle.Render("  [filtered]"))
	}
	if n := a.assign.Count(); n > 0 {
		b.WriteString(selectedStyle.Render(fmt.Sprintf("  %d selected", n)))
	}
	b.WriteString("\n")
	if a.searching || a.search != "" {
		q := a.search
		if a.searching {
			q += cursorStyle.Render("█")
		}
		b.WriteString(labelStyle.Render("search: ") + q + "\n")
	}
	b.WriteString("\n")

	vis := a.visibleSeekers()
	if len(vis) == 0 {
		b.WriteString(dimStyle.Render("no seekers") + "\n")
	}
	for i, s := range vis {
		mark := " "
		if a.assign.IsSelected(s.ID) {
			mark = selectedStyle.Render("*")
		}
		mod := dimStyle.Render("unassigned")
		if s.Assigned() {
			mod = s.ModeratorName
			if mod == "" {
				mod = fmt.Sprintf("moderator %d", *s.ModeratorID)
			}
		}
		line := fmt.Sprintf("%s%s %-24s %-12s %-12s %s",
			cursor(i == a.listCursor), mark, s.FullName(), s.Mobile, s.ZoneName, mod)
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + footerStyle.Render("space select · a assign · f filter · / search · r refresh · n new · enter open · esc back"))
	return b.String()
}

func (a *App) viewDetail() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Seeker") + "\n\n")
	if a.detail == nil {
		b.WriteString(dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	s := a.detail
	rows := []struct{ k, v string }{
		{"Name", s.FullName()},
		{"Mobile", s.Mobile},
		{"Email", s.Email},
		{"Address", s.Address},
		{"City", s.City},
		{"Zone", s.ZoneName},
		{"Type", string(s.Type)},
		{"Occupation", s.Occupation},
		{"Interested", check(s.InterestedInFollowup)},
		{"Called", check(s.Called)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", r.k+":")), r.v))
	}
	mod := dimStyle.Render("unassigned")
	if s.Assigned() {
		mod = s.ModeratorName
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "Moderator:")), mod))
	if !s.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "Added:")), s.CreatedAt.Format(a.cfg.UI.DateFormat)))
	}

	b.WriteString("\n" + titleStyle.Render("Checklist") + "\n")
	if a.checklist == nil {
		msg := "loading..."
		if a.checklistErr != "" {
			msg = a.checklistErr
		}
		b.WriteString("  " + dimStyle.Render(msg) + "\n")
	} else {
		b.WriteString(a.checklistSummary(*a.checklist))
	}

	b.WriteString("\n" + footerStyle.Render("e edit · c checklist · esc back · q quit"))
	return b.String()
}

// checklistSummary is the read-only rendering on the profile screen.
func (a *App) checklistSummary(c domain.Checklist) string {
	var b strings.Builder
	write := func(label string, f domain.FlexBool, comment string) {
		line := fmt.Sprintf("  %s %s", check(bool(f)), label)
		if comment != "" {
			line += dimStyle.Render("  — " + comment)
		}
		b.WriteString(line + "\n")
	}
	write("Session 1", c.AttendedSession1, c.Session1Comments)
	write("Session 2", c.AttendedSession2, c.Session2Comments)
	write("Session 3", c.AttendedSession3, c.Session3Comments)
	write("Session 4", c.AttendedSession4, c.Session4Comments)
	write("Feeling vibrations", c.FeelingVibrations, "")
	write("Attended centre", c.AttendedCentres, "")
	write("Attended seminar", c.AttendedSeminar, "")
	write("Attended puja", c.AttendedPuja, "")
	write("Month 1", c.Month1, c.Month1Comments)
	write("Month 2", c.Month2, c.Month2Comments)
	write("Month 3", c.Month3, c.Month3Comments)
	write("Month 4", c.Month4, c.Month4Comments)
	return b.String()
}

func (a *App) viewChecklist() string {
	var b strings.Builder
	name := ""
	if a.detail != nil {
		name = " — " + a.detail.FullName()
	}
	b.WriteString(titleStyle.Render("Checklist"+name) + "\n\n")

	view := a.clView()
	for i, row := range checklistRows() {
		focused := i == a.clCursor
		if row.flag != nil {
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), check(bool(*row.flag(&view))), row.label))
			continue
		}
		text := *row.text(&view)
		if focused && a.clEditing {
			text = a.clInput + cursorStyle.Render("█")
		} else if text == "" {
			text = dimStyle.Render("(none)")
		}
		b.WriteString(fmt.Sprintf("%s  %s %s\n", cursor(focused), labelStyle.Render(row.label+":"), text))
	}

	if !a.clChange.Empty() {
		b.WriteString("\n" + warnStyle.Render("unsaved changes"))
	}
	b.WriteString("\n" + footerStyle.Render("space toggle · enter edit comment · s save · esc back"))
	return b.String()
}

func (a *App) viewSeekerForm() string {
	var b strings.Builder
	title := "Add Seeker"
	if a.form.id != 0 {
		title = "Edit Seeker"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, f := range a.seekerFields() {
		focused := i == a.form.cursor
		switch {
		case f.text != nil:
			b.WriteString(field(f.label, *f.text, focused, focused && a.form.editing, a.form.input) + "\n")
		case f.toggle != nil:
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), check(*f.toggle), f.label))
		case f.isType:
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), labelStyle.Render("Type:"), string(a.form.typ)))
		case f.isZone:
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), labelStyle.Render("Zone:"), a.zoneLabel(a.form.zoneRaw)))
		}
	}

	b.WriteString("\n" + footerStyle.Render("enter edit · space toggle/cycle · s save · esc cancel"))
	return b.String()
}

func (a *App) viewUsers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Users") + "\n\n")
	if len(a.users) == 0 {
		b.WriteString(dimStyle.Render("no users") + "\n")
	}
	for i, u := range a.users {
		b.WriteString(fmt.Sprintf("%s%-24s %-12s %s\n",
			cursor(i == a.userCursor), u.Name, u.Mobile, dimStyle.Render(u.RoleName)))
	}
	b.WriteString("\n" + footerStyle.Render("enter edit · n new · esc back"))
	return b.String()
}

func (a *App) viewUserForm() string {
	var b strings.Builder
	title := "Add User"
	if a.userForm.id != 0 {
		title = "Edit User"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, f := range a.userFields() {
		focused := i == a.userForm.cursor
		switch {
		case f.text != nil:
			val := *f.text
			if f.label == "Password" {
				val = strings.Repeat("*", len(val))
			}
			b.WriteString(field(f.label, val, focused, focused && a.userForm.editing, a.userForm.input) + "\n")
		case f.isRole:
			role := dimStyle.Render("(loading)")
			if len(a.roles) > 0 {
				role = a.roles[a.userForm.roleIdx].Name
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), labelStyle.Render("Role:"), role))
		case f.isZone:
			zone := "(none)"
			if a.userForm.zoneIdx >= 0 && a.userForm.zoneIdx < len(a.zones) {
				zone = a.zones[a.userForm.zoneIdx].Name
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), labelStyle.Render("Zone:"), zone))
		}
	}

	b.WriteString("\n" + footerStyle.Render("enter edit · space cycle · s save · esc cancel"))
	return b.String()
}

func (a *App) viewRoles() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Roles") + "\n\n")
	if len(a.roles) == 0 {
		b.WriteString(dimStyle.Render("no roles") + "\n")
	}
	for i, r := range a.roles {
		b.WriteString(fmt.Sprintf("%s%-20s %s\n",
			cursor(i == a.roleCursor), r.Name, dimStyle.Render(fmt.Sprintf("%d permissions", len(r.Permissions)))))
	}
	b.WriteString("\n" + footerStyle.Render("enter edit · n new · esc back"))
	return b.String()
}

func (a *App) viewRoleForm() string {
	var b strings.Builder
	title := "Add Role"
	if a.roleForm.id != 0 {
		title = "Edit Role"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	b.WriteString(field("Name", a.roleForm.name, a.roleForm.cursor == 0, a.roleForm.editing, a.roleForm.input) + "\n\n")
	for i, p := range a.perms {
		focused := a.roleForm.cursor == i+1
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focused), check(a.roleForm.selected[p.ID]), p.Name))
	}

	b.WriteString("\n" + footerStyle.Render("space toggle · s save · esc cancel"))
	return b.String()
}

func (a *App) viewFilterModal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter") + "\n\n")
	for i, f := range a.filterFields() {
		focused := i == a.filterCur
		if f.tri != nil {
			b.WriteString(fmt.Sprintf("%s%-24s %s\n", cursor(focused), f.label, f.tri.String()))
			continue
		}
		val := *f.text
		if focused {
			val += cursorStyle.Render("█")
		}
		b.WriteString(fmt.Sprintf("%s%-24s %s\n", cursor(focused), f.label, val))
	}
	b.WriteString("\n" + footerStyle.Render("space cycle · enter apply · ctrl+r reset · esc cancel"))
	return modalStyle.Render(b.String())
}

func (a *App) viewAssignModal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Assign %d seeker(s)", a.assign.Count())) + "\n\n")
	mods := a.assign.Moderators()
	if len(mods) == 0 {
		b.WriteString(dimStyle.Render("no moderators") + "\n")
	}
	for i, m := range mods {
		mark := " "
		if a.assign.Chosen() == m.ID {
			mark = selectedStyle.Render("*")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(i == a.modCursor), mark, m.Name))
	}
	b.WriteString("\n" + footerStyle.Render("space choose · enter assign · esc cancel"))
	return modalStyle.Render(b.String())
}

func (a *App) viewDupModal() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("Possible duplicates") + "\n\n")
	for _, m := range a.dupMatches {
		b.WriteString(fmt.Sprintf("  %-24s %-12s %s\n",
			m.Seeker.FullName(), m.Seeker.Mobile, dimStyle.Render(fmt.Sprintf("%.0f%%", m.Score*100))))
	}
	b.WriteString("\n" + "add " + titleStyle.Render(a.dupDraft.FullName()) + " anyway?")
	b.WriteString("\n\n" + footerStyle.Render("y add anyway · n cancel"))
	return modalStyle.Render(b.String())
}
