// Package filter turns the seeker list's tri-state filter form into the
// query string understood by GET /seekers, and hosts the independent
// client-side text search applied to whatever the server returned.
package filter

import (
	"net/url"
	"strings"

	"github.com/sahaj/followup/internal/domain"
)

// Tristate is a three-way filter value. The zero value means "don't
// consider": the field is omitted from the outgoing query entirely, which is
// distinct from constraining it to false.
type Tristate int

const (
	Unset Tristate = iota
	True
	False
)

// Cycle advances don't-consider -> true -> false -> don't-consider. The form
// binds this to a single key so every state is reachable by repeated presses.
func (t Tristate) Cycle() Tristate {
	switch t {
	case Unset:
		return True
	case True:
		return False
	default:
		return Unset
	}
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "yes"
	case False:
		return "no"
	default:
		return "-"
	}
}

// Criteria is the in-memory filter form. Its zero value is the fully
// don't-consider state; Reset is assignment of the zero value.
type Criteria struct {
	Zone string
	Type string

	InterestedInFollowup Tristate
	AttendedPuja         Tristate
	AttendedCentres      Tristate
	AttendedSession1     Tristate
	AttendedSession2     Tristate
	AttendedSession3     Tristate
	AttendedSession4     Tristate
	Month1               Tristate
	Month2               Tristate
	Month3               Tristate
	Month4               Tristate
}

// Empty reports whether every field is unset, i.e. the query would be empty.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// Query encodes the criteria as the flat AND-combined key/value list the
// collection endpoint expects. Fields are visited in a fixed order so the
// same criteria always produce the same query, and unset fields are simply
// absent — omission is the carrier of "don't consider".
func (c Criteria) Query() url.Values {
	q := url.Values{}
	text := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(key, v)
		}
	}
	tri := func(key string, v Tristate) {
		switch v {
		case True:
			q.Set(key, "true")
		case False:
			q.Set(key, "false")
		}
	}
	text("zone", c.Zone)
	text("type", c.Type)
	tri("interested_in_followup", c.InterestedInFollowup)
	tri("attended_puja", c.AttendedPuja)
	tri("attended_centres", c.AttendedCentres)
	tri("attended_session_1", c.AttendedSession1)
	tri("attended_session_2", c.AttendedSession2)
	tri("attended_session_3", c.AttendedSession3)
	tri("attended_session_4", c.AttendedSession4)
	tri("month_1", c.Month1)
	tri("month_2", c.Month2)
	tri("month_3", c.Month3)
	tri("month_4", c.Month4)
	return q
}

// MatchesSearch is the client-side refinement: case-insensitive substring
// match across first name, last name and mobile. It composes with the
// server-side query by AND and never replaces it. An empty needle matches
// everything.
func MatchesSearch(s domain.Seeker, needle string) bool {
	needle = strings.TrimSpace(strings.ToLower(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.FirstName), needle) ||
		strings.Contains(strings.ToLower(s.LastName), needle) ||
		strings.Contains(s.Mobile, needle)
}

// ApplySearch filters an already-fetched list, preserving order.
func ApplySearch(in []domain.Seeker, needle string) []domain.Seeker {
	if strings.TrimSpace(needle) == "" {
		return in
	}
	out := make([]domain.Seeker, 0, len(in))
	for _, s := range in {
		if MatchesSearch(s, needle) {
			out = append(out, s)
		}
	}
	return out
}
