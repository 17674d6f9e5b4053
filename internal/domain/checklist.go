package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexBool is a bool whose decoder tolerates the 0/1 integer and string
// encodings the backend has historically emitted for checklist flags. It
// always marshals as a plain JSON bool, so the boolean form is canonical
// everywhere inside the client.
type FlexBool bool

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*b = true
		return nil
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*b = false
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*b = n != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "1", "true":
			*b = true
		case "", "0", "false":
			*b = false
		default:
			return fmt.Errorf("checklist flag: cannot decode %q as bool", s)
		}
		return nil
	}
	return fmt.Errorf("checklist flag: cannot decode %s as bool", data)
}

// Checklist is the 1:1 follow-up progress record of a seeker. The backend
// creates it lazily; a missing document reads as the zero value. Every flag
// keeps its comment even while the flag is off, and the document is only
// ever written back whole.
type Checklist struct {
	AttendedSession1 FlexBool `json:"attended_session_1"`
	Session1Comments string   `json:"session_1_comments"`
	AttendedSession2 FlexBool `json:"attended_session_2"`
	Session2Comments string   `json:"session_2_comments"`
	AttendedSession3 FlexBool `json:"attended_session_3"`
	Session3Comments string   `json:"session_3_comments"`
	AttendedSession4 FlexBool `json:"attended_session_4"`
	Session4Comments string   `json:"session_4_comments"`

	FeelingVibrations FlexBool `json:"feeling_vibrations"`
	AttendedCentres   FlexBool `json:"attended_centres"`
	AttendedSeminar   FlexBool `json:"attended_seminar"`
	AttendedPuja      FlexBool `json:"attended_puja"`

	Month1         FlexBool `json:"month_1"`
	Month1Comments string   `json:"month_1_comments"`
	Month2         FlexBool `json:"month_2"`
	Month2Comments string   `json:"month_2_comments"`
	Month3         FlexBool `json:"month_3"`
	Month3Comments string   `json:"month_3_comments"`
	Month4         FlexBool `json:"month_4"`
	Month4Comments string   `json:"month_4_comments"`
}

// ChecklistChange is a partial change set. Nil fields are left untouched by
// Merge, so a writer only states what the operator actually edited.
type ChecklistChange struct {
	AttendedSession1 *bool
	Session1Comments *string
	AttendedSession2 *bool
	Session2Comments *string
	AttendedSession3 *bool
	Session3Comments *string
	AttendedSession4 *bool
	Session4Comments *string

	FeelingVibrations *bool
	AttendedCentres   *bool
	AttendedSeminar   *bool
	AttendedPuja      *bool

	Month1         *bool
	Month1Comments *string
	Month2         *bool
	Month2Comments *string
	Month3         *bool
	Month3Comments *string
	Month4         *bool
	Month4Comments *string
}

// Merge overlays a change set onto an existing document and returns the full
// replacement to submit. It is a pure function: the read-merge-write contract
// lives here, independent of any network call. Toggling a flag never touches
// its comment.
func Merge(old Checklist, change ChecklistChange) Checklist {
	out := old
	setFlag := func(dst *FlexBool, src *bool) {
		if src != nil {
			*dst = FlexBool(*src)
		}
	}
	setText := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setFlag(&out.AttendedSession1, change.AttendedSession1)
	setText(&out.Session1Comments, change.Session1Comments)
	setFlag(&out.AttendedSession2, change.AttendedSession2)
	setText(&out.Session2Comments, change.Session2Comments)
	setFlag(&out.AttendedSession3, change.AttendedSession3)
	setText(&out.Session3Comments, change.Session3Comments)
	setFlag(&out.AttendedSession4, change.AttendedSession4)
	setText(&out.Session4Comments, change.Session4Comments)

	setFlag(&out.FeelingVibrations, change.FeelingVibrations)
	setFlag(&out.AttendedCentres, change.AttendedCentres)
	setFlag(&out.AttendedSeminar, change.AttendedSeminar)
	setFlag(&out.AttendedPuja, change.AttendedPuja)

	setFlag(&out.Month1, change.Month1)
	setText(&out.Month1Comments, change.Month1Comments)
	setFlag(&out.Month2, change.Month2)
	setText(&out.Month2Comments, change.Month2Comments)
	setFlag(&out.Month3, change.Month3)
	setText(&out.Month3Comments, change.Month3Comments)
	setFlag(&out.Month4, change.Month4)
	setText(&out.Month4Comments, change.Month4Comments)
	return out
}

// Empty reports whether the change set touches nothing.
func (c ChecklistChange) Empty() bool {
	return c == ChecklistChange{}
}
