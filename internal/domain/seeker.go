package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SeekerType is one of the two enumerated seeker categories.
type SeekerType string

const (
	TypePratishthan SeekerType = "pratishthan"
	TypePublic      SeekerType = "public"
)

// Valid reports whether t is one of the enumerated values.
func (t SeekerType) Valid() bool {
	return t == TypePratishthan || t == TypePublic
}

// Zone is a lookup dimension referenced by seekers and users.
type Zone struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Seeker is a tracked prospective member. ModeratorID nil means unassigned,
// which is a first-class state distinct from any assigned user.
type Seeker struct {
	ID                   int64      `json:"id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Mobile               string     `json:"mobile"`
	Email                string     `json:"email,omitempty"`
	Address              string     `json:"address,omitempty"`
	City                 string     `json:"city"`
	ZoneID               *int64     `json:"zone_id,omitempty"`
	ZoneName             string     `json:"zone,omitempty"`
	Type                 SeekerType `json:"type"`
	Occupation           string     `json:"occupation,omitempty"`
	InterestedInFollowup bool       `json:"interested_in_followup"`
	Called               bool       `json:"called"`
	ModeratorID          *int64     `json:"moderator_id,omitempty"`
	ModeratorName        string     `json:"moderator,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Assigned reports whether a moderator is responsible for this seeker.
func (s Seeker) Assigned() bool { return s.ModeratorID != nil }

// FullName joins first and last name for display.
func (s Seeker) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ValidationError is a local pre-submit failure. It blocks the request; no
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the invariants a seeker must satisfy before submission.
func (s Seeker) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(s.Mobile) == "" {
		return &ValidationError{Field: "mobile", Message: "mobile number is required"}
	}
	if !s.Type.Valid() {
		return &ValidationError{Field: "type", Message: "type must be pratishthan or public"}
	}
	return nil
}

// SeekerPatch is a sparse update for PUT /seekers/{id}. Only non-nil fields
// are sent. ZoneID uses a double pointer so "no zone" is submitted as an
// explicit null rather than omitted.
type SeekerPatch struct {
	FirstName            *string     `json:"first_name,omitempty"`
	LastName             *string     `json:"last_name,omitempty"`
	Mobile               *string     `json:"mobile,omitempty"`
	Email                *string     `json:"email,omitempty"`
	Address              *string     `json:"address,omitempty"`
	City                 *string     `json:"city,omitempty"`
	ZoneID               **int64     `json:"zone_id,omitempty"`
	Type                 *SeekerType `json:"type,omitempty"`
	Occupation           *string     `json:"occupation,omitempty"`
	InterestedInFollowup *bool       `json:"interested_in_followup,omitempty"`
	Called               *bool       `json:"called,omitempty"`
}

// SetZone records a zone selection on the patch. The raw form value is the
// picker's string; empty means an explicit "no zone", anything else must be
// the numeric zone id.
func (p *SeekerPatch) SetZone(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		var null *int64
		p.ZoneID = &null
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &ValidationError{Field: "zone_id", Message: "zone must be a numeric id"}
	}
	zone := &id
	p.ZoneID = &zone
	return nil
}
