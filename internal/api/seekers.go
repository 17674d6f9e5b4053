package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
)

// ListSeekers fetches the collection, narrowed by the criteria's query.
// Empty criteria reproduce the unfiltered collection; the transform is pure
// and idempotent, never a narrowing of a previous result.
func (c *Client) ListSeekers(ctx context.Context, crit filter.Criteria) ([]domain.Seeker, error) {
	var out []domain.Seeker
	if err := c.do(ctx, "list seekers", http.MethodGet, "/seekers", crit.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSeeker fetches one seeker by id.
func (c *Client) GetSeeker(ctx context.Context, id int64) (domain.Seeker, error) {
	var out domain.Seeker
	err := c.do(ctx, "get seeker", http.MethodGet, fmt.Sprintf("/seekers/%d", id), nil, nil, &out)
	return out, err
}

// CreateSeeker validates locally and submits a new seeker. Validation
// failures block the call entirely.
func (c *Client) CreateSeeker(ctx context.Context, s domain.Seeker) (domain.Seeker, error) {
	if err := s.Validate(); err != nil {
		return domain.Seeker{}, err
	}
	var out domain.Seeker
	err := c.do(ctx, "create seeker", http.MethodPost, "/seekers", nil, s, &out)
	return out, err
}

// UpdateSeeker submits a sparse patch; unlike the checklist, the seeker
// resource accepts partial updates.
func (c *Client) UpdateSeeker(ctx context.Context, id int64, patch domain.SeekerPatch) error {
	return c.do(ctx, "update seeker", http.MethodPut, fmt.Sprintf("/seekers/%d", id), nil, patch, nil)
}

// The checklist endpoint wraps the document in a one-element array; an
// absent or empty wrapper reads as the zero-value document (the server
// creates checklists lazily).
type checklistEnvelope struct {
	Checklist []domain.Checklist `json:"checklist"`
}

// GetChecklist fetches a seeker's follow-up checklist.
func (c *Client) GetChecklist(ctx context.Context, seekerID int64) (domain.Checklist, error) {
	var env checklistEnvelope
	err := c.do(ctx, "get checklist", http.MethodGet, fmt.Sprintf("/seekers/%d/checklist", seekerID), nil, nil, &env)
	if err != nil {
		return domain.Checklist{}, err
	}
	if len(env.Checklist) == 0 {
		return domain.Checklist{}, nil
	}
	return env.Checklist[0], nil
}

// PutChecklist replaces the whole document. Callers must have produced doc
// via domain.Merge over a freshly fetched copy so untouched fields survive.
func (c *Client) PutChecklist(ctx context.Context, seekerID int64, doc domain.Checklist) error {
	return c.do(ctx, "put checklist", http.MethodPut, fmt.Sprintf("/seekers/%d/checklist", seekerID), nil, doc, nil)
}

type assignRequest struct {
	ModeratorID int64   `json:"moderator_id"`
	SeekerIDs   []int64 `json:"seeker_ids"`
}

// AssignModerator binds every listed seeker to the moderator in one batch.
// The server applies it atomically or fails the whole request; there is no
// partial success.
func (c *Client) AssignModerator(ctx context.Context, moderatorID int64, seekerIDs []int64) error {
	return c.do(ctx, "assign moderator", http.MethodPost, "/seekers/assign-moderator", nil,
		assignRequest{ModeratorID: moderatorID, SeekerIDs: seekerIDs}, nil)
}
