// Package service holds client-side helpers that combine API data with
// local scoring.
package service

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/sahaj/followup/internal/api"
	"github.com/sahaj/followup/internal/domain"
	"github.com/sahaj/followup/internal/filter"
)

// nameThreshold is the normalized edit-distance similarity above which two
// names count as a probable duplicate.
const nameThreshold = 0.82

// DupCheck warns before a new seeker is submitted when an existing record
// looks like the same person: identical mobile, or a close name match.
type DupCheck struct {
	API *api.Client
}

// Match pairs a candidate duplicate with its similarity score.
type Match struct {
	Seeker domain.Seeker
	Score  float64
}

// FindSimilar fetches the current collection and scores it against the
// draft. Strong matches come first (exact mobile ranks as 1.0).
func (d *DupCheck) FindSimilar(ctx context.Context, draft domain.Seeker) ([]Match, error) {
	existing, err := d.API.ListSeekers(ctx, filter.Criteria{})
	if err != nil {
		return nil, err
	}
	return Score(draft, existing), nil
}

// Score is the pure part: rank existing seekers by how likely they are the
// same person as the draft.
func Score(draft domain.Seeker, existing []domain.Seeker) []Match {
	var out []Match
	for _, s := range existing {
		score := similarity(draft, s)
		if score >= nameThreshold {
			out = append(out, Match{Seeker: s, Score: score})
		}
	}
	// highest score first, stable for equal scores
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func similarity(a, b domain.Seeker) float64 {
	if mob := strings.TrimSpace(a.Mobile); mob != "" && mob == strings.TrimSpace(b.Mobile) {
		return 1.0
	}
	return nameSimilarity(a.FullName(), b.FullName())
}

func nameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return 1.0 - float64(dist)/float64(longer)
}
