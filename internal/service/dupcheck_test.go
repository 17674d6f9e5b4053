package service

import (
	"testing"

	"github.com/sahaj/followup/internal/domain"
)

func TestScoreExactMobileRanksFirst(t *testing.T) {
	draft := domain.Seeker{FirstName: "Asha", LastName: "Patil", Mobile: "9876543210"}
	existing := []domain.Seeker{
		{ID: 1, FirstName: "Asha", LastName: "Patel", Mobile: "9000000001"},
		{ID: 2, FirstName: "Someone", LastName: "Else", Mobile: "9876543210"},
	}
	got := Score(draft, existing)
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	if got[0].Seeker.ID != 2 || got[0].Score != 1.0 {
		t.Errorf("first match = id %d score %v, want the mobile hit at 1.0", got[0].Seeker.ID, got[0].Score)
	}
}

func TestScoreCloseNameMatches(t *testing.T) {
	draft := domain.Seeker{FirstName: "Asha", LastName: "Patil", Mobile: "9000000001"}
	existing := []domain.Seeker{
		{ID: 1, FirstName: "Asha", LastName: "Patil", Mobile: "9000000002"}, // identical name
		{ID: 2, FirstName: "Rahul", LastName: "Deshmukh", Mobile: "9000000003"},
	}
	got := Score(draft, existing)
	if len(got) != 1 || got[0].Seeker.ID != 1 {
		t.Fatalf("matches = %+v, want only the identical name", got)
	}
	if got[0].Score != 1.0 {
		t.Errorf("identical name score = %v", got[0].Score)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	draft := domain.Seeker{FirstName: "ASHA", LastName: "PATIL", Mobile: "9000000001"}
	existing := []domain.Seeker{{ID: 1, FirstName: "asha", LastName: "patil", Mobile: "9000000002"}}
	if got := Score(draft, existing); len(got) != 1 {
		t.Fatalf("case difference broke the match: %+v", got)
	}
}

func TestScoreIgnoresDistantNames(t *testing.T) {
	draft := domain.Seeker{FirstName: "Asha", Mobile: "9000000001"}
	existing := []domain.Seeker{{ID: 1, FirstName: "Bartholomew", LastName: "Higginbotham", Mobile: "9000000002"}}
	if got := Score(draft, existing); len(got) != 0 {
		t.Errorf("distant name matched: %+v", got)
	}
}

func TestScoreEmptyCollection(t *testing.T) {
	draft := domain.Seeker{FirstName: "Asha", Mobile: "9000000001"}
	if got := Score(draft, nil); len(got) != 0 {
		t.Errorf("matches from empty collection: %+v", got)
	}
}
