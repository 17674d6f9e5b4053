package filter

import (
	"testing"

	"github.com/sahaj/followup/internal/domain"
)

func TestCycleVisitsAllStates(t *testing.T) {
	var s Tristate
	seen := map[Tristate]bool{s: true}
	for i := 0; i < 2; i++ {
		s = s.Cycle()
		seen[s] = true
	}
	if len(seen) != 3 {
		t.Fatalf("cycle reached %d states, want 3", len(seen))
	}
	if s.Cycle() != Unset {
		t.Error("cycle does not wrap back to don't-consider")
	}
}

func TestEmptyCriteriaEmptyQuery(t *testing.T) {
	var c Criteria
	if !c.Empty() {
		t.Error("zero criteria should be empty")
	}
	if q := c.Query(); len(q) != 0 {
		t.Errorf("zero criteria produced query %v", q)
	}
}

func TestQueryOmitsUnsetFields(t *testing.T) {
	c := Criteria{Zone: "Pune", AttendedPuja: True}
	got := c.Query().Encode()
	if got != "attended_puja=true&zone=Pune" {
		t.Errorf("query = %q", got)
	}
}

func TestQueryFalseIsAConstraint(t *testing.T) {
	c := Criteria{InterestedInFollowup: False}
	got := c.Query().Encode()
	// constrained-to-false is present; don't-consider would be absent
	if got != "interested_in_followup=false" {
		t.Errorf("query = %q", got)
	}
}

func TestQueryDeterministic(t *testing.T) {
	c := Criteria{
		Zone:             "Mumbai",
		Type:             "public",
		AttendedSession1: True,
		Month4:           False,
	}
	first := c.Query().Encode()
	for i := 0; i < 10; i++ {
		if got := c.Query().Encode(); got != first {
			t.Fatalf("query unstable: %q vs %q", got, first)
		}
	}
}

func TestResetIsZeroValue(t *testing.T) {
	c := Criteria{Zone: "Pune", Month1: True}
	c = Criteria{}
	if !c.Empty() {
		t.Error("reset criteria not empty")
	}
}

func seekers() []domain.Seeker {
	return []domain.Seeker{
		{ID: 1, FirstName: "Asha", LastName: "Patil", Mobile: "9876543210"},
		{ID: 2, FirstName: "Rahul", LastName: "Deshmukh", Mobile: "9123456780"},
		{ID: 3, FirstName: "Meera", LastName: "Ashar", Mobile: "9000000000"},
	}
}

func TestMatchesSearch(t *testing.T) {
	cases := []struct {
		needle string
		want   []int64
	}{
		{"", []int64{1, 2, 3}},
		{"ash", []int64{1, 3}}, // first name and last name both match
		{"ASH", []int64{1, 3}},
		{"912", []int64{2}},
		{"nobody", nil},
	}
	for _, tc := range cases {
		got := ApplySearch(seekers(), tc.needle)
		ids := make([]int64, 0, len(got))
		for _, s := range got {
			ids = append(ids, s.ID)
		}
		if len(ids) != len(tc.want) {
			t.Errorf("search %q = %v, want %v", tc.needle, ids, tc.want)
			continue
		}
		for i := range ids {
			if ids[i] != tc.want[i] {
				t.Errorf("search %q = %v, want %v", tc.needle, ids, tc.want)
				break
			}
		}
	}
}
