package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	ok := Seeker{FirstName: "Asha", Mobile: "9876543210", Type: TypePublic}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid seeker rejected: %v", err)
	}

	cases := []struct {
		name  string
		s     Seeker
		field string
	}{
		{"missing first name", Seeker{Mobile: "9876543210", Type: TypePublic}, "first_name"},
		{"blank first name", Seeker{FirstName: "   ", Mobile: "9876543210", Type: TypePublic}, "first_name"},
		{"missing mobile", Seeker{FirstName: "Asha", Type: TypePublic}, "mobile"},
		{"bad type", Seeker{FirstName: "Asha", Mobile: "9876543210", Type: "vip"}, "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	if got := (Seeker{FirstName: "Asha", LastName: "Patil"}).FullName(); got != "Asha Patil" {
		t.Errorf("got %q", got)
	}
	if got := (Seeker{FirstName: "Asha"}).FullName(); got != "Asha" {
		t.Errorf("got %q", got)
	}
}

func TestPatchSetZoneNumeric(t *testing.T) {
	var p SeekerPatch
	if err := p.SetZone("42"); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"zone_id":42`) {
		t.Errorf("zone not numeric in payload: %s", raw)
	}
}

func TestPatchSetZoneEmptyIsExplicitNull(t *testing.T) {
	var p SeekerPatch
	if err := p.SetZone("  "); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	// cleared zone must travel as null, never be silently dropped
	if !strings.Contains(string(raw), `"zone_id":null`) {
		t.Errorf("cleared zone omitted from payload: %s", raw)
	}
}

func TestPatchSetZoneRejectsText(t *testing.T) {
	var p SeekerPatch
	err := p.SetZone("Pune")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "zone_id" {
		t.Fatalf("want zone_id validation error, got %v", err)
	}
}

func TestPatchOmitsUnsetFields(t *testing.T) {
	name := "Asha"
	p := SeekerPatch{FirstName: &name}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"first_name":"Asha"}` {
		t.Errorf("sparse patch leaked fields: %s", raw)
	}
}
