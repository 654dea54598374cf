package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

func decode(t *testing.T, raw string) domain.DayRecord {
	t.Helper()
	var r domain.RawDayRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r.Canonical()
}

func TestCanonical_PresentationList(t *testing.T) {
	rec := decode(t, `{"presentations": ["InPerson", "Zoom", "V"]}`)
	if rec.Presentations != 3 {
		t.Errorf("expected 3 presentations, got %d", rec.Presentations)
	}
	want := []domain.PresentationType{
		domain.PresentationInPerson,
		domain.PresentationVirtual,
		domain.PresentationVirtual,
	}
	if len(rec.PresentationTypes) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(rec.PresentationTypes))
	}
	for i, pt := range want {
		if rec.PresentationTypes[i] != pt {
			t.Errorf("type %d: expected %s, got %s", i, pt, rec.PresentationTypes[i])
		}
	}
}

func TestCanonical_PresentationNumberPlusPBRs(t *testing.T) {
	rec := decode(t, `{"presentations": 2, "pbrs": 1}`)
	if rec.Presentations != 3 {
		t.Errorf("expected 3, got %d", rec.Presentations)
	}
	if len(rec.PresentationTypes) != 0 {
		t.Errorf("aggregate form carries no types, got %v", rec.PresentationTypes)
	}
}

func TestCanonical_SitdownEnrollments(t *testing.T) {
	rec := decode(t, `{"enrolls": 1, "sitdowns": ["E", "X", "E", 7]}`)
	// Two "E" tags add to the numeric field; the non-string entry is ignored.
	if rec.Enrolls != 3 {
		t.Errorf("expected 3 enrolls, got %d", rec.Enrolls)
	}
}

func TestCanonical_PersonalDevFallbacks(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`{"personalDevelopment": true}`, true},
		{`{"read": true}`, true},
		{`{"audio": true}`, true},
		{`{"read": false, "audio": false}`, false},
		{`{}`, false},
	}
	for _, tc := range cases {
		if rec := decode(t, tc.raw); rec.PersonalDev != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.raw, tc.want, rec.PersonalDev)
		}
	}
}

func TestCanonical_MalformedDegradesToZero(t *testing.T) {
	rec := decode(t, `{"exposures": "garbage", "threeWays": {"a": 1}, "sitdowns": "E", "presentations": true}`)
	if !rec.IsZero() {
		t.Errorf("malformed fields must degrade to zero activity, got %+v", rec)
	}
}

func TestCanonical_NullRecord(t *testing.T) {
	rec := decode(t, `null`)
	if !rec.IsZero() {
		t.Errorf("null record must be zero activity, got %+v", rec)
	}
}

func TestMonthKey_Roundtrip(t *testing.T) {
	k := domain.MonthKey{Year: 2026, Month: time.August}
	if k.String() != "2026-08" {
		t.Errorf("expected 2026-08, got %s", k.String())
	}
	parsed, err := domain.ParseMonthKey("2026-08")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != k {
		t.Errorf("roundtrip mismatch: %v", parsed)
	}
	if _, err := domain.ParseMonthKey("august"); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestMonthKey_PrevAcrossYear(t *testing.T) {
	jan := domain.MonthKey{Year: 2026, Month: time.January}
	prev := jan.Prev()
	if prev.Year != 2025 || prev.Month != time.December {
		t.Errorf("expected 2025-12, got %v", prev)
	}
}

func TestMonthKey_Days(t *testing.T) {
	cases := []struct {
		key  domain.MonthKey
		want int
	}{
		{domain.MonthKey{Year: 2026, Month: time.February}, 28},
		{domain.MonthKey{Year: 2024, Month: time.February}, 29},
		{domain.MonthKey{Year: 2026, Month: time.August}, 31},
	}
	for _, tc := range cases {
		if got := tc.key.Days(); got != tc.want {
			t.Errorf("%s: expected %d days, got %d", tc.key, tc.want, got)
		}
	}
}

func TestStageTransitions(t *testing.T) {
	p := domain.Prospect{Stage: domain.StageNew}
	now := time.Now()

	if err := p.Advance(domain.StageEnrolled, now); err == nil {
		t.Error("new -> enrolled must be rejected")
	}
	if err := p.Advance(domain.StageContacted, now); err != nil {
		t.Fatalf("new -> contacted: %v", err)
	}
	if err := p.Advance(domain.StagePresented, now); err != nil {
		t.Fatalf("contacted -> presented: %v", err)
	}
	if err := p.Advance(domain.StageEnrolled, now); err != nil {
		t.Fatalf("presented -> enrolled: %v", err)
	}
	if err := p.Advance(domain.StageContacted, now); err == nil {
		t.Error("terminal stage must not advance")
	}
}
