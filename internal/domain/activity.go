// Package domain holds the pure types for the activity tracker.
// Records decode from the legacy wire shapes once, at the boundary;
// everything downstream works on the canonical form only.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ─── Metrics ────────────────────────────────────────────────────────────────

// Metric identifies one of the tracked activity types.
type Metric string

const (
	MetricExposures     Metric = "exposures"
	MetricFollowUps     Metric = "follow_ups"
	MetricPresentations Metric = "presentations"
	MetricThreeWays     Metric = "three_ways"
	MetricEnrolls       Metric = "enrolls"
)

// ScoredMetrics lists the metrics that contribute points, in display order.
var ScoredMetrics = []Metric{
	MetricExposures,
	MetricFollowUps,
	MetricPresentations,
	MetricThreeWays,
	MetricEnrolls,
}

// ParseMetric converts a wire string into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricExposures, MetricFollowUps, MetricPresentations,
		MetricThreeWays, MetricEnrolls:
		return Metric(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// ─── Presentation types ─────────────────────────────────────────────────────

// PresentationType distinguishes how a presentation was delivered.
type PresentationType string

const (
	PresentationInPerson PresentationType = "InPerson"
	PresentationVirtual  PresentationType = "Virtual"
)

// normalizePresentationTag maps legacy tag variants onto the two canonical
// types. Anything that is not in-person is treated as virtual.
func normalizePresentationTag(tag string) PresentationType {
	if PresentationType(tag) == PresentationInPerson {
		return PresentationInPerson
	}
	return PresentationVirtual
}

// ─── Canonical day record ───────────────────────────────────────────────────

// DayRecord is one calendar day of logged activity in canonical form.
// All counts are non-negative and already include their legacy synonyms
// (pbrs folded into Presentations, sitdown enrollments into Enrolls,
// read/audio into PersonalDev).
type DayRecord struct {
	Exposures         int                `json:"exposures"`
	FollowUps         int                `json:"followUps"`
	Presentations     int                `json:"presentations"`
	PresentationTypes []PresentationType `json:"presentationTypes,omitempty"`
	ThreeWays         int                `json:"threeWays"`
	Enrolls           int                `json:"enrolls"`
	Gameplans         int                `json:"gameplans"`
	Exercise          bool               `json:"exercise"`
	PersonalDev       bool               `json:"personalDevelopment"`
}

// Count returns the normalized count for a scored metric.
func (r DayRecord) Count(m Metric) int {
	switch m {
	case MetricExposures:
		return r.Exposures
	case MetricFollowUps:
		return r.FollowUps
	case MetricPresentations:
		return r.Presentations
	case MetricThreeWays:
		return r.ThreeWays
	case MetricEnrolls:
		return r.Enrolls
	}
	return 0
}

// IsZero reports whether the day has no activity across scored metrics.
func (r DayRecord) IsZero() bool {
	for _, m := range ScoredMetrics {
		if r.Count(m) > 0 {
			return false
		}
	}
	return true
}

// ─── Legacy wire decoding ───────────────────────────────────────────────────

// RawDayRecord is the tolerant wire form of a day record. The historical
// data carries several synonyms for the same concept:
//
//   - presentations: either a list of type tags or a plain number
//   - pbrs: additional presentation count
//   - sitdowns: list of outcome tags, "E" means an enrollment
//   - read / audio: older booleans folded into personalDevelopment
//
// Decoding never fails on malformed fields; an unparseable value counts
// as zero activity.
type RawDayRecord struct {
	fields map[string]json.RawMessage
}

// UnmarshalJSON captures the raw fields for lazy, defensive coercion.
func (r *RawDayRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.fields = nil
		return nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode day record: %w", err)
	}
	r.fields = fields
	return nil
}

// Canonical normalizes the raw record into a DayRecord.
func (r RawDayRecord) Canonical() DayRecord {
	rec := DayRecord{
		Exposures:   r.intField("exposures"),
		FollowUps:   r.intField("followUps"),
		ThreeWays:   r.intField("threeWays"),
		Gameplans:   r.intField("gameplans"),
		Exercise:    r.boolField("exerc") || r.boolField("exercise"),
		PersonalDev: r.boolField("personalDevelopment") || r.boolField("read") || r.boolField("audio"),
	}

	// Presentations: list of tags or aggregate number, plus legacy pbrs.
	if tags, ok := r.stringList("presentations"); ok {
		rec.PresentationTypes = make([]PresentationType, 0, len(tags))
		for _, tag := range tags {
			rec.PresentationTypes = append(rec.PresentationTypes, normalizePresentationTag(tag))
		}
		rec.Presentations = len(tags)
	} else {
		rec.Presentations = r.intField("presentations")
	}
	rec.Presentations += r.intField("pbrs")

	// Enrolls: numeric field plus sitdowns tagged as enrolled.
	rec.Enrolls = r.intField("enrolls")
	if tags, ok := r.stringList("sitdowns"); ok {
		for _, tag := range tags {
			if tag == "E" {
				rec.Enrolls++
			}
		}
	}

	return rec
}

// intField coerces a raw field into a non-negative int. Accepts numbers
// and numeric strings; anything else is zero.
func (r RawDayRecord) intField(key string) int {
	raw, ok := r.fields[key]
	if !ok {
		return 0
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if f, err := num.Float64(); err == nil && f > 0 {
			return int(f)
		}
		return 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			return int(f)
		}
	}
	return 0
}

// boolField coerces a raw field into a bool; non-bool values are false.
func (r RawDayRecord) boolField(key string) bool {
	raw, ok := r.fields[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	return false
}

// stringList extracts a list-valued field, keeping only string entries.
// Returns ok=false when the field is absent or not a list.
func (r RawDayRecord) stringList(key string) ([]string, bool) {
	raw, ok := r.fields[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out, true
}

// ─── Calendar keys and buckets ──────────────────────────────────────────────

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the MonthKey containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Prev returns the immediately preceding month.
func (k MonthKey) Prev() MonthKey {
	if k.Month == time.January {
		return MonthKey{Year: k.Year - 1, Month: time.December}
	}
	return MonthKey{Year: k.Year, Month: k.Month - 1}
}

// String renders the key as "YYYY-MM".
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrBadMonthKey, s)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// Days returns the number of days in the month.
func (k MonthKey) Days() int {
	return time.Date(k.Year, k.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns midnight UTC of the given day-of-month.
func (k MonthKey) Date(day int) time.Time {
	return time.Date(k.Year, k.Month, day, 0, 0, 0, 0, time.UTC)
}

// MonthBucket maps day-of-month (1-indexed) to that day's record.
// Day keys never exceed the month's actual length.
type MonthBucket map[int]DayRecord
