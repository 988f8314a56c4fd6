package entry

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParsePromptType(t *testing.T) {
	cases := []struct {
		in      string
		want    PromptType
		wantErr bool
	}{
		{"reflective", Reflective, false},
		{"Daily", Daily, false},
		{" creative ", Creative, false},
		{"freeform", Freeform, false},
		{"", Freeform, false},
		{"journal", Daily, false},
		{"bogus", Freeform, true},
	}
	for _, tc := range cases {
		got, err := ParsePromptType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParsePromptType(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePromptType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestUsableForPrompts(t *testing.T) {
	e := &Entry{}
	if !e.UsableForPrompts() {
		t.Fatalf("unset flag should default to usable")
	}
	no := false
	e.UseForPromptGeneration = &no
	if e.UsableForPrompts() {
		t.Fatalf("explicit false should not be usable")
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := Timestamp{Time: time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)}
	night := time.Date(2024, 1, 2, 23, 59, 0, 0, time.Local)
	if !morning.SameDay(night) {
		t.Fatalf("expected same calendar day")
	}
	if morning.SameDay(night.AddDate(0, 0, 1)) {
		t.Fatalf("expected different calendar day")
	}
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	in := Timestamp{Time: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)}
	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Timestamp
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equal(in.Time) {
		t.Fatalf("round trip mismatch: %v != %v", out, in)
	}
}

func TestPreviewFallsBackToFirstContentLine(t *testing.T) {
	e := &Entry{Content: "first line of thoughts\nsecond line"}
	if got := e.Preview(0); got != "first line of thoughts" {
		t.Fatalf("Preview = %q", got)
	}
	e.Summary = "stored summary wins"
	if got := e.Preview(0); got != "stored summary wins" {
		t.Fatalf("Preview = %q", got)
	}
	if got := e.Preview(7); got != "stored…" {
		t.Fatalf("truncated Preview = %q", got)
	}
}
