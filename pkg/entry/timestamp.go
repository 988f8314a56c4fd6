package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with RFC3339 JSON encoding and calendar-day
// helpers. Day comparisons use local time.
type Timestamp struct {
	time.Time
}

// Now returns the current moment as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

// SameDay reports calendar-day equality, ignoring time of day.
func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := then.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayKey returns the canonical bucket key for the entry's calendar day.
func (t Timestamp) DayKey() string {
	return t.Local().Format(dayLayout)
}

// DayStart returns midnight local time of the timestamp's day.
func (t Timestamp) DayStart() time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
