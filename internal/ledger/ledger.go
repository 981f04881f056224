// Package ledger keeps one progress record per calendar day.
//
// Records are keyed by a "YYYY-MM-DD" date-key and kept sorted by it; writing
// to an existing key merges into that record instead of adding a second one.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"lg/peso-certo-api/internal/clock"
)

var (
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNegativeValue = errors.New("value must not be negative")
)

// DailyProgress is the adherence record for one day. Weight and Mood are
// optional; the counters are never negative.
type DailyProgress struct {
	Date             string   `json:"date"`
	Weight           *float64 `json:"weight,omitempty"`
	WaterGlasses     int      `json:"waterGlasses"`
	ExerciseMinutes  int      `json:"exerciseMinutes"`
	CaloriesConsumed int      `json:"caloriesConsumed"`
	Mood             *string  `json:"mood,omitempty"`
}

// Patch holds the fields to merge into a record. Nil fields keep their
// current value.
type Patch struct {
	Weight           *float64 `json:"weight"`
	WaterGlasses     *int     `json:"waterGlasses"`
	ExerciseMinutes  *int     `json:"exerciseMinutes"`
	CaloriesConsumed *int     `json:"caloriesConsumed"`
	Mood             *string  `json:"mood"`
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p.Weight == nil && p.WaterGlasses == nil && p.ExerciseMinutes == nil &&
		p.CaloriesConsumed == nil && p.Mood == nil
}

func (p Patch) validate() error {
	for name, v := range map[string]*int{
		"waterGlasses":     p.WaterGlasses,
		"exerciseMinutes":  p.ExerciseMinutes,
		"caloriesConsumed": p.CaloriesConsumed,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s: %w", name, ErrNegativeValue)
		}
	}
	return nil
}

func (p Patch) apply(rec DailyProgress) DailyProgress {
	if p.Weight != nil {
		w := *p.Weight
		rec.Weight = &w
	}
	if p.WaterGlasses != nil {
		rec.WaterGlasses = *p.WaterGlasses
	}
	if p.ExerciseMinutes != nil {
		rec.ExerciseMinutes = *p.ExerciseMinutes
	}
	if p.CaloriesConsumed != nil {
		rec.CaloriesConsumed = *p.CaloriesConsumed
	}
	if p.Mood != nil {
		m := *p.Mood
		rec.Mood = &m
	}
	return rec
}

// Ledger is the ordered set of daily records. It is not safe for concurrent
// use.
type Ledger struct {
	records []DailyProgress
}

// New returns a ledger holding records. When two records share a date-key
// the later one wins.
func New(records ...DailyProgress) *Ledger {
	l := &Ledger{}
	for _, r := range records {
		l.put(r)
	}
	return l
}

// ValidDateKey reports whether key is a real calendar day in YYYY-MM-DD form.
func ValidDateKey(key string) bool {
	_, err := time.Parse(clock.DateLayout, key)
	return err == nil
}

// UpsertToday merges patch into today's record, creating it when absent.
// Records for other days are untouched.
func (l *Ledger) UpsertToday(c clock.Clock, patch Patch) (DailyProgress, error) {
	return l.Upsert(clock.DateKey(c), patch)
}

// Upsert merges patch into the record for dateKey, creating it when absent.
func (l *Ledger) Upsert(dateKey string, patch Patch) (DailyProgress, error) {
	if !ValidDateKey(dateKey) {
		return DailyProgress{}, fmt.Errorf("%q: %w", dateKey, ErrInvalidDate)
	}
	if err := patch.validate(); err != nil {
		return DailyProgress{}, err
	}
	rec, ok := l.Lookup(dateKey)
	if !ok {
		rec = DailyProgress{Date: dateKey}
	}
	rec = patch.apply(rec)
	l.put(rec)
	return rec, nil
}

// Lookup returns the record for dateKey.
func (l *Ledger) Lookup(dateKey string) (DailyProgress, bool) {
	i, found := l.search(dateKey)
	if !found {
		return DailyProgress{}, false
	}
	return l.records[i], true
}

// Today returns today's record, or an empty record dated today.
func (l *Ledger) Today(c clock.Clock) DailyProgress {
	key := clock.DateKey(c)
	if rec, ok := l.Lookup(key); ok {
		return rec
	}
	return DailyProgress{Date: key}
}

// Records returns a copy of every record, oldest first.
func (l *Ledger) Records() []DailyProgress {
	return slices.Clone(l.records)
}

// Recent returns up to n records, newest first. n <= 0 returns all of them.
func (l *Ledger) Recent(n int) []DailyProgress {
	out := slices.Clone(l.records)
	slices.Reverse(out)
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Len returns the number of days recorded.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Reset removes every record.
func (l *Ledger) Reset() {
	l.records = nil
}

// MarshalJSON encodes the ledger as an array of records, oldest first.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	if l.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.records)
}

// UnmarshalJSON decodes an array of records. Duplicate date-keys collapse to
// the last occurrence. A record with a bad date-key or a negative counter
// fails the whole decode and leaves l unchanged.
func (l *Ledger) UnmarshalJSON(b []byte) error {
	var records []DailyProgress
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	for _, r := range records {
		if err := r.validate(); err != nil {
			return err
		}
	}
	l.records = nil
	for _, r := range records {
		l.put(r)
	}
	return nil
}

func (r DailyProgress) validate() error {
	if !ValidDateKey(r.Date) {
		return fmt.Errorf("%q: %w", r.Date, ErrInvalidDate)
	}
	return Patch{
		WaterGlasses:     &r.WaterGlasses,
		ExerciseMinutes:  &r.ExerciseMinutes,
		CaloriesConsumed: &r.CaloriesConsumed,
	}.validate()
}

func (l *Ledger) search(key string) (int, bool) {
	i := sort.Search(len(l.records), func(i int) bool { return l.records[i].Date >= key })
	return i, i < len(l.records) && l.records[i].Date == key
}

func (l *Ledger) put(rec DailyProgress) {
	i, found := l.search(rec.Date)
	if found {
		l.records[i] = rec
		return
	}
	l.records = slices.Insert(l.records, i, rec)
}
