// Package schedule is the watering/weather journal: user-authored entries
// persisted as one set in the session store.
package schedule

import (
	"fmt"
	"time"

	"github.com/saessak-labs/planterm/internal/session"
)

// WeatherType is an observed weather condition.
type WeatherType string

const (
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherSunny  WeatherType = "sunny"
)

// Valid reports whether w is a known weather type.
func (w WeatherType) Valid() bool {
	switch w {
	case WeatherCloudy, WeatherRainy, WeatherSunny:
		return true
	}
	return false
}

// Label returns the Korean display label.
func (w WeatherType) Label() string {
	switch w {
	case WeatherCloudy:
		return "흐림"
	case WeatherRainy:
		return "비"
	case WeatherSunny:
		return "맑음"
	}
	return string(w)
}

// Entry is one journal record. WaterCount and WeatherType are optional;
// an entry may record either or both.
type Entry struct {
	// ID is the creation timestamp in unix milliseconds. The collision
	// window is accepted for a single-user tool; Add nudges forward if
	// the slot is taken.
	ID          int64        `json:"id"`
	Date        string       `json:"date"` // ISO date, 2006-01-02
	WaterCount  *int         `json:"waterCount"`
	WeatherType *WeatherType `json:"weatherType"`
	Memo        string       `json:"memo"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// Filter selects journal entries by what they record.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterWater   Filter = "water"
	FilterWeather Filter = "weather"
	FilterBoth    Filter = "both"
)

// Fields is the mutable part of an entry, shared by Add and Update.
type Fields struct {
	Date        string
	WaterCount  *int
	WeatherType *WeatherType
	Memo        string
}

func (f Fields) validate() error {
	if f.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if f.WaterCount != nil && (*f.WaterCount < 1 || *f.WaterCount > 10) {
		return fmt.Errorf("water count must be between 1 and 10, got %d", *f.WaterCount)
	}
	if f.WeatherType != nil && !f.WeatherType.Valid() {
		return fmt.Errorf("unknown weather type %q", *f.WeatherType)
	}
	return nil
}

// Manager owns the journal set. Every mutation reads the full current
// set, applies the change, and writes the full set back — no partial
// writes are ever issued.
type Manager struct {
	store *session.Store
	now   func() time.Time
}

// NewManager returns a manager over the given store.
func NewManager(store *session.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// List returns all entries, newest first.
func (m *Manager) List() []Entry {
	var entries []Entry
	m.store.Load(session.KeySchedules, &entries)
	return entries
}

// Add creates a new entry at the head of the set and persists it.
func (m *Manager) Add(f Fields) (Entry, error) {
	if err := f.validate(); err != nil {
		return Entry{}, err
	}

	entries := m.List()
	now := m.now()

	id := now.UnixMilli()
	for idTaken(entries, id) {
		id++
	}

	entry := Entry{
		ID:          id,
		Date:        f.Date,
		WaterCount:  f.WaterCount,
		WeatherType: f.WeatherType,
		Memo:        f.Memo,
		CreatedAt:   now,
	}
	entries = append([]Entry{entry}, entries...)
	if err := m.store.Save(session.KeySchedules, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Update replaces the matching entry's fields and persists the set.
func (m *Manager) Update(id int64, f Fields) (Entry, error) {
	if err := f.validate(); err != nil {
		return Entry{}, err
	}

	entries := m.List()
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		now := m.now()
		entries[i].Date = f.Date
		entries[i].WaterCount = f.WaterCount
		entries[i].WeatherType = f.WeatherType
		entries[i].Memo = f.Memo
		entries[i].UpdatedAt = &now
		if err := m.store.Save(session.KeySchedules, entries); err != nil {
			return Entry{}, err
		}
		return entries[i], nil
	}
	return Entry{}, fmt.Errorf("schedule %d not found", id)
}

// Delete removes exactly the targeted entry. The confirmation gate lives
// at the caller; this is the only irreversible local mutation in the
// system.
func (m *Manager) Delete(id int64) error {
	entries := m.List()
	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("schedule %d not found", id)
	}
	return m.store.Save(session.KeySchedules, kept)
}

// Get returns the entry with the given ID.
func (m *Manager) Get(id int64) (Entry, bool) {
	for _, e := range m.List() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Apply filters entries by what they record.
func (f Filter) Apply(entries []Entry) []Entry {
	if f == FilterAll || f == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		water := e.WaterCount != nil && *e.WaterCount > 0
		weather := e.WeatherType != nil
		switch f {
		case FilterWater:
			if water {
				out = append(out, e)
			}
		case FilterWeather:
			if weather {
				out = append(out, e)
			}
		case FilterBoth:
			if water && weather {
				out = append(out, e)
			}
		}
	}
	return out
}

func idTaken(entries []Entry, id int64) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
