package diary

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"food-diary/internal/clock"
	"food-diary/internal/errors"
	"food-diary/internal/models"
	"food-diary/internal/storage"
)

const keyPrefix = "food-diary-"

// Key derives the storage key for a canonical date.
func Key(date string) string { return keyPrefix + date }

// Store owns the per-day records in the KV store. Every mutation persists
// the whole DayRecord under its date key, last write wins. The mutex keeps
// the read-modify-write of a compound operation atomic with respect to the
// rollover monitor goroutine.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	clk *clock.Clock
}

func NewStore(kv storage.KV, clk *clock.Clock) *Store {
	return &Store{kv: kv, clk: clk}
}

// Get returns the record for date, or a fresh empty one when nothing is
// stored. Absence is not an error; a corrupt stored value is discarded and
// the empty default substituted. Reads never write.
func (s *Store) Get(date string) models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, _ := s.find(date)
	return rec
}

// Find is Get plus whether a record was actually stored. The rollover
// monitor uses this to skip days that were never opened.
func (s *Store) Find(date string) (models.DayRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(date)
}

func (s *Store) find(date string) (models.DayRecord, bool) {
	raw, ok, err := s.kv.Get(Key(date))
	if err != nil {
		log.Printf("diary: read %s: %v", Key(date), err)
		return models.EmptyDay(date), false
	}
	if !ok {
		return models.EmptyDay(date), false
	}
	var rec models.DayRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Println(errors.NewDeserialization(Key(date), err))
		return models.EmptyDay(date), false
	}
	rec.Date = date
	if rec.Entries == nil {
		rec.Entries = []models.FoodEntry{}
	}
	return rec, true
}

// Put replaces the stored record for date wholesale.
func (s *Store) Put(date string, rec models.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(date, rec)
}

func (s *Store) put(date string, rec models.DayRecord) error {
	rec.Date = date
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.kv.Set(Key(date), string(data))
}

// AddEntry validates, appends and persists a new entry, returning it.
// Empty or whitespace-only text is rejected before any mutation.
func (s *Store) AddEntry(date, text string, category models.Category) (models.FoodEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.FoodEntry{}, errors.NewValidation("entry text must not be empty")
	}
	if !category.Valid() {
		return models.FoodEntry{}, errors.NewValidation(fmt.Sprintf("unknown category %q", category))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID(s.clk.Now())
	if err != nil {
		return models.FoodEntry{}, err
	}
	entry := models.FoodEntry{
		ID:       id,
		Text:     text,
		Time:     s.clk.TimeOfDay(),
		Category: category,
	}

	rec, _ := s.find(date)
	rec.Entries = append(rec.Entries, entry)
	if err := s.put(date, rec); err != nil {
		return models.FoodEntry{}, err
	}
	return entry, nil
}

// DeleteEntry removes the entry with the given id. A missing id is a silent
// no-op, not an error.
func (s *Store) DeleteEntry(date, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.find(date)
	kept := make([]models.FoodEntry, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	rec.Entries = kept
	return s.put(date, rec)
}

// SetNotes replaces the day's notes wholesale. No history is kept.
func (s *Store) SetNotes(date, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.find(date)
	rec.Notes = text
	return s.put(date, rec)
}

func newID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
