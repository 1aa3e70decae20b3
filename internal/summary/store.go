package summary

import (
	"encoding/json"
	"log"
	"math"
	"sort"
	"sync"

	"food-diary/internal/errors"
	"food-diary/internal/models"
	"food-diary/internal/storage"
)

// Key is the single blob the whole summary history lives under.
const Key = "food-diary-summary"

// Store owns the append-only summary collection. Records are immutable
// historical facts: there is no update and no delete.
type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store { return &Store{kv: kv} }

// List returns every summary record, most recent date first. A corrupt blob
// is discarded and an empty list substituted.
func (s *Store) List() []models.SummaryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) list() []models.SummaryRecord {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		log.Printf("summary: read %s: %v", Key, err)
		return []models.SummaryRecord{}
	}
	if !ok {
		return []models.SummaryRecord{}
	}
	var recs []models.SummaryRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		log.Println(errors.NewDeserialization(Key, err))
		return []models.SummaryRecord{}
	}
	// canonical dates sort lexicographically in calendar order
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date > recs[j].Date })
	return recs
}

// Append stores rec unless a record for its date already exists; the first
// one wins. This is the sole write path.
func (s *Store) Append(rec models.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.list()
	for _, r := range recs {
		if r.Date == rec.Date {
			return nil
		}
	}
	recs = append(recs, rec)
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return s.kv.Set(Key, string(data))
}

// Snapshot derives the immutable rollup for a completed day.
func Snapshot(rec models.DayRecord) models.SummaryRecord {
	used := make([]models.Category, 0, len(models.All))
	seen := make(map[models.Category]bool)
	for _, e := range rec.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			used = append(used, e.Category)
		}
	}
	return models.SummaryRecord{
		Date:           rec.Date,
		TotalEntries:   len(rec.Entries),
		CategoriesUsed: used,
		HasNotes:       rec.Notes != "",
		Data:           rec,
	}
}

// Aggregate recomputes the historical stats from the full summary list.
// The average is rounded to one decimal and defined as 0 for an empty
// history. The breakdown counts individual entries per category, sorted by
// count descending; ties keep first-encountered order in List() iteration.
func (s *Store) Aggregate() models.Stats {
	recs := s.List()

	stats := models.Stats{TotalDays: len(recs)}
	counts := make(map[models.Category]int)
	var order []models.Category

	for _, r := range recs {
		stats.TotalEntries += r.TotalEntries
		if r.HasNotes {
			stats.DaysWithNotes++
		}
		for _, e := range r.Data.Entries {
			if counts[e.Category] == 0 {
				order = append(order, e.Category)
			}
			counts[e.Category]++
		}
	}

	if stats.TotalDays > 0 {
		avg := float64(stats.TotalEntries) / float64(stats.TotalDays)
		stats.AvgEntriesPerDay = math.Round(avg*10) / 10
	}

	breakdown := make([]models.CategoryCount, 0, len(order))
	for _, c := range order {
		breakdown = append(breakdown, models.CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})
	stats.CategoryBreakdown = breakdown
	return stats
}
