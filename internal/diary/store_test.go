package diary

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"food-diary/internal/clock"
	apperrors "food-diary/internal/errors"
	"food-diary/internal/models"
	"food-diary/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	clk, err := clock.New(
		clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 18, 30, 0, 0, time.UTC)),
		"America/Los_Angeles",
	)
	if err != nil {
		t.Fatalf("clock.New failed: %v", err)
	}
	return NewStore(kv, clk), kv
}

func TestGet_EmptyDefault(t *testing.T) {
	s, _ := newTestStore(t)
	rec := s.Get("2025-01-01")
	if rec.Date != "2025-01-01" {
		t.Errorf("Date = %q, want 2025-01-01", rec.Date)
	}
	if len(rec.Entries) != 0 {
		t.Errorf("Entries = %v, want empty", rec.Entries)
	}
	if rec.Notes != "" {
		t.Errorf("Notes = %q, want empty", rec.Notes)
	}

	// reads never create storage
	if _, found := s.Find("2025-01-01"); found {
		t.Error("Get must not persist the empty default")
	}
}

func TestAddEntry(t *testing.T) {
	s, _ := newTestStore(t)

	e1, err := s.AddEntry("2025-01-01", "eggs", models.Breakfast)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	e2, err := s.AddEntry("2025-01-01", "coffee", models.Drinks)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if e1.ID == "" || e2.ID == "" || e1.ID == e2.ID {
		t.Errorf("ids must be distinct and non-empty: %q %q", e1.ID, e2.ID)
	}

	rec := s.Get("2025-01-01")
	if len(rec.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(rec.Entries))
	}
	last := rec.Entries[1]
	if last.Text != "coffee" || last.Category != models.Drinks {
		t.Errorf("last entry = %+v", last)
	}
	if last.Time != "10:30 AM" {
		t.Errorf("Time = %q, want 10:30 AM (reference zone)", last.Time)
	}
}

func TestAddEntry_TrimsText(t *testing.T) {
	s, _ := newTestStore(t)
	e, err := s.AddEntry("2025-01-01", "  toast \n", models.Breakfast)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if e.Text != "toast" {
		t.Errorf("Text = %q, want trimmed", e.Text)
	}
}

func TestAddEntry_EmptyTextRejected(t *testing.T) {
	s, _ := newTestStore(t)
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := s.AddEntry("2025-01-01", text, models.Lunch)
		if !apperrors.Is(err, apperrors.ErrValidation) {
			t.Errorf("AddEntry(%q) err = %v, want validation error", text, err)
		}
	}
	if rec := s.Get("2025-01-01"); len(rec.Entries) != 0 {
		t.Errorf("rejected adds must not mutate: %v", rec.Entries)
	}
	if _, found := s.Find("2025-01-01"); found {
		t.Error("rejected adds must not persist")
	}
}

func TestAddEntry_UnknownCategoryRejected(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddEntry("2025-01-01", "pizza", models.Category("midnight-snack"))
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	s, _ := newTestStore(t)
	e, err := s.AddEntry("2025-01-01", "eggs", models.Breakfast)
	if err != nil {
		t.Fatal(err)
	}
	keep, err := s.AddEntry("2025-01-01", "coffee", models.Drinks)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteEntry("2025-01-01", e.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	rec := s.Get("2025-01-01")
	if len(rec.Entries) != 1 || rec.Entries[0].ID != keep.ID {
		t.Errorf("Entries = %+v, want only %q left", rec.Entries, keep.ID)
	}

	// deleting the same id again is a no-op
	if err := s.DeleteEntry("2025-01-01", e.ID); err != nil {
		t.Fatalf("second DeleteEntry failed: %v", err)
	}
	if rec := s.Get("2025-01-01"); len(rec.Entries) != 1 {
		t.Errorf("second delete changed the record: %+v", rec.Entries)
	}
}

func TestDeleteEntry_MissingID(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddEntry("2025-01-01", "eggs", models.Breakfast); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEntry("2025-01-01", "no-such-id"); err != nil {
		t.Fatalf("DeleteEntry(missing) = %v, want nil", err)
	}
	if rec := s.Get("2025-01-01"); len(rec.Entries) != 1 {
		t.Errorf("record changed: %+v", rec.Entries)
	}
}

func TestSetNotes(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetNotes("2025-01-01", "felt great"); err != nil {
		t.Fatalf("SetNotes failed: %v", err)
	}
	if got := s.Get("2025-01-01").Notes; got != "felt great" {
		t.Errorf("Notes = %q", got)
	}

	// wholesale replace, no history
	if err := s.SetNotes("2025-01-01", "actually tired"); err != nil {
		t.Fatal(err)
	}
	if got := s.Get("2025-01-01").Notes; got != "actually tired" {
		t.Errorf("Notes = %q", got)
	}
}

func TestPut_WholesaleReplace(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddEntry("2025-01-01", "eggs", models.Breakfast); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("2025-01-01", models.EmptyDay("2025-01-01")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if rec := s.Get("2025-01-01"); len(rec.Entries) != 0 {
		t.Errorf("Put must replace, got %+v", rec.Entries)
	}
}

func TestGet_CorruptValueRecovered(t *testing.T) {
	s, kv := newTestStore(t)
	if err := kv.Set(Key("2025-01-01"), "{not json"); err != nil {
		t.Fatal(err)
	}

	rec := s.Get("2025-01-01")
	if rec.Date != "2025-01-01" || len(rec.Entries) != 0 || rec.Notes != "" {
		t.Errorf("corrupt value must resolve to the empty default, got %+v", rec)
	}
	if _, found := s.Find("2025-01-01"); found {
		t.Error("corrupt record must not count as stored")
	}

	// the store remains writable for that date
	if _, err := s.AddEntry("2025-01-01", "eggs", models.Breakfast); err != nil {
		t.Fatalf("AddEntry after corruption failed: %v", err)
	}
	if rec := s.Get("2025-01-01"); len(rec.Entries) != 1 {
		t.Errorf("Entries = %+v", rec.Entries)
	}
}
