package journal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ubloom/engine/internal/journal"
	util "github.com/ubloom/engine/internal/utils"
)

type fakeLedger struct {
	firstOfDay bool
	err        error
	calls      int
}

func (l *fakeLedger) RecordJournalSave(ctx context.Context, today util.Date) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.calls++
	return l.firstOfDay, nil
}

type fakeRepo struct {
	stored    []journal.Entry
	listErr   error
	insertErr error
	inserts   int
}

func (r *fakeRepo) List() ([]journal.Entry, error) {
	return r.stored, r.listErr
}

func (r *fakeRepo) Insert(e *journal.Entry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserts++
	return nil
}

func date(t *testing.T, s string) util.Date {
	t.Helper()
	d, err := util.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	today := func(t *testing.T) util.Date { return date(t, "2024-03-01") }

	t.Run("AppendsAndReportsAward", func(t *testing.T) {
		ledger := &fakeLedger{firstOfDay: true}
		repo := &fakeRepo{}
		s, err := journal.NewService(repo, ledger)
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		entry, first, err := s.Save(ctx, "felt calm today", nil, today(t))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !first {
			t.Error("Expected the first-of-day award to be reported")
		}
		if entry.Text != "felt calm today" || !entry.Date.Equal(today(t)) {
			t.Errorf("Entry fields wrong: %+v", entry)
		}
		if repo.inserts != 1 {
			t.Errorf("Expected the entry to be forwarded to the store, got %d inserts", repo.inserts)
		}

		history := s.History(ctx)
		if len(history) != 1 || history[0].ID != entry.ID {
			t.Errorf("History should contain the saved entry, got %+v", history)
		}
	})

	t.Run("NewestFirst", func(t *testing.T) {
		s, err := journal.NewService(&fakeRepo{}, &fakeLedger{})
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		first, _, err := s.Save(ctx, "monday", nil, date(t, "2024-03-04"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		second, _, err := s.Save(ctx, "tuesday", nil, date(t, "2024-03-05"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		history := s.History(ctx)
		if len(history) != 2 || history[0].ID != second.ID || history[1].ID != first.ID {
			t.Errorf("Expected newest-first history, got %+v", history)
		}
	})

	t.Run("RejectsBlankText", func(t *testing.T) {
		ledger := &fakeLedger{}
		s, err := journal.NewService(&fakeRepo{}, ledger)
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		if _, _, err := s.Save(ctx, "  \n ", nil, today(t)); !errors.Is(err, journal.ErrEmptyEntry) {
			t.Fatalf("Expected ErrEmptyEntry, got %v", err)
		}
		if ledger.calls != 0 {
			t.Error("Blank text must not reach the reward pipeline")
		}
	})

	t.Run("CapRejectionLeavesHistoryUntouched", func(t *testing.T) {
		ledger := &fakeLedger{err: journal.ErrJournalLimitReached}
		s, err := journal.NewService(&fakeRepo{}, ledger)
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		_, _, err = s.Save(ctx, "one more", nil, today(t))
		if !errors.Is(err, journal.ErrJournalLimitReached) {
			t.Fatalf("Expected ErrJournalLimitReached, got %v", err)
		}
		if len(s.History(ctx)) != 0 {
			t.Error("Rejected save must not append to history")
		}
	})

	t.Run("SurvivesStoreFailure", func(t *testing.T) {
		repo := &fakeRepo{insertErr: errors.New("store down")}
		s, err := journal.NewService(repo, &fakeLedger{firstOfDay: true})
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		entry, _, err := s.Save(ctx, "still counts", nil, today(t))
		if err != nil {
			t.Fatalf("Save should tolerate a store failure: %v", err)
		}
		if len(s.History(ctx)) != 1 || s.History(ctx)[0].ID != entry.ID {
			t.Error("Local history stays authoritative on store failure")
		}
	})

	t.Run("CarriesReflectionPayload", func(t *testing.T) {
		s, err := journal.NewService(&fakeRepo{}, &fakeLedger{})
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}

		payload := journal.ReflectionData(`{"insight":"you push through"}`)
		entry, _, err := s.Save(ctx, "hard day", payload, today(t))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if string(entry.Reflection) != string(payload) {
			t.Errorf("Reflection payload not carried: %s", entry.Reflection)
		}
	})
}

func TestNewServiceSeedsFromStore(t *testing.T) {
	repo := &fakeRepo{stored: []journal.Entry{
		{Text: "yesterday", Date: date(t, "2024-02-29")},
	}}
	s, err := journal.NewService(repo, &fakeLedger{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	history := s.History(context.Background())
	if len(history) != 1 || history[0].Text != "yesterday" {
		t.Errorf("Stored entries not loaded: %+v", history)
	}
}
