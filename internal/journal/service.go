package journal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/progress"
	util "github.com/ubloom/engine/internal/utils"
)

var (
	ErrEmptyEntry          = errors.New("journal text is empty")
	ErrJournalLimitReached = progress.ErrJournalLimitReached
)

// Ledger is the slice of the progress service the journal needs: the cap
// check, submission counter, streak touch, and once-per-day award.
type Ledger interface {
	RecordJournalSave(ctx context.Context, today util.Date) (bool, error)
}

type Service interface {
	Save(ctx context.Context, text string, reflection ReflectionData, today util.Date) (*Entry, bool, error)
	History(ctx context.Context) []Entry
}

type service struct {
	mu      sync.Mutex
	entries []*Entry
	ledger  Ledger
	repo    Repository
	now     func() time.Time
}

func NewService(repo Repository, ledger Ledger) (Service, error) {
	stored, err := repo.List()
	if err != nil {
		return nil, err
	}

	s := &service{ledger: ledger, repo: repo, now: time.Now}
	for i := range stored {
		e := stored[i]
		s.entries = append(s.entries, &e)
	}
	return s, nil
}

// Save runs the reward pipeline and appends the entry to the local history.
// The reward side is all-or-nothing: a rejected save (cap reached) leaves the
// history and every counter untouched. Forwarding to the store is
// best-effort and never blocks the save. Returns whether this save earned
// the first-of-day award.
func (s *service) Save(ctx context.Context, text string, reflection ReflectionData, today util.Date) (*Entry, bool, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(text) == "" {
		return nil, false, ErrEmptyEntry
	}

	firstOfDay, err := s.ledger.RecordJournalSave(ctx, today)
	if err != nil {
		return nil, false, err
	}

	entry := &Entry{
		ID:         uuid.New(),
		Date:       today,
		Text:       text,
		Reflection: reflection,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.entries = append([]*Entry{entry}, s.entries...)
	s.mu.Unlock()

	if err := s.repo.Insert(entry); err != nil {
		log.WithError(err).Warn("Failed to forward journal entry to store")
	}

	log.WithField("entry_id", entry.ID).Info("Journal entry saved")
	return entry, firstOfDay, nil
}

func (s *service) History(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out
}
