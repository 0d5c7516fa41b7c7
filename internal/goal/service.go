package goal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/progress"
	util "github.com/ubloom/engine/internal/utils"
)

// ReactivateCost is the coin fee for moving a skipped goal back to active.
const ReactivateCost = 20

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrEmptyText        = errors.New("goal text is empty")
	ErrNotActive        = errors.New("goal is not active")
	ErrNotSkipped       = errors.New("goal is not skipped")
	ErrGoalNotDone      = errors.New("only done goals can be deleted")
	ErrGoalLimitReached = progress.ErrGoalLimitReached
)

// Ledger is the slice of the progress service the goal store needs: creation
// caps, completion rewards, and spends.
type Ledger interface {
	RegisterGoalCreated(ctx context.Context, today util.Date) error
	AwardGoalCompletion(ctx context.Context) (bool, error)
	Spend(ctx context.Context, amount int) error
}

type Service interface {
	Create(ctx context.Context, text string, today util.Date) (*Goal, error)
	List(ctx context.Context) []Goal
	Get(ctx context.Context, id uint) (*Goal, error)
	MarkDone(ctx context.Context, id uint) (*Goal, bool, error)
	Skip(ctx context.Context, id uint) (*Goal, error)
	Reactivate(ctx context.Context, id uint) (*Goal, error)
	Delete(ctx context.Context, id uint) error
}

// service owns the goal collection in memory, most-recent-first. The store
// mirror is best-effort: a failed write is logged, never surfaced, and the
// in-memory collection stays authoritative.
type service struct {
	mu     sync.Mutex
	goals  []*Goal
	nextID uint
	ledger Ledger
	repo   Repository
	now    func() time.Time
}

func NewService(repo Repository, ledger Ledger) (Service, error) {
	stored, err := repo.List()
	if err != nil {
		return nil, err
	}

	s := &service{
		ledger: ledger,
		repo:   repo,
		nextID: 1,
		now:    time.Now,
	}
	for i := range stored {
		g := stored[i]
		s.goals = append(s.goals, &g)
		if g.ID >= s.nextID {
			s.nextID = g.ID + 1
		}
	}
	return s, nil
}

// Create inserts a new active goal at the front of the collection. Blank
// text is rejected before any cap counter moves.
func (s *service) Create(ctx context.Context, text string, today util.Date) (*Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.RegisterGoalCreated(ctx, today); err != nil {
		return nil, err
	}

	g := &Goal{
		ID:        s.nextID,
		Text:      text,
		Status:    StatusActive,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.goals = append([]*Goal{g}, s.goals...)

	s.mirror(ctx, "create", func() error { return s.repo.Save(g) })
	return s.copyOf(g), nil
}

func (s *service) List(ctx context.Context) []Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, *g)
	}
	return out
}

func (s *service) Get(ctx context.Context, id uint) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(id)
	if g == nil {
		return nil, ErrGoalNotFound
	}
	return s.copyOf(g), nil
}

// MarkDone transitions a goal to done and credits the completion at most
// once per goal. A goal that is already done stays a reward no-op; the
// rewarded flag check and its flip happen under the store lock so reentrant
// calls cannot double-credit. The returned bool reports whether a reward was
// actually paid on this call.
func (s *service) MarkDone(ctx context.Context, id uint) (*Goal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(id)
	if g == nil {
		return nil, false, ErrGoalNotFound
	}
	if g.Status == StatusDone {
		return s.copyOf(g), false, nil
	}

	completedAt := s.now()
	g.Status = StatusDone
	g.CompletedAt = &completedAt

	paid := false
	if !g.Rewarded {
		g.Rewarded = true
		var err error
		paid, err = s.ledger.AwardGoalCompletion(ctx)
		if err != nil {
			return nil, false, err
		}
	}

	s.mirror(ctx, "complete", func() error { return s.repo.Save(g) })
	return s.copyOf(g), paid, nil
}

// Skip moves an active goal aside with no economic effect.
func (s *service) Skip(ctx context.Context, id uint) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(id)
	if g == nil {
		return nil, ErrGoalNotFound
	}
	if g.Status != StatusActive {
		return nil, ErrNotActive
	}

	skippedAt := s.now()
	g.Status = StatusSkipped
	g.SkippedAt = &skippedAt

	s.mirror(ctx, "skip", func() error { return s.repo.Save(g) })
	return s.copyOf(g), nil
}

// Reactivate brings a skipped goal back for a fixed coin fee. The debit and
// the transition apply as one unit: a failed debit leaves the goal skipped.
func (s *service) Reactivate(ctx context.Context, id uint) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(id)
	if g == nil {
		return nil, ErrGoalNotFound
	}
	if g.Status != StatusSkipped {
		return nil, ErrNotSkipped
	}

	if err := s.ledger.Spend(ctx, ReactivateCost); err != nil {
		return nil, err
	}
	g.Status = StatusActive
	g.SkippedAt = nil

	s.mirror(ctx, "reactivate", func() error { return s.repo.Save(g) })
	return s.copyOf(g), nil
}

// Delete removes a done goal from history. Past rewards are not reclaimed.
func (s *service) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(id)
	if g == nil {
		return ErrGoalNotFound
	}
	if g.Status != StatusDone {
		return ErrGoalNotDone
	}

	for i, other := range s.goals {
		if other.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			break
		}
	}

	s.mirror(ctx, "delete", func() error { return s.repo.Delete(id) })
	return nil
}

func (s *service) find(id uint) *Goal {
	for _, g := range s.goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *service) copyOf(g *Goal) *Goal {
	copied := *g
	return &copied
}

func (s *service) mirror(ctx context.Context, action string, write func() error) {
	if err := write(); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to mirror goal %s to store", action)
	}
}
