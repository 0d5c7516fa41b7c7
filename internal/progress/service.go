package progress

import (
	"context"
	"errors"
	"sync"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/tier"
	util "github.com/ubloom/engine/internal/utils"
)

// Reward and cost constants carried over from the released client.
const (
	DefaultCoins = 120

	JournalCoinReward  = 10
	JournalPointReward = 10

	GoalCoinReward  = 5
	GoalPointReward = 5

	StreakWeekBonus   = 100
	StreakTripleBonus = 50

	ReviveCost        = 100
	PremiumBonusCoins = 500
)

var (
	ErrInsufficientFunds   = errors.New("insufficient coins")
	ErrJournalLimitReached = errors.New("daily journal limit reached")
	ErrGoalLimitReached    = errors.New("daily goal limit reached")
	ErrStreakNotBroken     = errors.New("streak is not broken")
	ErrAlreadyOwned        = errors.New("cosmetic already owned")
	ErrAlreadyPremium      = errors.New("premium already active")
)

type Service interface {
	TouchDaily(ctx context.Context, today util.Date)
	ReviveStreak(ctx context.Context) error
	RecordJournalSave(ctx context.Context, today util.Date) (bool, error)
	RegisterGoalCreated(ctx context.Context, today util.Date) error
	AwardGoalCompletion(ctx context.Context) (bool, error)
	Spend(ctx context.Context, amount int) error
	AddCoins(ctx context.Context, amount int)
	AddPoints(ctx context.Context, amount int)
	Rollover(ctx context.Context, today util.Date) bool
	Bootstrap(ctx context.Context, username string, coins, streak int)
	ActivatePremium(ctx context.Context, cosmeticIDs []int) error
	PurchaseCosmetic(ctx context.Context, id, price int) error
	Snapshot() Progress
	Persist(ctx context.Context) error
}

type service struct {
	mu   sync.Mutex
	p    *Progress
	repo Repository
}

// NewService loads the persisted aggregate from the opaque store, falling
// back to a fresh default when nothing is stored yet.
func NewService(repo Repository) (Service, error) {
	p, err := repo.Load()
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = defaultProgress()
	}
	if p.OwnedCosmeticIDs == nil {
		p.OwnedCosmeticIDs = IDSet{}
	}
	return &service{p: p, repo: repo}, nil
}

// TouchDaily advances the day-over-day streak. Calling it twice on the same
// day is a no-op; a one-day gap increments the streak and pays milestone
// bonuses; a longer gap consumes the premium insurance when available and
// otherwise resets the streak.
func (s *service) TouchDaily(ctx context.Context, today util.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchDailyLocked(ctx, today)
}

func (s *service) touchDailyLocked(ctx context.Context, today util.Date) {
	log := config.WithContext(ctx)

	if s.p.LastActiveDate.IsZero() {
		s.p.Streak = 1
		s.p.StreakBroken = false
		s.p.LastActiveDate = today
		return
	}

	if s.p.LastActiveDate.Equal(today) {
		return
	}

	diffDays := today.DaysSince(s.p.LastActiveDate)
	switch {
	case diffDays == 1:
		s.p.Streak++
		s.p.StreakBroken = false
		// A streak that is a multiple of both 7 and 3 only pays the 7-bonus.
		if s.p.Streak%7 == 0 {
			s.p.Coins += StreakWeekBonus
			log.WithField("streak", s.p.Streak).Info("Weekly streak bonus granted")
		} else if s.p.Streak%3 == 0 {
			s.p.Coins += StreakTripleBonus
			log.WithField("streak", s.p.Streak).Info("Streak bonus granted")
		}
	case diffDays > 1:
		if s.p.IsPremium && !s.p.InsuranceUsedThisWeek {
			s.p.InsuranceUsedThisWeek = true
			log.Info("Streak insurance consumed, continuity preserved")
		} else {
			s.p.Streak = 1
			s.p.StreakBroken = true
			log.WithField("missed_days", diffDays-1).Info("Streak reset")
		}
	}

	s.p.LastActiveDate = today
}

// ReviveStreak clears the broken flag for 100 coins. It never restores the
// numeric streak count.
func (s *service) ReviveStreak(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.p.StreakBroken {
		return ErrStreakNotBroken
	}
	if s.p.Coins < ReviveCost {
		return ErrInsufficientFunds
	}

	s.p.Coins -= ReviveCost
	s.p.StreakBroken = false
	config.WithContext(ctx).Info("Streak revived")
	return nil
}

// RecordJournalSave applies the full journal-save pipeline: tier cap check,
// submission counter, streak touch, and the once-per-day +10/+10 award. It
// returns whether this save earned the first-of-day award.
func (s *service) RecordJournalSave(ctx context.Context, today util.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limits := tier.ForPremium(s.p.IsPremium)
	if !tier.Allows(s.p.JournalCountToday, limits.JournalsPerDay) {
		return false, ErrJournalLimitReached
	}

	s.p.JournalCountToday++
	s.touchDailyLocked(ctx, today)

	if s.p.DailyJournalAwarded.Equal(today) {
		return false, nil
	}
	s.p.Coins += JournalCoinReward
	s.p.PointsToday += JournalPointReward
	s.p.DailyJournalAwarded = today
	config.WithContext(ctx).Info("First journal of the day rewarded")
	return true, nil
}

// RegisterGoalCreated enforces the daily creation cap and advances the
// created-today counter. The counter resets lazily on the first create of a
// new day.
func (s *service) RegisterGoalCreated(ctx context.Context, today util.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.p.LastGoalDate.Equal(today) {
		s.p.DailyGoalsCreated = 0
		s.p.LastGoalDate = today
	}

	limits := tier.ForPremium(s.p.IsPremium)
	if !tier.Allows(s.p.DailyGoalsCreated, limits.DailyGoalCreateCap) {
		return ErrGoalLimitReached
	}

	s.p.DailyGoalsCreated++
	s.p.LastGoalDate = today
	return nil
}

// AwardGoalCompletion pays the completion reward while the daily reward cap
// allows it. Past the cap the completion still counts as recorded by the
// caller, but nothing is paid.
func (s *service) AwardGoalCompletion(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limits := tier.ForPremium(s.p.IsPremium)
	if !tier.Allows(s.p.GoalsCompletedToday, limits.DailyRewardCap) {
		config.WithContext(ctx).Info("Goal completed past the daily reward cap, no reward paid")
		return false, nil
	}

	s.p.Coins += GoalCoinReward
	s.p.PointsToday += GoalPointReward
	s.p.GoalsCompletedToday++
	return true, nil
}

func (s *service) Spend(ctx context.Context, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spendLocked(amount)
}

func (s *service) spendLocked(amount int) error {
	if s.p.Coins < amount {
		return ErrInsufficientFunds
	}
	s.p.Coins -= amount
	return nil
}

func (s *service) AddCoins(ctx context.Context, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Coins += amount
}

func (s *service) AddPoints(ctx context.Context, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.PointsToday += amount
}

// Rollover clears the per-day counters once the calendar day moves past the
// last awarded journal day. Coins and streak are never touched. The premium
// insurance allowance resets on the ISO week boundary.
func (s *service) Rollover(ctx context.Context, today util.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.p.LastActiveDate.IsZero() && !today.SameISOWeek(s.p.LastActiveDate) {
		s.p.InsuranceUsedThisWeek = false
	}

	if s.p.DailyJournalAwarded.Equal(today) {
		return false
	}
	if s.p.PointsToday == 0 && s.p.JournalCountToday == 0 && s.p.GoalsCompletedToday == 0 {
		return false
	}

	s.p.PointsToday = 0
	s.p.JournalCountToday = 0
	s.p.GoalsCompletedToday = 0
	config.WithContext(ctx).WithField("date", today.String()).Info("Daily counters rolled over")
	return true
}

// Bootstrap seeds the aggregate from the external login backend payload.
func (s *service) Bootstrap(ctx context.Context, username string, coins, streak int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.p.Username = username
	s.p.Coins = coins
	s.p.Streak = streak
	config.WithContext(ctx).WithField("username", username).Info("Progress bootstrapped from session")
}

// ActivatePremium applies the upgrade bundle: the coin grant, every cosmetic,
// and a fresh insurance allowance.
func (s *service) ActivatePremium(ctx context.Context, cosmeticIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.p.IsPremium {
		return ErrAlreadyPremium
	}

	s.p.IsPremium = true
	s.p.Coins += PremiumBonusCoins
	s.p.InsuranceUsedThisWeek = false
	for _, id := range cosmeticIDs {
		if !s.p.OwnedCosmeticIDs.Contains(id) {
			s.p.OwnedCosmeticIDs = append(s.p.OwnedCosmeticIDs, id)
		}
	}
	config.WithContext(ctx).Info("Premium activated")
	return nil
}

// PurchaseCosmetic debits the price and records ownership as one unit.
func (s *service) PurchaseCosmetic(ctx context.Context, id, price int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.p.OwnedCosmeticIDs.Contains(id) {
		return ErrAlreadyOwned
	}
	if err := s.spendLocked(price); err != nil {
		return err
	}
	s.p.OwnedCosmeticIDs = append(s.p.OwnedCosmeticIDs, id)
	return nil
}

func (s *service) Snapshot() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := *s.p
	snap.OwnedCosmeticIDs = append(IDSet{}, s.p.OwnedCosmeticIDs...)
	return snap
}

// Persist upserts the current snapshot to the opaque store.
func (s *service) Persist(ctx context.Context) error {
	snap := s.Snapshot()
	return s.repo.Upsert(&snap)
}
