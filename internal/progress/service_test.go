package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ubloom/engine/internal/progress"
	util "github.com/ubloom/engine/internal/utils"
)

type fakeRepo struct {
	stored    *progress.Progress
	loadErr   error
	upsertErr error
	upserts   int
}

func (r *fakeRepo) Load() (*progress.Progress, error) {
	return r.stored, r.loadErr
}

func (r *fakeRepo) Upsert(p *progress.Progress) error {
	r.upserts++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	snap := *p
	r.stored = &snap
	return nil
}

func newTestService(t *testing.T) progress.Service {
	t.Helper()
	s, err := progress.NewService(&fakeRepo{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return s
}

func date(t *testing.T, s string) util.Date {
	t.Helper()
	d, err := util.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestNewService(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := newTestService(t)
		snap := s.Snapshot()
		if snap.Coins != progress.DefaultCoins {
			t.Errorf("Expected %d starting coins, got %d", progress.DefaultCoins, snap.Coins)
		}
		if snap.Streak != 0 || !snap.LastActiveDate.IsZero() {
			t.Error("Fresh aggregate should have no streak history")
		}
	})

	t.Run("LoadsStoredAggregate", func(t *testing.T) {
		repo := &fakeRepo{stored: &progress.Progress{ID: 1, Coins: 777, Streak: 4}}
		s, err := progress.NewService(repo)
		if err != nil {
			t.Fatalf("NewService failed: %v", err)
		}
		snap := s.Snapshot()
		if snap.Coins != 777 || snap.Streak != 4 {
			t.Errorf("Stored aggregate not loaded: coins=%d streak=%d", snap.Coins, snap.Streak)
		}
	})

	t.Run("PropagatesLoadError", func(t *testing.T) {
		repo := &fakeRepo{loadErr: errors.New("store down")}
		if _, err := progress.NewService(repo); err == nil {
			t.Error("Expected load error to propagate")
		}
	})
}

func TestTouchDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstActivityStartsStreak", func(t *testing.T) {
		s := newTestService(t)
		s.TouchDaily(ctx, date(t, "2024-03-01"))

		snap := s.Snapshot()
		if snap.Streak != 1 {
			t.Errorf("Expected streak 1, got %d", snap.Streak)
		}
		if snap.LastActiveDate.String() != "2024-03-01" {
			t.Errorf("Expected last active date to advance, got %s", snap.LastActiveDate)
		}
	})

	t.Run("SameDayIsIdempotent", func(t *testing.T) {
		s := newTestService(t)
		d := date(t, "2024-03-01")
		s.TouchDaily(ctx, d)
		before := s.Snapshot()

		for i := 0; i < 5; i++ {
			s.TouchDaily(ctx, d)
		}

		after := s.Snapshot()
		if after.Streak != before.Streak || after.Coins != before.Coins {
			t.Errorf("Repeated same-day touches changed state: streak %d->%d coins %d->%d",
				before.Streak, after.Streak, before.Coins, after.Coins)
		}
	})

	t.Run("ConsecutiveDaysIncrementAndPayBonuses", func(t *testing.T) {
		s := newTestService(t)
		start := date(t, "2024-03-01")
		for i := 0; i < 7; i++ {
			s.TouchDaily(ctx, start.AddDays(i))
		}

		snap := s.Snapshot()
		if snap.Streak != 7 {
			t.Fatalf("Expected streak 7, got %d", snap.Streak)
		}
		// Bonuses along the way: +50 at streak 3 and 6, +100 at streak 7.
		want := progress.DefaultCoins + 2*progress.StreakTripleBonus + progress.StreakWeekBonus
		if snap.Coins != want {
			t.Errorf("Expected %d coins after a 7-day run, got %d", want, snap.Coins)
		}
	})

	t.Run("WeekBonusBeatsTripleBonus", func(t *testing.T) {
		s := newTestService(t)
		start := date(t, "2024-03-01")
		for i := 0; i < 21; i++ {
			s.TouchDaily(ctx, start.AddDays(i))
		}

		snap := s.Snapshot()
		if snap.Streak != 21 {
			t.Fatalf("Expected streak 21, got %d", snap.Streak)
		}
		// Triples at 3, 6, 9, 12, 15, 18; weeks at 7, 14, 21. Streak 21 is
		// both, and only the week bonus pays.
		want := progress.DefaultCoins + 6*progress.StreakTripleBonus + 3*progress.StreakWeekBonus
		if snap.Coins != want {
			t.Errorf("Expected %d coins after 21 consecutive days, got %d", want, snap.Coins)
		}
	})

	t.Run("GapResetsStreakOnFreeTier", func(t *testing.T) {
		s := newTestService(t)
		s.TouchDaily(ctx, date(t, "2024-03-01"))
		s.TouchDaily(ctx, date(t, "2024-03-02"))
		s.TouchDaily(ctx, date(t, "2024-03-10"))

		snap := s.Snapshot()
		if snap.Streak != 1 {
			t.Errorf("Expected streak reset to 1, got %d", snap.Streak)
		}
		if !snap.StreakBroken {
			t.Error("Expected the broken flag to be set")
		}
		if snap.LastActiveDate.String() != "2024-03-10" {
			t.Errorf("Last active date should still advance, got %s", snap.LastActiveDate)
		}
	})

	t.Run("PremiumInsurancePreservesStreak", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}
		s.TouchDaily(ctx, date(t, "2024-03-04"))
		s.TouchDaily(ctx, date(t, "2024-03-05"))
		s.TouchDaily(ctx, date(t, "2024-03-07"))

		snap := s.Snapshot()
		if snap.Streak != 2 {
			t.Errorf("Insurance should preserve the streak, got %d", snap.Streak)
		}
		if snap.StreakBroken {
			t.Error("Insured gap should not mark the streak broken")
		}
		if !snap.InsuranceUsedThisWeek {
			t.Error("Insurance should be marked consumed")
		}
	})

	t.Run("SecondGapSameWeekResets", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}
		s.TouchDaily(ctx, date(t, "2024-03-04"))
		s.TouchDaily(ctx, date(t, "2024-03-06")) // consumes insurance
		s.TouchDaily(ctx, date(t, "2024-03-08")) // no insurance left

		snap := s.Snapshot()
		if snap.Streak != 1 || !snap.StreakBroken {
			t.Errorf("Second gap should reset: streak=%d broken=%v", snap.Streak, snap.StreakBroken)
		}
	})
}

func TestReviveStreak(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsWhenNotBroken", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ReviveStreak(ctx); !errors.Is(err, progress.ErrStreakNotBroken) {
			t.Errorf("Expected ErrStreakNotBroken, got %v", err)
		}
	})

	t.Run("ClearsFlagForFee", func(t *testing.T) {
		s := newTestService(t)
		s.TouchDaily(ctx, date(t, "2024-03-01"))
		s.TouchDaily(ctx, date(t, "2024-03-05"))

		if err := s.ReviveStreak(ctx); err != nil {
			t.Fatalf("ReviveStreak failed: %v", err)
		}

		snap := s.Snapshot()
		if snap.StreakBroken {
			t.Error("Broken flag should be cleared")
		}
		if snap.Coins != progress.DefaultCoins-progress.ReviveCost {
			t.Errorf("Expected %d coins, got %d", progress.DefaultCoins-progress.ReviveCost, snap.Coins)
		}
		if snap.Streak != 1 {
			t.Errorf("Revive must not restore the streak count, got %d", snap.Streak)
		}
	})

	t.Run("RejectsWhenBroke", func(t *testing.T) {
		s := newTestService(t)
		s.TouchDaily(ctx, date(t, "2024-03-01"))
		s.TouchDaily(ctx, date(t, "2024-03-05"))
		if err := s.Spend(ctx, progress.DefaultCoins); err != nil {
			t.Fatalf("Spend failed: %v", err)
		}

		if err := s.ReviveStreak(ctx); !errors.Is(err, progress.ErrInsufficientFunds) {
			t.Errorf("Expected ErrInsufficientFunds, got %v", err)
		}
		if !s.Snapshot().StreakBroken {
			t.Error("Failed revive must leave the flag set")
		}
	})
}

func TestRecordJournalSave(t *testing.T) {
	ctx := context.Background()
	today := func(t *testing.T) util.Date { return date(t, "2024-03-01") }

	t.Run("FirstSaveAwardsAndTouchesStreak", func(t *testing.T) {
		s := newTestService(t)
		first, err := s.RecordJournalSave(ctx, today(t))
		if err != nil {
			t.Fatalf("RecordJournalSave failed: %v", err)
		}
		if !first {
			t.Error("First save of the day should report the award")
		}

		snap := s.Snapshot()
		if snap.Coins != progress.DefaultCoins+progress.JournalCoinReward {
			t.Errorf("Expected journal coin reward, got %d coins", snap.Coins)
		}
		if snap.PointsToday != progress.JournalPointReward {
			t.Errorf("Expected %d points, got %d", progress.JournalPointReward, snap.PointsToday)
		}
		if snap.Streak != 1 {
			t.Errorf("Journal save should touch the streak, got %d", snap.Streak)
		}
		if snap.JournalCountToday != 1 {
			t.Errorf("Expected journal count 1, got %d", snap.JournalCountToday)
		}
	})

	t.Run("FreeTierCapsAtOnePerDay", func(t *testing.T) {
		s := newTestService(t)
		if _, err := s.RecordJournalSave(ctx, today(t)); err != nil {
			t.Fatalf("First save failed: %v", err)
		}

		before := s.Snapshot()
		_, err := s.RecordJournalSave(ctx, today(t))
		if !errors.Is(err, progress.ErrJournalLimitReached) {
			t.Fatalf("Expected ErrJournalLimitReached, got %v", err)
		}

		after := s.Snapshot()
		if after.Coins != before.Coins || after.JournalCountToday != before.JournalCountToday {
			t.Error("Rejected save must leave every counter untouched")
		}
	})

	t.Run("PremiumSavesUnlimitedButAwardOnce", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}
		coinsBefore := s.Snapshot().Coins

		first, err := s.RecordJournalSave(ctx, today(t))
		if err != nil || !first {
			t.Fatalf("First save: first=%v err=%v", first, err)
		}
		second, err := s.RecordJournalSave(ctx, today(t))
		if err != nil {
			t.Fatalf("Second premium save failed: %v", err)
		}
		if second {
			t.Error("Second save of the day must not award again")
		}

		snap := s.Snapshot()
		if snap.Coins != coinsBefore+progress.JournalCoinReward {
			t.Errorf("Award paid more than once: got %d coins", snap.Coins)
		}
		if snap.JournalCountToday != 2 {
			t.Errorf("Expected journal count 2, got %d", snap.JournalCountToday)
		}
	})
}

func TestRegisterGoalCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("FreeTierCapsAtFivePerDay", func(t *testing.T) {
		s := newTestService(t)
		d := date(t, "2024-03-01")
		for i := 0; i < 5; i++ {
			if err := s.RegisterGoalCreated(ctx, d); err != nil {
				t.Fatalf("Create %d rejected: %v", i+1, err)
			}
		}

		if err := s.RegisterGoalCreated(ctx, d); !errors.Is(err, progress.ErrGoalLimitReached) {
			t.Errorf("Expected ErrGoalLimitReached on the sixth create, got %v", err)
		}
		if got := s.Snapshot().DailyGoalsCreated; got != 5 {
			t.Errorf("Rejected create must not advance the counter, got %d", got)
		}
	})

	t.Run("CounterResetsOnNewDay", func(t *testing.T) {
		s := newTestService(t)
		d1 := date(t, "2024-03-01")
		for i := 0; i < 5; i++ {
			if err := s.RegisterGoalCreated(ctx, d1); err != nil {
				t.Fatalf("Create %d rejected: %v", i+1, err)
			}
		}

		if err := s.RegisterGoalCreated(ctx, date(t, "2024-03-02")); err != nil {
			t.Errorf("New day should reset the creation cap, got %v", err)
		}
		if got := s.Snapshot().DailyGoalsCreated; got != 1 {
			t.Errorf("Expected counter 1 on the new day, got %d", got)
		}
	})

	t.Run("PremiumUncapped", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}
		d := date(t, "2024-03-01")
		for i := 0; i < 20; i++ {
			if err := s.RegisterGoalCreated(ctx, d); err != nil {
				t.Fatalf("Premium create %d rejected: %v", i+1, err)
			}
		}
	})
}

func TestAwardGoalCompletion(t *testing.T) {
	ctx := context.Background()

	t.Run("PaysUntilDailyCap", func(t *testing.T) {
		s := newTestService(t)
		for i := 0; i < 10; i++ {
			paid, err := s.AwardGoalCompletion(ctx)
			if err != nil {
				t.Fatalf("Award %d failed: %v", i+1, err)
			}
			if !paid {
				t.Fatalf("Award %d should pay under the cap", i+1)
			}
		}

		snap := s.Snapshot()
		if snap.Coins != progress.DefaultCoins+10*progress.GoalCoinReward {
			t.Errorf("Expected ten paid rewards, got %d coins", snap.Coins)
		}
		if snap.PointsToday != 10*progress.GoalPointReward {
			t.Errorf("Expected %d points, got %d", 10*progress.GoalPointReward, snap.PointsToday)
		}
	})

	t.Run("PastCapPaysNothing", func(t *testing.T) {
		s := newTestService(t)
		for i := 0; i < 10; i++ {
			if _, err := s.AwardGoalCompletion(ctx); err != nil {
				t.Fatalf("Award %d failed: %v", i+1, err)
			}
		}
		before := s.Snapshot()

		paid, err := s.AwardGoalCompletion(ctx)
		if err != nil {
			t.Fatalf("Capped award errored: %v", err)
		}
		if paid {
			t.Error("Eleventh completion must not pay")
		}

		after := s.Snapshot()
		if after.Coins != before.Coins || after.PointsToday != before.PointsToday {
			t.Error("Capped completion must not change the balances")
		}
	})
}

func TestSpend(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	if err := s.Spend(ctx, 50); err != nil {
		t.Fatalf("Spend failed: %v", err)
	}
	if got := s.Snapshot().Coins; got != progress.DefaultCoins-50 {
		t.Errorf("Expected %d coins, got %d", progress.DefaultCoins-50, got)
	}

	if err := s.Spend(ctx, 1000); !errors.Is(err, progress.ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	if got := s.Snapshot().Coins; got != progress.DefaultCoins-50 {
		t.Errorf("Failed spend must not change the balance, got %d", got)
	}
}

func TestRollover(t *testing.T) {
	ctx := context.Background()

	t.Run("SkipsWhileDayStillAwarded", func(t *testing.T) {
		s := newTestService(t)
		d := date(t, "2024-03-05")
		if _, err := s.RecordJournalSave(ctx, d); err != nil {
			t.Fatalf("RecordJournalSave failed: %v", err)
		}

		if s.Rollover(ctx, d) {
			t.Error("Rollover must not fire on the awarded day")
		}
		if got := s.Snapshot().PointsToday; got == 0 {
			t.Error("Same-day rollover must not clear the counters")
		}
	})

	t.Run("ClearsCountersOnNewDay", func(t *testing.T) {
		s := newTestService(t)
		if _, err := s.RecordJournalSave(ctx, date(t, "2024-03-05")); err != nil {
			t.Fatalf("RecordJournalSave failed: %v", err)
		}
		coins := s.Snapshot().Coins
		streak := s.Snapshot().Streak

		if !s.Rollover(ctx, date(t, "2024-03-06")) {
			t.Fatal("Expected rollover to fire on the new day")
		}

		snap := s.Snapshot()
		if snap.PointsToday != 0 || snap.JournalCountToday != 0 || snap.GoalsCompletedToday != 0 {
			t.Error("Per-day counters should be zeroed")
		}
		if snap.Coins != coins || snap.Streak != streak {
			t.Error("Rollover must never touch coins or streak")
		}
	})

	t.Run("NoOpWhenAlreadyClean", func(t *testing.T) {
		s := newTestService(t)
		if s.Rollover(ctx, date(t, "2024-03-06")) {
			t.Error("Rollover on a clean aggregate should be a no-op")
		}
	})

	t.Run("ResetsInsuranceAcrossISOWeeks", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}
		s.TouchDaily(ctx, date(t, "2024-03-05"))
		s.TouchDaily(ctx, date(t, "2024-03-07")) // consumes insurance

		s.Rollover(ctx, date(t, "2024-03-08"))
		if !s.Snapshot().InsuranceUsedThisWeek {
			t.Fatal("Insurance must stay consumed within the same ISO week")
		}

		s.Rollover(ctx, date(t, "2024-03-11")) // Monday of the next week
		if s.Snapshot().InsuranceUsedThisWeek {
			t.Error("Insurance should reset on the ISO week boundary")
		}
	})
}

func TestBootstrap(t *testing.T) {
	s := newTestService(t)
	s.Bootstrap(context.Background(), "nova", 300, 9)

	snap := s.Snapshot()
	if snap.Username != "nova" || snap.Coins != 300 || snap.Streak != 9 {
		t.Errorf("Bootstrap not applied: %+v", snap)
	}
}

func TestActivatePremium(t *testing.T) {
	ctx := context.Background()

	t.Run("GrantsBundle", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, []int{1, 2, 3}); err != nil {
			t.Fatalf("ActivatePremium failed: %v", err)
		}

		snap := s.Snapshot()
		if !snap.IsPremium {
			t.Error("Premium flag should be set")
		}
		if snap.Coins != progress.DefaultCoins+progress.PremiumBonusCoins {
			t.Errorf("Expected the premium coin grant, got %d", snap.Coins)
		}
		for _, id := range []int{1, 2, 3} {
			if !snap.OwnedCosmeticIDs.Contains(id) {
				t.Errorf("Cosmetic %d should be owned", id)
			}
		}
	})

	t.Run("RejectsSecondActivation", func(t *testing.T) {
		s := newTestService(t)
		if err := s.ActivatePremium(ctx, nil); err != nil {
			t.Fatalf("First activation failed: %v", err)
		}
		coins := s.Snapshot().Coins

		if err := s.ActivatePremium(ctx, nil); !errors.Is(err, progress.ErrAlreadyPremium) {
			t.Errorf("Expected ErrAlreadyPremium, got %v", err)
		}
		if s.Snapshot().Coins != coins {
			t.Error("Second activation must not grant coins again")
		}
	})
}

func TestPurchaseCosmetic(t *testing.T) {
	ctx := context.Background()

	t.Run("DebitsAndOwns", func(t *testing.T) {
		s := newTestService(t)
		if err := s.PurchaseCosmetic(ctx, 4, 80); err != nil {
			t.Fatalf("PurchaseCosmetic failed: %v", err)
		}

		snap := s.Snapshot()
		if snap.Coins != progress.DefaultCoins-80 {
			t.Errorf("Expected %d coins, got %d", progress.DefaultCoins-80, snap.Coins)
		}
		if !snap.OwnedCosmeticIDs.Contains(4) {
			t.Error("Cosmetic should be owned after purchase")
		}
	})

	t.Run("RejectsDoublePurchase", func(t *testing.T) {
		s := newTestService(t)
		if err := s.PurchaseCosmetic(ctx, 4, 80); err != nil {
			t.Fatalf("First purchase failed: %v", err)
		}
		if err := s.PurchaseCosmetic(ctx, 4, 80); !errors.Is(err, progress.ErrAlreadyOwned) {
			t.Errorf("Expected ErrAlreadyOwned, got %v", err)
		}
	})

	t.Run("FailedDebitLeavesOwnershipUnchanged", func(t *testing.T) {
		s := newTestService(t)
		err := s.PurchaseCosmetic(ctx, 1, 150)
		if !errors.Is(err, progress.ErrInsufficientFunds) {
			t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
		}

		snap := s.Snapshot()
		if snap.OwnedCosmeticIDs.Contains(1) {
			t.Error("Failed purchase must not record ownership")
		}
		if snap.Coins != progress.DefaultCoins {
			t.Errorf("Failed purchase must not debit coins, got %d", snap.Coins)
		}
	})
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	if err := s.PurchaseCosmetic(ctx, 5, 0); err != nil {
		t.Fatalf("PurchaseCosmetic failed: %v", err)
	}

	snap := s.Snapshot()
	snap.OwnedCosmeticIDs[0] = 99

	if s.Snapshot().OwnedCosmeticIDs.Contains(99) {
		t.Error("Mutating a snapshot must not leak into the aggregate")
	}
}

func TestPersist(t *testing.T) {
	repo := &fakeRepo{}
	s, err := progress.NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	s.AddCoins(context.Background(), 30)
	if err := s.Persist(context.Background()); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	if repo.upserts != 1 {
		t.Fatalf("Expected one upsert, got %d", repo.upserts)
	}
	if repo.stored.Coins != progress.DefaultCoins+30 {
		t.Errorf("Stored snapshot stale: got %d coins", repo.stored.Coins)
	}
}
