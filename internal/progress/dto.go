package progress

import (
	"github.com/ubloom/engine/internal/tier"
	util "github.com/ubloom/engine/internal/utils"
)

type Response struct {
	Username              string      `json:"username"`
	IsPremium             bool        `json:"is_premium"`
	Coins                 int         `json:"coins"`
	PointsToday           int         `json:"points_today"`
	Streak                int         `json:"streak"`
	LastActiveDate        util.Date   `json:"last_active_date"`
	StreakBroken          bool        `json:"streak_broken"`
	InsuranceUsedThisWeek bool        `json:"insurance_used_this_week"`
	JournalCountToday     int         `json:"journal_count_today"`
	DailyJournalAwarded   util.Date   `json:"daily_journal_awarded"`
	GoalsCompletedToday   int         `json:"goals_completed_today"`
	DailyGoalsCreated     int         `json:"daily_goals_created"`
	OwnedCosmeticIDs      []int       `json:"owned_cosmetic_ids"`
	Limits                tier.Limits `json:"limits"`
}

func toResponse(p Progress) *Response {
	return &Response{
		Username:              p.Username,
		IsPremium:             p.IsPremium,
		Coins:                 p.Coins,
		PointsToday:           p.PointsToday,
		Streak:                p.Streak,
		LastActiveDate:        p.LastActiveDate,
		StreakBroken:          p.StreakBroken,
		InsuranceUsedThisWeek: p.InsuranceUsedThisWeek,
		JournalCountToday:     p.JournalCountToday,
		DailyJournalAwarded:   p.DailyJournalAwarded,
		GoalsCompletedToday:   p.GoalsCompletedToday,
		DailyGoalsCreated:     p.DailyGoalsCreated,
		OwnedCosmeticIDs:      p.OwnedCosmeticIDs,
		Limits:                tier.ForPremium(p.IsPremium),
	}
}
