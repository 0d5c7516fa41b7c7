package tier

// Unlimited marks a cap the premium tier does not enforce.
const Unlimited = -1

const (
	FreeJournalsPerDay   = 1
	FreeDailyGoalCreates = 5
	FreeDailyRewardCap   = 10
)

// Limits is the tier configuration consulted before every gated mutation.
type Limits struct {
	JournalsPerDay     int  `json:"journals_per_day"`
	DailyGoalCreateCap int  `json:"daily_goal_create_cap"`
	DailyRewardCap     int  `json:"daily_reward_cap"`
	CosmeticsUnlocked  bool `json:"cosmetics_unlocked"`
}

// ForPremium returns the limits for the given tier. Pure lookup, no errors.
func ForPremium(isPremium bool) Limits {
	if isPremium {
		return Limits{
			JournalsPerDay:     Unlimited,
			DailyGoalCreateCap: Unlimited,
			DailyRewardCap:     Unlimited,
			CosmeticsUnlocked:  true,
		}
	}
	return Limits{
		JournalsPerDay:     FreeJournalsPerDay,
		DailyGoalCreateCap: FreeDailyGoalCreates,
		DailyRewardCap:     FreeDailyRewardCap,
		CosmeticsUnlocked:  false,
	}
}

// Allows reports whether a counter at the given value may still grow under
// the cap.
func Allows(count, cap int) bool {
	return cap == Unlimited || count < cap
}
