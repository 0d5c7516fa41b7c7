package progress

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	util "github.com/ubloom/engine/internal/utils"
)

// Progress is the single user-progress aggregate. One row per engine
// instance; every field is date-scoped or monotone per the rules in the
// service layer, and nothing outside this package mutates it.
type Progress struct {
	ID                    uint      `gorm:"primaryKey" json:"-"`
	Username              string    `json:"username"`
	IsPremium             bool      `json:"is_premium"`
	Coins                 int       `json:"coins"`
	PointsToday           int       `json:"points_today"`
	Streak                int       `json:"streak"`
	LastActiveDate        util.Date `gorm:"type:text" json:"last_active_date"`
	StreakBroken          bool      `json:"streak_broken"`
	InsuranceUsedThisWeek bool      `json:"insurance_used_this_week"`
	JournalCountToday     int       `json:"journal_count_today"`
	DailyJournalAwarded   util.Date `gorm:"type:text" json:"daily_journal_awarded"`
	GoalsCompletedToday   int       `json:"goals_completed_today"`
	DailyGoalsCreated     int       `json:"daily_goals_created"`
	LastGoalDate          util.Date `gorm:"type:text" json:"last_goal_date"`
	OwnedCosmeticIDs      IDSet     `gorm:"type:text" json:"owned_cosmetic_ids"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func defaultProgress() *Progress {
	return &Progress{
		ID:               1,
		Coins:            DefaultCoins,
		OwnedCosmeticIDs: IDSet{},
	}
}

// IDSet is a set of cosmetic IDs stored as a JSON column.
type IDSet []int

func (s IDSet) Contains(id int) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		s = IDSet{}
	}
	b, err := json.Marshal([]int(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *IDSet) Scan(value interface{}) error {
	if value == nil {
		*s = IDSet{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]int)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]int)(s))
	default:
		return fmt.Errorf("cannot scan type %T into IDSet", value)
	}
}
