package goal

import "time"

// Goal is one entry of the goal collection. Rewarded is monotone: once a
// completion has been recorded (paid or past the reward cap) it never
// reverts, whatever the status does afterwards.
type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Text        string     `json:"text"`
	Status      Status     `json:"status"`
	Rewarded    bool       `json:"rewarded"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	SkippedAt   *time.Time `json:"skipped_at,omitempty"`
}
