package model

import "time"

// UserAchievement is an earned milestone. (user, track, name) is unique so
// re-evaluation never awards twice.
// swagger:model UserAchievement
type UserAchievement struct {
	BaseModel
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_track_name" json:"userId"`
	TrackSlug string    `gorm:"size:20;not null;uniqueIndex:idx_user_track_name" json:"trackSlug"`
	DayNumber int       `json:"dayNumber"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_user_track_name" json:"name"`
	EarnedAt  time.Time `json:"earnedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
