package model

import "time"

// TrackProgress is the per (user, track) aggregate mutated on day
// completion. CurrentDay only moves forward.
// swagger:model TrackProgress
type TrackProgress struct {
	BaseModel
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_track" json:"userId"`
	TrackSlug      string    `gorm:"size:20;not null;uniqueIndex:idx_user_track" json:"trackSlug"`
	CurrentDay     int       `gorm:"default:1" json:"currentDay"`
	TotalPoints    int       `gorm:"default:0" json:"totalPoints"`
	StreakDays     int       `gorm:"default:0" json:"streakDays"`
	LevelNumber    int       `gorm:"default:1" json:"levelNumber"`
	LastActivityAt *time.Time `json:"lastActivityAt"`
	IsActive       bool      `gorm:"default:true" json:"isActive"`
}

func (TrackProgress) TableName() string {
	return "track_progress"
}

// ActivityProgress records one completed activity. At most one row exists
// per (user, track, day, activity index); deleting the row un-completes.
// swagger:model ActivityProgress
type ActivityProgress struct {
	BaseModel
	UserID        uint      `gorm:"not null;uniqueIndex:idx_activity_key" json:"userId"`
	TrackSlug     string    `gorm:"size:20;not null;uniqueIndex:idx_activity_key" json:"trackSlug"`
	DayNumber     int       `gorm:"not null;uniqueIndex:idx_activity_key" json:"dayNumber"`
	ActivityIndex int       `gorm:"not null;uniqueIndex:idx_activity_key" json:"activityIndex"`
	ActivityType  string    `gorm:"size:20" json:"activityType"`
	Title         string    `gorm:"size:200" json:"title"`
	PointsEarned  int       `json:"pointsEarned"`
	CompletedAt   time.Time `json:"completedAt"`
}

func (ActivityProgress) TableName() string {
	return "activity_progress"
}
