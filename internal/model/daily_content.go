package model

// DailyContent is the authored template for one (track, day). It is
// read-only to the personalization engine; admins create and edit rows.
// swagger:model DailyContent
type DailyContent struct {
	UUIDBase
	TrackSlug string `gorm:"size:20;not null;uniqueIndex:idx_track_day" json:"trackSlug"`
	DayNumber int    `gorm:"not null;uniqueIndex:idx_track_day" json:"dayNumber"`

	Title     string `gorm:"size:200;not null" json:"title"`
	Objective string `gorm:"size:500" json:"objective"`

	Verse      string `gorm:"size:200" json:"verse"`
	Reflection string `gorm:"type:text" json:"reflection"`
	Prayer     string `gorm:"type:text" json:"prayer"`

	MainActivityTitle   string `gorm:"size:200" json:"mainActivityTitle"`
	MainActivityContent string `gorm:"type:text" json:"mainActivityContent"`

	ChallengeTitle       string `gorm:"size:200" json:"challengeTitle"`
	ChallengeDescription string `gorm:"type:text" json:"challengeDescription"`

	BonusTitle   string `gorm:"size:200" json:"bonusTitle"`
	BonusContent string `gorm:"type:text" json:"bonusContent"`

	MaxPoints       int `gorm:"default:100" json:"maxPoints"`
	DifficultyLevel int `gorm:"default:3" json:"difficultyLevel"` // 1-5
}

func (DailyContent) TableName() string {
	return "daily_contents"
}
