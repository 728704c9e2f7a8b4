package models

import (
	"time"
)

// Summary is the study material published for one day of the 16-week plan.
// The (week, day) pair is the natural key students navigate by; at most one
// summary exists per slot.
type Summary struct {
	ID   uint `json:"id" gorm:"primaryKey"`
	Week int  `json:"week" gorm:"not null;index:idx_summaries_week_day,unique" validate:"required,min=1,max=16"`
	Day  int  `json:"day" gorm:"not null;index:idx_summaries_week_day,unique" validate:"required,min=1,max=6"`

	Title   string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content *string `json:"content" gorm:"type:text"`
	FileURL *string `json:"fileUrl" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Summary) TableName() string {
	return "summaries"
}
