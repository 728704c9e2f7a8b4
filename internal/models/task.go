package models

import (
	"time"
)

// Task is a to-do list entry. IsAdminTask marks entries fanned out by an
// admin broadcast; the flag is fixed at creation.
type Task struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;index"`

	Title       string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	IsCompleted bool `json:"isCompleted" gorm:"default:false"`
	IsAdminTask bool `json:"isAdminTask" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Task) TableName() string {
	return "tasks"
}
