package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizResult records one quiz attempt. Results are append-only; retakes
// create new rows and all attempts count toward the user's average.
type QuizResult struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;index"`
	QuizID uint `json:"quizId" gorm:"not null;index"`

	Score   int            `json:"score" gorm:"not null" validate:"min=0,max=100"`
	Answers datatypes.JSON `json:"answers"`

	// Stamped on insert by both backends; gorm only auto-fills
	// CreatedAt/UpdatedAt by name, so the tag is required here.
	CompletedAt time.Time `json:"completedAt" gorm:"autoCreateTime"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
