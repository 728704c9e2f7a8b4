package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// QuizQuestion is a single multiple-choice question. Questions are stored
// inline with the quiz as a JSON document, not as a separate table.
type QuizQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quiz is either daily (Day set, IsWeekly false) or weekly (Day nil,
// IsWeekly true). The pairing is enforced at write time.
type Quiz struct {
	ID   uint `json:"id" gorm:"primaryKey"`
	Week int  `json:"week" gorm:"not null;index" validate:"required,min=1,max=16"`
	Day  *int `json:"day" gorm:"index" validate:"omitempty,min=1,max=6"`

	Title     string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Questions datatypes.JSON `json:"questions" gorm:"not null"`
	IsWeekly  bool           `json:"isWeekly" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt"`
}

// DecodeQuestions unmarshals the stored question document.
func (q *Quiz) DecodeQuestions() ([]QuizQuestion, error) {
	var questions []QuizQuestion
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (Quiz) TableName() string {
	return "quizzes"
}
