package validator

import (
	"fmt"

	"github.com/studyboss/study-service/internal/models"
)

// QuizValidator handles question-list validation for quiz creation. The
// question list is stored as a JSON document, so struct tags alone cannot
// cover it.
type QuizValidator struct{}

func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// ValidateQuestions validates a complete question list.
func (v *QuizValidator) ValidateQuestions(questions []models.QuizQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz must have at least one question")
	}

	for i, question := range questions {
		if err := v.validateQuestion(question); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func (v *QuizValidator) validateQuestion(question models.QuizQuestion) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}

	if len(question.Options) != 4 {
		return fmt.Errorf("question must have exactly 4 options, got %d", len(question.Options))
	}
	for i, option := range question.Options {
		if option == "" {
			return fmt.Errorf("option %d must not be empty", i+1)
		}
	}

	if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
		return fmt.Errorf("correct answer index %d is out of range", question.CorrectAnswer)
	}

	return nil
}
