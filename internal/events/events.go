package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/studyboss/study-service/internal/models"
)

// EventType represents different types of domain events
type EventType string

const (
	// User events
	EventUserRegistered EventType = "user.registered"
	EventUserActivated  EventType = "user.activated"

	// Task events
	EventTaskBroadcast EventType = "task.broadcast"

	// Quiz events
	EventQuizResultRecorded EventType = "quiz_result.recorded"
)

// Event is the base envelope for all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "study-service",
		Version:   "1.0",
		Data:      data,
	}
}

// Event payloads

type UserRegisteredEvent struct {
	UserID      uint            `json:"user_id"`
	StudentCode string          `json:"student_code"`
	PlanType    models.PlanType `json:"plan_type"`
}

type UserActivatedEvent struct {
	UserID   uint            `json:"user_id"`
	PlanType models.PlanType `json:"plan_type"`
}

type TaskBroadcastEvent struct {
	Title         string `json:"title"`
	UsersTargeted int    `json:"users_targeted"`
	TasksCreated  int    `json:"tasks_created"`
	TaskIDs       []uint `json:"task_ids"`
}

type QuizResultRecordedEvent struct {
	ResultID uint `json:"result_id"`
	UserID   uint `json:"user_id"`
	QuizID   uint `json:"quiz_id"`
	Score    int  `json:"score"`
}
