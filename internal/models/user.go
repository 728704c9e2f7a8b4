package models

import (
	"time"
)

type PlanType string

const (
	PlanFree    PlanType = "free"
	PlanPremium PlanType = "premium"
	PlanVIP     PlanType = "vip"
)

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password string `json:"-" gorm:"not null;size:255" validate:"required,min=6"`
	FullName string `json:"fullName" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" gorm:"not null;size:20" validate:"required,min=8,max=20"`
	College  string `json:"college" gorm:"not null;size:100" validate:"required,max=100"`

	AcademicYear string `json:"academicYear" gorm:"not null;size:50" validate:"required,max=50"`
	Governorate  string `json:"governorate" gorm:"not null;size:50" validate:"required,max=50"`

	// Server-generated, format STB-<year>-<3-digit-random>
	StudentCode string `json:"studentCode" gorm:"uniqueIndex;not null;size:20"`

	// Subscription state. Activation is a manual admin action after
	// out-of-band payment confirmation.
	PlanType PlanType `json:"planType" gorm:"default:free;size:10" validate:"omitempty,plan_type"`
	IsActive bool     `json:"isActive" gorm:"default:false"`
	IsAdmin  bool     `json:"isAdmin" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
