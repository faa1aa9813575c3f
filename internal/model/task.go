package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

// Task represents a posted task open for bids.
type Task struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Location    string          `json:"location" gorm:"size:255;not null"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:decimal(20,2);not null"`
	Date        string          `json:"date" gorm:"size:64;not null"`
	Status      TaskStatus      `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	Bids        uint            `json:"bids" gorm:"not null;default:0"`
	Image       string          `json:"image,omitempty" gorm:"size:512"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID and initial status before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}
