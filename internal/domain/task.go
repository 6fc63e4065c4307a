package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskCompleted TaskStatus = "completed"
)

// Task belongs to exactly one of Lead/Contact/Account/Deal via mutually
// exclusive nullable foreign keys. Conversion rewires these keys.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	OwnerID     *string    `json:"owner_id" gorm:"size:36;index"`
	Owner       *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`

	LeadID    *string `json:"lead_id" gorm:"size:36;index"`
	ContactID *string `json:"contact_id" gorm:"size:36;index"`
	AccountID *string `json:"account_id" gorm:"size:36;index"`
	DealID    *string `json:"deal_id" gorm:"size:36;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
