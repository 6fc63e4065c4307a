package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityAction string

const (
	ActionCreate ActivityAction = "CREATE"
	ActionUpdate ActivityAction = "UPDATE"
	ActionDelete ActivityAction = "DELETE"
)

// FieldChange is one before/after diff entry of an activity record.
type FieldChange struct {
	Name string `json:"name"`
	From any    `json:"from"`
	To   any    `json:"to"`
}

type FieldChangeList []FieldChange

func (l FieldChangeList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FieldChangeList) Scan(src any) error {
	return scanJSON(src, l)
}

// ActivityLog is one entry of the audit feed.
type ActivityLog struct {
	ID         string          `json:"id" gorm:"primaryKey;size:36"`
	EntityID   string          `json:"entity_id" gorm:"size:36;index"`
	EntityName string          `json:"entity_name"`
	OwnerID    *string         `json:"owner_id" gorm:"size:36"`
	Source     string          `json:"source"`
	Action     ActivityAction  `json:"action"`
	Changes    FieldChangeList `json:"changes,omitempty" gorm:"type:json"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
