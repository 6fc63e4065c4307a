package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section groups a module's fields into an ordered layout block. Order is a
// dense 1-based sequence over the module's surviving sections.
type Section struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	ModuleID  *string    `json:"module_id" gorm:"size:36;index"`
	Name      string     `json:"name"`
	Order     int        `json:"order" gorm:"column:display_order"`
	Column    int        `json:"column" gorm:"column:layout_column"`
	Fields    StringList `json:"fields" gorm:"type:json"`
	IsDefault bool       `json:"is_default"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
