package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	OwnerID      *string `json:"owner_id" gorm:"size:36;index"`
	Owner        *User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	FullName     string  `json:"full_name" validate:"required"`
	Address      string  `json:"address,omitempty"`
	Description  string  `json:"description,omitempty" gorm:"type:text"`
	PhoneNum     string  `json:"phone_num,omitempty"`
	CustomFields JSONMap `json:"custom_fields,omitempty" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
