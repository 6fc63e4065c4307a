package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	OwnerID       *string    `json:"owner_id" gorm:"size:36;index"`
	Owner         *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	AccountID     *string    `json:"account_id" gorm:"size:36;index"`
	Account       *Account   `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	FullName      string     `json:"full_name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Source        LeadSource `json:"source"`
	Address       string     `json:"address,omitempty"`
	Description   string     `json:"description,omitempty" gorm:"type:text"`
	PhoneNum      string     `json:"phone_num,omitempty"`
	SocialAccount string     `json:"social_account,omitempty"`
	CustomFields  JSONMap    `json:"custom_fields,omitempty" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
