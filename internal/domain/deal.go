package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealStage string

const (
	StageQualification DealStage = "Qualification"
	StageNeedsAnalysis DealStage = "Needs Analysis"
	StageProposal      DealStage = "Proposal"
	StageNegotiation   DealStage = "Negotiation"
	StageClosedWon     DealStage = "Closed Won"
	StageClosedLost    DealStage = "Closed Lost"
)

type Deal struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID      *string   `json:"owner_id" gorm:"size:36;index"`
	Owner        *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	AccountID    *string   `json:"account_id" gorm:"size:36;index"`
	ContactID    *string   `json:"contact_id" gorm:"size:36;index"`
	FullName     string    `json:"full_name" validate:"required"`
	Amount       *float64  `json:"amount,omitempty"`
	ClosingDate  time.Time `json:"closing_date"`
	Stage        DealStage `json:"stage"`
	Probability  int       `json:"probability"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	CustomFields JSONMap   `json:"custom_fields,omitempty" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
