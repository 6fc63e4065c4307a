package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNone          LeadStatus = "None"
	LeadStatusAttempted     LeadStatus = "Attempted to Contact"
	LeadStatusContactFuture LeadStatus = "Contact in Future"
	LeadStatusContacted     LeadStatus = "Contacted"
	LeadStatusJunk          LeadStatus = "Junk Lead"
	LeadStatusLost          LeadStatus = "Lost Lead"
	LeadStatusNotContacted  LeadStatus = "Not Contacted"
	LeadStatusPreQualified  LeadStatus = "Pre Qualified"
	LeadStatusQualified     LeadStatus = "Qualified"
)

type LeadSource string

const (
	SourceNone          LeadSource = "None"
	SourceAdvertisement LeadSource = "Advertisement"
	SourceColdCall      LeadSource = "Cold Call"
	SourceEmployee      LeadSource = "Employee Referral"
	SourceFacebook      LeadSource = "Facebook"
	SourceTwitter       LeadSource = "Twitter"
	SourceWebsite       LeadSource = "Website"
	SourcePhone         LeadSource = "Phone"
)

// Lead is the source record of the conversion pipeline. While it exists it is
// only addressable through lead-scoped queries; conversion soft-deletes it and
// replaces it with a fresh Contact.
type Lead struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	OwnerID       *string    `json:"owner_id" gorm:"size:36;index"`
	Owner         *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	FullName      string     `json:"full_name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Status        LeadStatus `json:"status"`
	Source        LeadSource `json:"source"`
	Address       string     `json:"address,omitempty"`
	Description   string     `json:"description,omitempty" gorm:"type:text"`
	PhoneNum      string     `json:"phone_num,omitempty"`
	SocialAccount string     `json:"social_account,omitempty"`
	Tasks         []Task     `json:"tasks,omitempty" gorm:"foreignKey:LeadID"`
	CustomFields  JSONMap    `json:"custom_fields,omitempty" gorm:"type:json"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
