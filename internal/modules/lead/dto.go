package lead

import "crmcore/internal/domain"

type CreateLeadRequest struct {
	FullName      string            `json:"full_name" validate:"required"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Status        domain.LeadStatus `json:"status"`
	Source        domain.LeadSource `json:"source"`
	OwnerID       *string           `json:"owner_id"`
	Address       string            `json:"address"`
	Description   string            `json:"description"`
	PhoneNum      string            `json:"phone_num"`
	SocialAccount string            `json:"social_account"`
	CustomFields  domain.JSONMap    `json:"custom_fields"`
}

// UpdateLeadRequest uses pointers so an omitted field is left untouched.
type UpdateLeadRequest struct {
	FullName      *string            `json:"full_name" validate:"omitempty,min=1"`
	Email         *string            `json:"email" validate:"omitempty,email"`
	Status        *domain.LeadStatus `json:"status"`
	Source        *domain.LeadSource `json:"source"`
	OwnerID       *string            `json:"owner_id"`
	Address       *string            `json:"address"`
	Description   *string            `json:"description"`
	PhoneNum      *string            `json:"phone_num"`
	SocialAccount *string            `json:"social_account"`
	CustomFields  domain.JSONMap     `json:"custom_fields"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	OwnerID     *string `json:"owner_id"`
}
