package conversion

import "crmcore/internal/domain"

// ConvertDealRequest is the optional request body of the convert endpoint.
// Its presence means "also create a deal".
type ConvertDealRequest struct {
	FullName    string   `json:"full_name" validate:"required"`
	ClosingDate string   `json:"closing_date" validate:"required"`
	Stage       string   `json:"stage" validate:"required"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Probability *int     `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	Description string   `json:"description,omitempty"`
}

// Result is what a successful conversion produced. Deal is nil when no deal
// payload was supplied.
type Result struct {
	Account *domain.Account `json:"account"`
	Contact *domain.Contact `json:"contact"`
	Deal    *domain.Deal    `json:"deal"`
}
