package conversion

import (
	"context"
	"errors"
	"time"

	"crmcore/internal/domain"
	"crmcore/internal/pkg/validator"
	"crmcore/internal/repository"
)

// Service converts a lead into an account, a contact and optionally a deal,
// rewires the lead's tasks and retires the lead. The whole sequence runs in
// one transaction: there is no partial-commit window.
type Service struct {
	inTx     TxRunner
	activity ActivityEmitter
}

func NewService(inTx TxRunner, activity ActivityEmitter) *Service {
	return &Service{
		inTx:     inTx,
		activity: activity,
	}
}

// ConvertLead runs the pipeline for the given lead. deal may be nil (no deal
// wanted); newOwnerID may be empty (keep the lead's owner, which may itself
// be absent). The deal payload is validated in full before the first write.
func (s *Service) ConvertLead(ctx context.Context, leadID string, deal *ConvertDealRequest, newOwnerID string) (*Result, error) {
	var closingDate time.Time
	if deal != nil {
		if fields := validator.Validate(deal); fields != nil {
			return nil, &ValidationError{Fields: fields}
		}
		parsed, err := parseClosingDate(deal.ClosingDate)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{
				"closing_date": "must be a date (2006-01-02 or RFC 3339)",
			}}
		}
		closingDate = parsed
	}

	var res Result
	err := s.inTx(ctx, func(store Store) error {
		lead, err := store.LeadWithRelations(ctx, leadID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrLeadNotFound
			}
			return err
		}

		owner := lead.Owner
		if newOwnerID != "" {
			u, err := store.UserByID(ctx, newOwnerID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrOwnerNotFound
				}
				return err
			}
			owner = u
			lead.OwnerID = &u.ID
			lead.Owner = u
			if err := store.SaveLead(ctx, lead); err != nil {
				return err
			}
		}

		var ownerID *string
		if owner != nil {
			ownerID = &owner.ID
		}

		account := &domain.Account{
			OwnerID:     ownerID,
			FullName:    lead.FullName + " Account",
			Address:     lead.Address,
			Description: lead.Description,
			PhoneNum:    lead.PhoneNum,
		}
		if err := store.CreateAccount(ctx, account); err != nil {
			return err
		}

		contact := &domain.Contact{
			OwnerID:       ownerID,
			AccountID:     &account.ID,
			FullName:      lead.FullName,
			Email:         lead.Email,
			Source:        lead.Source,
			Address:       lead.Address,
			Description:   lead.Description,
			PhoneNum:      lead.PhoneNum,
			SocialAccount: lead.SocialAccount,
		}
		if err := store.CreateContact(ctx, contact); err != nil {
			return err
		}

		var dealRec *domain.Deal
		if deal != nil {
			dealRec = &domain.Deal{
				OwnerID:     ownerID,
				AccountID:   &account.ID,
				ContactID:   &contact.ID,
				FullName:    deal.FullName,
				Amount:      deal.Amount,
				ClosingDate: closingDate,
				Stage:       domain.DealStage(deal.Stage),
				Description: deal.Description,
			}
			if deal.Probability != nil {
				dealRec.Probability = *deal.Probability
			}
			if err := store.CreateDeal(ctx, dealRec); err != nil {
				return err
			}
		}

		// Every task the lead owned moves to the contact, plus the deal when
		// one was produced, otherwise the account.
		tasks := lead.Tasks
		for i := range tasks {
			t := &tasks[i]
			t.LeadID = nil
			t.ContactID = &contact.ID
			if dealRec != nil {
				t.DealID = &dealRec.ID
				t.AccountID = nil
			} else {
				t.AccountID = &account.ID
				t.DealID = nil
			}
		}
		if len(tasks) > 0 {
			if err := store.SaveTasks(ctx, tasks); err != nil {
				return err
			}
		}

		if err := store.SoftDeleteLead(ctx, lead.ID); err != nil {
			return err
		}

		res = Result{Account: account, Contact: contact, Deal: dealRec}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitConverted(leadID, &res)
	return &res, nil
}

// emitConverted records the audit trail after the transaction committed.
func (s *Service) emitConverted(leadID string, res *Result) {
	if s.activity == nil {
		return
	}

	s.activity.Emit(domain.ActivityLog{
		EntityID:   leadID,
		EntityName: "lead",
		OwnerID:    res.Contact.OwnerID,
		Source:     "conversion",
		Action:     domain.ActionDelete,
	})
	s.activity.Emit(domain.ActivityLog{
		EntityID:   res.Account.ID,
		EntityName: "account",
		OwnerID:    res.Account.OwnerID,
		Source:     "conversion",
		Action:     domain.ActionCreate,
		Changes: domain.FieldChangeList{
			{Name: "full_name", From: nil, To: res.Account.FullName},
		},
	})
	s.activity.Emit(domain.ActivityLog{
		EntityID:   res.Contact.ID,
		EntityName: "contact",
		OwnerID:    res.Contact.OwnerID,
		Source:     "conversion",
		Action:     domain.ActionCreate,
		Changes: domain.FieldChangeList{
			{Name: "full_name", From: nil, To: res.Contact.FullName},
		},
	})
	if res.Deal != nil {
		s.activity.Emit(domain.ActivityLog{
			EntityID:   res.Deal.ID,
			EntityName: "deal",
			OwnerID:    res.Deal.OwnerID,
			Source:     "conversion",
			Action:     domain.ActionCreate,
			Changes: domain.FieldChangeList{
				{Name: "full_name", From: nil, To: res.Deal.FullName},
			},
		})
	}
}

func parseClosingDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
