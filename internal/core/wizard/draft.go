// Package wizard implements the five-step merchant registration form as a
// linear state machine. Moving forward is gated on the current step's
// predicate; moving back is always allowed. Nothing is persisted until the
// final step is finished.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// SubmitFunc persists the application assembled at the end of the wizard.
type SubmitFunc func(ctx context.Context, app *domain.CompanyApplication) error

// Draft holds the in-progress values of every step plus the cursor.
type Draft struct {
	Step           int              `json:"current_step"`
	Business       BusinessIdentity `json:"business"`
	Financial      FinancialProfile `json:"financial"`
	Representative Representative   `json:"representative"`
	Address        Address          `json:"address"`
	Documents      Documents        `json:"documents"`
}

// NewDraft returns an empty draft positioned on step 1.
func NewDraft() *Draft {
	return &Draft{Step: FirstStep}
}

// CurrentStep returns the cursor, clamped to the valid range.
func (d *Draft) CurrentStep() int {
	switch {
	case d.Step < FirstStep:
		return FirstStep
	case d.Step > LastStep:
		return LastStep
	default:
		return d.Step
	}
}

// SetInvoiceName rejects names beyond the limit instead of truncating them.
func (d *Draft) SetInvoiceName(name string) error {
	if len([]rune(name)) > validation.InvoiceNameMaxLen {
		return domain.ErrInvoiceNameTooLong
	}
	d.Business.InvoiceName = name
	return nil
}

// Validate runs the predicate of step and returns the validator error, if any.
func (d *Draft) Validate(step int) error {
	switch step {
	case StepBusiness:
		return validate.Struct(d.Business)
	case StepFinancial:
		return validate.Struct(d.Financial)
	case StepRepresentative:
		return validate.Struct(d.Representative)
	case StepAddress:
		return validate.Struct(d.Address)
	case StepDocuments:
		return validate.Struct(d.Documents)
	default:
		return fmt.Errorf("wizard: unknown step %d", step)
	}
}

// FieldErrors returns the inline errors of step; nil when the step is valid.
func (d *Draft) FieldErrors(step int) []validation.FieldError {
	err := d.Validate(step)
	if err == nil {
		return nil
	}
	if fields := validation.FieldErrors(err); fields != nil {
		return fields
	}
	return []validation.FieldError{{Field: "step", Message: err.Error()}}
}

// CanProceedToStep reports whether step's predicate holds, i.e. whether the
// cursor may leave step for step+1 (or finish, for the last step).
func (d *Draft) CanProceedToStep(step int) bool {
	return d.Validate(step) == nil
}

// Next advances the cursor when the current step is valid.
func (d *Draft) Next() error {
	step := d.CurrentStep()
	if step == LastStep {
		return fmt.Errorf("wizard: already on last step: %w", domain.ErrInvalidTransition)
	}
	if err := d.Validate(step); err != nil {
		return err
	}
	d.Step = step + 1
	return nil
}

// Back moves the cursor one step back without validation.
func (d *Draft) Back() {
	if step := d.CurrentStep(); step > FirstStep {
		d.Step = step - 1
	}
}

// Reset discards every value and returns to step 1.
func (d *Draft) Reset() {
	*d = *NewDraft()
}

// Complete checks every step. Missing documents are reported distinctly since
// they block the finish action itself.
func (d *Draft) Complete() error {
	if !d.CanProceedToStep(StepDocuments) {
		return domain.ErrMissingDocuments
	}
	for step := FirstStep; step < LastStep; step++ {
		if err := d.Validate(step); err != nil {
			return fmt.Errorf("step %d: %w", step, domain.ErrIncompleteDraft)
		}
	}
	return nil
}

// Build assembles a pending application owned by ownerID from the draft values.
func (d *Draft) Build(ownerID string, now time.Time) *domain.CompanyApplication {
	return &domain.CompanyApplication{
		ID:              uuid.NewString(),
		OwnerIdentityID: ownerID,
		BusinessType:    d.Business.BusinessType,
		TaxID:           validation.Digits(d.Business.TaxID),
		LegalName:       d.Business.LegalName,
		InvoiceName:     d.Business.InvoiceName,
		Financial: domain.FinancialProfile{
			AverageRevenue:        d.Financial.AverageRevenue,
			AverageTicket:         d.Financial.AverageTicket,
			CompanyURL:            d.Financial.CompanyURL,
			ProductsSold:          d.Financial.ProductsSold,
			SellsPhysicalProducts: d.Financial.SellsPhysicalProducts,
		},
		Representative: domain.Representative{
			Name:       d.Representative.Name,
			TaxID:      validation.Digits(d.Representative.TaxID),
			Email:      d.Representative.Email,
			Phone:      validation.Digits(d.Representative.Phone),
			BirthDate:  d.Representative.BirthDate,
			MotherName: d.Representative.MotherName,
		},
		Address: domain.Address{
			PostalCode:   validation.Digits(d.Address.PostalCode),
			Street:       d.Address.Street,
			Number:       d.Address.Number,
			Complement:   d.Address.Complement,
			Neighborhood: d.Address.Neighborhood,
			City:         d.Address.City,
			State:        d.Address.State,
		},
		Documents: domain.Documents{
			Front:    d.Documents.Front,
			Back:     d.Documents.Back,
			Selfie:   d.Documents.Selfie,
			Contract: d.Documents.Contract,
		},
		Status:    domain.StatusPending,
		CreatedAt: now,
	}
}

// Finish validates the whole draft, builds the application and hands it to
// submit. It is only reachable from the last step. On failure the draft is
// left untouched so the user can retry; on success it is discarded.
func (d *Draft) Finish(ctx context.Context, ownerID string, submit SubmitFunc) (*domain.CompanyApplication, error) {
	if step := d.CurrentStep(); step != LastStep {
		return nil, fmt.Errorf("wizard: finish from step %d: %w", step, domain.ErrInvalidTransition)
	}
	if err := d.Complete(); err != nil {
		return nil, err
	}

	app := d.Build(ownerID, time.Now().UTC())
	if err := submit(ctx, app); err != nil {
		return nil, fmt.Errorf("finish registration: %w", err)
	}

	d.Reset()
	return app, nil
}
