package wizard

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// Wizard steps, in order.
const (
	StepBusiness = iota + 1
	StepFinancial
	StepRepresentative
	StepAddress
	StepDocuments

	FirstStep = StepBusiness
	LastStep  = StepDocuments
)

// BusinessIdentity is step 1. Tax ID and legal name rules depend on the business type.
type BusinessIdentity struct {
	BusinessType domain.BusinessType `json:"business_type" validate:"required,oneof=individual corporate"`
	TaxID        string              `json:"tax_id" validate:"required"`
	LegalName    string              `json:"legal_name" validate:"required"`
	InvoiceName  string              `json:"invoice_name" validate:"required,invoice_name"`
}

// FinancialProfile is step 2. SellsPhysicalProducts carries no validation.
type FinancialProfile struct {
	AverageRevenue        string `json:"average_revenue" validate:"required"`
	AverageTicket         string `json:"average_ticket" validate:"required"`
	CompanyURL            string `json:"company_url" validate:"required,weburl"`
	ProductsSold          string `json:"products_sold" validate:"required"`
	SellsPhysicalProducts bool   `json:"sells_physical_products"`
}

// Representative is step 3.
type Representative struct {
	Name       string `json:"name" validate:"required"`
	TaxID      string `json:"tax_id" validate:"required,taxid_individual"`
	Email      string `json:"email" validate:"required,mailbox"`
	Phone      string `json:"phone" validate:"required,phone_br"`
	BirthDate  string `json:"birth_date" validate:"required"`
	MotherName string `json:"mother_name" validate:"required"`
}

// Address is step 4. Complement is optional.
type Address struct {
	PostalCode   string `json:"postal_code" validate:"required,cep"`
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
}

// Documents is step 5: names of the four uploaded artifacts.
type Documents struct {
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back" validate:"required"`
	Selfie   string `json:"selfie" validate:"required"`
	Contract string `json:"contract" validate:"required"`
}

var validate = newStepValidator()

func newStepValidator() *validator.Validate {
	v := validation.New()
	v.RegisterStructValidation(businessIdentityRules, BusinessIdentity{})
	return v
}

// businessIdentityRules applies the type-dependent rules of step 1.
func businessIdentityRules(sl validator.StructLevel) {
	b := sl.Current().Interface().(BusinessIdentity)

	if b.TaxID != "" && b.BusinessType != "" && !validation.ValidTaxID(b.BusinessType, b.TaxID) {
		tag := validation.TagCorporateTaxID
		if b.BusinessType == domain.BusinessIndividual {
			tag = validation.TagIndividualTaxID
		}
		sl.ReportError(b.TaxID, "tax_id", "TaxID", tag, "")
	}
	if b.BusinessType == domain.BusinessIndividual && strings.TrimSpace(b.LegalName) != "" && !validation.ValidFullName(b.LegalName) {
		sl.ReportError(b.LegalName, "legal_name", "LegalName", validation.TagFullName, "")
	}
}
