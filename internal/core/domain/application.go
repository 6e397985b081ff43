package domain

import "time"

// ApplicationStatus represents the review state of a company application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

// BusinessType distinguishes individual merchants from registered companies.
type BusinessType string

const (
	BusinessIndividual BusinessType = "individual"
	BusinessCorporate  BusinessType = "corporate"
)

// validTransitions defines the review state machine. Approved and rejected are terminal.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reviewable reports whether an admin may still act on an application in this status.
func (s ApplicationStatus) Reviewable() bool {
	return s == StatusPending || s == StatusUnderReview
}

// FinancialProfile captures the merchant's expected volume and business line.
type FinancialProfile struct {
	AverageRevenue        string `json:"average_revenue" bson:"average_revenue"`
	AverageTicket         string `json:"average_ticket" bson:"average_ticket"`
	CompanyURL            string `json:"company_url" bson:"company_url"`
	ProductsSold          string `json:"products_sold" bson:"products_sold"`
	SellsPhysicalProducts bool   `json:"sells_physical_products" bson:"sells_physical_products"`
}

// Representative is the legal representative of the business.
type Representative struct {
	Name       string `json:"name" bson:"name"`
	TaxID      string `json:"tax_id" bson:"tax_id"`
	Email      string `json:"email" bson:"email"`
	Phone      string `json:"phone" bson:"phone"`
	BirthDate  string `json:"birth_date" bson:"birth_date"`
	MotherName string `json:"mother_name" bson:"mother_name"`
}

// Address is the business's registered address.
type Address struct {
	PostalCode   string `json:"postal_code" bson:"postal_code"`
	Street       string `json:"street" bson:"street"`
	Number       string `json:"number" bson:"number"`
	Complement   string `json:"complement,omitempty" bson:"complement,omitempty"`
	Neighborhood string `json:"neighborhood" bson:"neighborhood"`
	City         string `json:"city" bson:"city"`
	State        string `json:"state" bson:"state"`
}

// Documents references the uploaded KYC artifacts by name.
type Documents struct {
	Front    string `json:"front" bson:"front"`
	Back     string `json:"back" bson:"back"`
	Selfie   string `json:"selfie" bson:"selfie"`
	Contract string `json:"contract" bson:"contract"`
}

// Complete reports whether all four documents are attached.
func (d Documents) Complete() bool {
	return d.Front != "" && d.Back != "" && d.Selfie != "" && d.Contract != ""
}

// CompanyApplication is the merchant's registration record and the aggregate
// root the review workflow acts on.
type CompanyApplication struct {
	ID              string            `json:"id" bson:"_id"`
	OwnerIdentityID string            `json:"owner_identity_id" bson:"owner_identity_id"`
	BusinessType    BusinessType      `json:"business_type" bson:"business_type"`
	TaxID           string            `json:"tax_id" bson:"tax_id"`
	LegalName       string            `json:"legal_name" bson:"legal_name"`
	InvoiceName     string            `json:"invoice_name" bson:"invoice_name"`
	Financial       FinancialProfile  `json:"financial" bson:"financial"`
	Representative  Representative    `json:"representative" bson:"representative"`
	Address         Address           `json:"address" bson:"address"`
	Documents       Documents         `json:"documents" bson:"documents"`
	Status          ApplicationStatus `json:"status" bson:"status"`
	ApprovedBy      string            `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	// Version increments on every review mutation; updates are conditional on it.
	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ReviewDecision is the set of fields an admin action writes to an application.
type ReviewDecision struct {
	Status          ApplicationStatus
	ApprovedBy      string
	ApprovedAt      *time.Time
	ReviewedAt      *time.Time
	RejectionReason string
}

// Apply copies the decision onto the application and bumps its version.
func (a *CompanyApplication) Apply(d ReviewDecision) {
	a.Status = d.Status
	a.ApprovedBy = d.ApprovedBy
	a.ApprovedAt = d.ApprovedAt
	a.ReviewedAt = d.ReviewedAt
	a.RejectionReason = d.RejectionReason
	a.Version++
}
