package domain

import "strings"

// AccountStage is the derived lifecycle stage of an identity. It is never
// persisted; it is recomputed from the source records on every evaluation.
type AccountStage string

const (
	StageNoApplication AccountStage = "NO_APPLICATION"
	StagePendingReview AccountStage = "PENDING_REVIEW"
	StageUnderReview   AccountStage = "UNDER_REVIEW"
	StageRejected      AccountStage = "REJECTED"
	StageApproved      AccountStage = "APPROVED"
	StagePrivileged    AccountStage = "PRIVILEGED"
)

// StageResult carries the resolved stage plus the payload the rejected stage surfaces.
type StageResult struct {
	Stage           AccountStage
	ApplicationID   string
	RejectionReason string
}

// ResolveStage computes the stage of identity given its application (nil when
// none exists). First match wins: privileged email, missing application, then
// the application status.
func ResolveStage(identity Identity, app *CompanyApplication, privilegedEmail string) StageResult {
	if IsPrivileged(identity.Email, privilegedEmail) {
		return StageResult{Stage: StagePrivileged}
	}
	if app == nil {
		return StageResult{Stage: StageNoApplication}
	}

	res := StageResult{ApplicationID: app.ID}
	switch app.Status {
	case StatusApproved:
		res.Stage = StageApproved
	case StatusRejected:
		res.Stage = StageRejected
		res.RejectionReason = app.RejectionReason
	case StatusUnderReview:
		res.Stage = StageUnderReview
	default:
		res.Stage = StagePendingReview
	}
	return res
}

// IsPrivileged compares emails case-insensitively. An empty allowlist entry never matches.
func IsPrivileged(email, privilegedEmail string) bool {
	p := strings.TrimSpace(privilegedEmail)
	if p == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), p)
}
