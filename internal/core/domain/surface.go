package domain

// SurfaceKind tags the single screen the session router presents.
type SurfaceKind string

const (
	SurfaceSignIn             SurfaceKind = "sign_in"
	SurfaceMFAChallenge       SurfaceKind = "mfa_challenge"
	SurfaceRegistrationWizard SurfaceKind = "registration_wizard"
	SurfacePendingApproval    SurfaceKind = "pending_approval"
	SurfaceRejectionNotice    SurfaceKind = "rejection_notice"
	SurfaceDashboard          SurfaceKind = "dashboard"
	SurfaceAdminConsole       SurfaceKind = "admin_console"
)

// Surface is the router's output: exactly one kind plus the payload that kind needs.
type Surface struct {
	Kind            SurfaceKind  `json:"kind"`
	Stage           AccountStage `json:"stage,omitempty"`
	ApplicationID   string       `json:"application_id,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
}

// SurfaceForStage maps a resolved stage onto the surface it selects.
func SurfaceForStage(res StageResult) Surface {
	s := Surface{Stage: res.Stage, ApplicationID: res.ApplicationID}
	switch res.Stage {
	case StageNoApplication:
		s.Kind = SurfaceRegistrationWizard
	case StagePendingReview, StageUnderReview:
		s.Kind = SurfacePendingApproval
	case StageRejected:
		s.Kind = SurfaceRejectionNotice
		s.RejectionReason = res.RejectionReason
	default:
		s.Kind = SurfaceDashboard
	}
	return s
}
