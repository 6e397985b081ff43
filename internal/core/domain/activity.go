package domain

import "time"

// Audit actions written by the review workflow and the registration wizard.
const (
	ActionSubmitCompany  = "submit_company"
	ActionReviewCompany  = "review_company"
	ActionApproveCompany = "approve_company"
	ActionRejectCompany  = "reject_company"
	ActionUpdateSetting  = "update_setting"
)

// Resource types referenced by activity log entries.
const (
	ResourceCompanyApplication = "company_application"
	ResourcePlatformSetting    = "platform_setting"
)

// ActivityLog is one append-only audit entry.
type ActivityLog struct {
	ID           string            `json:"id" bson:"_id"`
	Action       string            `json:"action" bson:"action"`
	ResourceType string            `json:"resource_type" bson:"resource_type"`
	ResourceID   string            `json:"resource_id" bson:"resource_id"`
	ActorID      string            `json:"actor_id" bson:"actor_id"`
	Details      map[string]string `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
}

// PlatformSetting is an admin-managed key/value entry.
type PlatformSetting struct {
	Key       string    `json:"key" bson:"_id"`
	Value     string    `json:"value" bson:"value"`
	UpdatedBy string    `json:"updated_by" bson:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Collections that emit change notifications.
const (
	CollectionApplications = "company_applications"
	CollectionActivityLogs = "activity_logs"
)

// ChangeNotification says that something in Collection changed. OwnerIdentityID
// is set when the change concerns a single identity's records.
type ChangeNotification struct {
	Collection      string `json:"collection"`
	OwnerIdentityID string `json:"owner_identity_id,omitempty"`
}
