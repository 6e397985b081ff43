package domain

import "time"

// MFAState is the per-identity two-factor setup state.
type MFAState string

const (
	MFADisabled      MFAState = "disabled"
	MFASetupPending  MFAState = "setup_pending"
	MFAVerifyPending MFAState = "verify_pending"
	MFAEnabled       MFAState = "enabled"
)

var mfaTransitions = map[MFAState][]MFAState{
	MFADisabled:      {MFASetupPending},
	MFASetupPending:  {MFASetupPending, MFAVerifyPending, MFADisabled},
	MFAVerifyPending: {MFAEnabled, MFADisabled},
	MFAEnabled:       {MFADisabled},
}

// CanTransitionTo reports whether the setup state machine allows moving to next.
func (s MFAState) CanTransitionTo(next MFAState) bool {
	for _, allowed := range mfaTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MfaSettings is the two-factor configuration of one identity. Secret is the
// base32 TOTP secret of the current enable cycle; only hashes of the backup
// codes are kept.
type MfaSettings struct {
	OwnerIdentityID  string    `json:"owner_identity_id"`
	State            MFAState  `json:"state"`
	IsEnabled        bool      `json:"is_enabled"`
	Secret           string    `json:"-"`
	BackupCodeHashes []string  `json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DisabledMFA is the settings value of an identity that never requested setup.
func DisabledMFA(identityID string) *MfaSettings {
	return &MfaSettings{OwnerIdentityID: identityID, State: MFADisabled}
}
