package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrWeakPassword       = errors.New("password too weak")
	ErrSessionRevoked     = errors.New("session revoked")
)

// Company applications.
var (
	ErrApplicationNotFound = errors.New("company application not found")
	ErrApplicationExists   = errors.New("company application already exists")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrStaleApplication    = errors.New("company application was modified concurrently")
	ErrRejectionReason     = errors.New("rejection reason is required")
	ErrMissingDocuments    = errors.New("all four documents must be attached")
	ErrIncompleteDraft     = errors.New("registration draft is incomplete")
	ErrInvoiceNameTooLong  = errors.New("invoice name exceeds 12 characters")
	ErrUnknownBusinessType = errors.New("unknown business type")
	ErrSettingKeyRequired  = errors.New("setting key is required")
	ErrSettingNotFound     = errors.New("platform setting not found")
)

// Two-factor authentication.
var (
	ErrMFANotPending      = errors.New("no pending two-factor setup")
	ErrMFAAlreadyEnabled  = errors.New("two-factor authentication already enabled")
	ErrMFANotEnabled      = errors.New("two-factor authentication not enabled")
	ErrMFAInvalidCode     = errors.New("invalid verification code")
	ErrMFALocked          = errors.New("too many verification attempts")
	ErrMFAConfirmRequired = errors.New("disable requires explicit confirmation")
)
