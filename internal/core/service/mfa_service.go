package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/metrics"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

const (
	totpPeriod = 30
	totpSkew   = 1

	defaultBackupCodeCount = 10
	backupCodeLength       = 10
	backupCodeAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// MFAConfig holds the tunables of the two-factor protocol.
type MFAConfig struct {
	Issuer          string
	BackupCodeCount int
}

// MFAService implements the setup state machine
// disabled → setup_pending → verify_pending → enabled and the login-time check.
type MFAService struct {
	repo    ports.MFARepository
	limiter ports.AttemptLimiter
	cfg     MFAConfig
	now     func() time.Time
	log     zerolog.Logger
}

func NewMFAService(repo ports.MFARepository, limiter ports.AttemptLimiter, cfg MFAConfig, log zerolog.Logger) *MFAService {
	if cfg.Issuer == "" {
		cfg.Issuer = "GatePay"
	}
	if cfg.BackupCodeCount <= 0 {
		cfg.BackupCodeCount = defaultBackupCodeCount
	}
	return &MFAService{repo: repo, limiter: limiter, cfg: cfg, now: time.Now, log: log}
}

func (s *MFAService) Status(ctx context.Context, identityID string) (*ports.MFAStatus, error) {
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("mfa status: %w", err)
	}
	return statusOf(settings), nil
}

// Enable issues a fresh secret and backup codes. A repeated request while
// setup is pending replaces the previous secret.
func (s *MFAService) Enable(ctx context.Context, identity *domain.Identity) (*ports.MFAEnrollment, error) {
	settings, err := s.repo.Get(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("mfa enable: %w", err)
	}
	if settings.IsEnabled || settings.State == domain.MFAEnabled {
		return nil, domain.ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.Issuer,
		AccountName: identity.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("mfa enable: generate secret: %w", err)
	}
	codes, hashes, err := generateBackupCodes(s.cfg.BackupCodeCount)
	if err != nil {
		return nil, fmt.Errorf("mfa enable: backup codes: %w", err)
	}

	settings.State = domain.MFASetupPending
	settings.IsEnabled = false
	settings.Secret = key.Secret()
	settings.BackupCodeHashes = hashes
	settings.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("mfa enable: %w", err)
	}

	s.log.Info().Str("identity_id", identity.ID).Msg("two-factor setup requested")
	return &ports.MFAEnrollment{Secret: key.Secret(), QRCodeURL: key.URL(), BackupCodes: codes}, nil
}

// VerifySetup checks a code against the pending secret and, on success, turns
// two-factor on. Without a pending setup it is refused before any write.
func (s *MFAService) VerifySetup(ctx context.Context, identityID, code string) (*ports.MFAStatus, error) {
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("mfa verify: %w", err)
	}
	if settings.State != domain.MFASetupPending || settings.Secret == "" {
		return nil, domain.ErrMFANotPending
	}

	if err := s.checkCode(ctx, "setup", identityID, func() (bool, error) {
		return s.validTOTP(settings.Secret, code), nil
	}); err != nil {
		return nil, err
	}

	settings.IsEnabled = true
	if err := s.transition(ctx, settings, domain.MFAVerifyPending, domain.MFAEnabled); err != nil {
		return nil, err
	}
	s.log.Info().Str("identity_id", identityID).Msg("two-factor enabled")
	return statusOf(settings), nil
}

// Confirm acknowledges the backup codes. Setup already ends enabled, so this
// only finishes records left in verify_pending and is a no-op once enabled.
func (s *MFAService) Confirm(ctx context.Context, identityID string) (*ports.MFAStatus, error) {
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("mfa confirm: %w", err)
	}
	switch settings.State {
	case domain.MFAEnabled:
		return statusOf(settings), nil
	case domain.MFAVerifyPending:
	default:
		return nil, domain.ErrMFANotPending
	}

	settings.IsEnabled = true
	if err := s.transition(ctx, settings, domain.MFAEnabled); err != nil {
		return nil, err
	}
	s.log.Info().Str("identity_id", identityID).Msg("two-factor enabled")
	return statusOf(settings), nil
}

// Cancel abandons a pending setup and discards its secret.
func (s *MFAService) Cancel(ctx context.Context, identityID string) (*ports.MFAStatus, error) {
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("mfa cancel: %w", err)
	}
	if settings.State != domain.MFASetupPending && settings.State != domain.MFAVerifyPending {
		return nil, domain.ErrMFANotPending
	}

	wipe(settings)
	if err := s.transition(ctx, settings, domain.MFADisabled); err != nil {
		return nil, err
	}
	return statusOf(settings), nil
}

// Disable turns two-factor off. The caller must pass explicit confirmation.
func (s *MFAService) Disable(ctx context.Context, identityID string, confirmed bool) error {
	if !confirmed {
		return domain.ErrMFAConfirmRequired
	}
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return fmt.Errorf("mfa disable: %w", err)
	}
	if settings.State != domain.MFAEnabled {
		return domain.ErrMFANotEnabled
	}

	wipe(settings)
	if err := s.transition(ctx, settings, domain.MFADisabled); err != nil {
		return err
	}
	s.log.Info().Str("identity_id", identityID).Msg("two-factor disabled")
	return nil
}

// VerifyLogin accepts a 6-digit code for the enabled secret or one unused
// backup code, which is consumed.
func (s *MFAService) VerifyLogin(ctx context.Context, identityID, code string) error {
	settings, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return fmt.Errorf("mfa login: %w", err)
	}
	if !settings.IsEnabled || settings.Secret == "" {
		return domain.ErrMFANotEnabled
	}

	return s.checkCode(ctx, "login", identityID, func() (bool, error) {
		if isSixDigits(strings.TrimSpace(code)) {
			return s.validTOTP(settings.Secret, code), nil
		}
		ok, err := s.repo.ConsumeBackupCode(ctx, identityID, hashBackupCode(code))
		if err != nil {
			return false, fmt.Errorf("mfa login: backup code: %w", err)
		}
		if ok {
			s.log.Info().Str("identity_id", identityID).Msg("backup code consumed")
		}
		return ok, nil
	})
}

// checkCode takes an attempt from the limiter before verifying, so parallel
// guesses cannot exceed the limit. The attempt that uses up the last one
// reports the lockout; a success clears the count.
func (s *MFAService) checkCode(ctx context.Context, flow, identityID string, verify func() (bool, error)) error {
	key := "mfa:" + identityID
	remaining, err := s.limiter.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrMFALocked) {
			metrics.MFAVerificationsTotal.WithLabelValues(flow, "locked").Inc()
		}
		return err
	}

	ok, err := verify()
	if err != nil {
		return err
	}
	if !ok {
		metrics.MFAVerificationsTotal.WithLabelValues(flow, "failure").Inc()
		if remaining == 0 {
			return domain.ErrMFALocked
		}
		return domain.ErrMFAInvalidCode
	}

	metrics.MFAVerificationsTotal.WithLabelValues(flow, "success").Inc()
	if err := s.limiter.Reset(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("identity_id", identityID).Msg("failed to reset verification attempts")
	}
	return nil
}

func (s *MFAService) validTOTP(secret, code string) bool {
	code = strings.TrimSpace(code)
	if !isSixDigits(code) {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, s.now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// transition walks settings through path and saves once at the end.
func (s *MFAService) transition(ctx context.Context, settings *domain.MfaSettings, path ...domain.MFAState) error {
	state := settings.State
	for _, next := range path {
		if !state.CanTransitionTo(next) {
			return fmt.Errorf("mfa %s -> %s: %w", state, next, domain.ErrInvalidTransition)
		}
		state = next
	}
	settings.State = state
	settings.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("mfa save: %w", err)
	}
	return nil
}

func statusOf(settings *domain.MfaSettings) *ports.MFAStatus {
	return &ports.MFAStatus{IsEnabled: settings.IsEnabled, State: settings.State}
}

func wipe(settings *domain.MfaSettings) {
	settings.IsEnabled = false
	settings.Secret = ""
	settings.BackupCodeHashes = nil
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// generateBackupCodes returns n display codes (XXXXX-XXXXX) and their hashes.
func generateBackupCodes(n int) ([]string, []string, error) {
	codes := make([]string, 0, n)
	hashes := make([]string, 0, n)
	max := big.NewInt(int64(len(backupCodeAlphabet)))

	for i := 0; i < n; i++ {
		var b strings.Builder
		for j := 0; j < backupCodeLength; j++ {
			if j == backupCodeLength/2 {
				b.WriteByte('-')
			}
			idx, err := rand.Int(rand.Reader, max)
			if err != nil {
				return nil, nil, err
			}
			b.WriteByte(backupCodeAlphabet[idx.Int64()])
		}
		code := b.String()
		codes = append(codes, code)
		hashes = append(hashes, hashBackupCode(code))
	}
	return codes, hashes, nil
}

// hashBackupCode ignores case, dashes and spaces so codes can be typed loosely.
func hashBackupCode(code string) string {
	normalized := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(code))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
