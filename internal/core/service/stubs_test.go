package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubIdentityRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Identity
	byEmail map[string]*domain.Identity
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: map[string]*domain.Identity{}, byEmail: map[string]*domain.Identity{}}
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[identity.Email]; ok {
		return nil, domain.ErrIdentityExists
	}
	clone := *identity
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

type stubAppRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.CompanyApplication
	calls     int   // every method call, reads included
	createErr error // if set, Create returns this error
	countErr  map[domain.ApplicationStatus]error
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{byID: map[string]*domain.CompanyApplication{}, countErr: map[domain.ApplicationStatus]error{}}
}

func (r *stubAppRepo) seed(app *domain.CompanyApplication) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *app
	r.byID[app.ID] = &clone
}

func (r *stubAppRepo) stored(id string) *domain.CompanyApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *r.byID[id]
	return &clone
}

func (r *stubAppRepo) snapshot() map[string]*domain.CompanyApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.CompanyApplication, len(r.byID))
	for id, app := range r.byID {
		clone := *app
		out[id] = &clone
	}
	return out
}

func (r *stubAppRepo) restore(byID map[string]*domain.CompanyApplication) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = byID
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.CompanyApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.OwnerIdentityID == app.OwnerIdentityID {
			return domain.ErrApplicationExists
		}
	}
	clone := *app
	r.byID[app.ID] = &clone
	return nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.CompanyApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	app, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *stubAppRepo) FindByOwner(_ context.Context, ownerID string) (*domain.CompanyApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, app := range r.byID {
		if app.OwnerIdentityID == ownerID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

// List filters by status and paginates over creation order, like the Mongo repo.
func (r *stubAppRepo) List(_ context.Context, f ports.ListApplicationsFilter) ([]*domain.CompanyApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	var matched []*domain.CompanyApplication
	for _, app := range r.byID {
		if f.Status != "" && string(app.Status) != f.Status {
			continue
		}
		clone := *app
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.CompanyApplication{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubAppRepo) CountByStatus(_ context.Context, status domain.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err := r.countErr[status]; err != nil {
		return 0, err
	}
	var n int64
	for _, app := range r.byID {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubAppRepo) UpdateReview(_ context.Context, id string, expectedVersion int64, d domain.ReviewDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	app, ok := r.byID[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if app.Version != expectedVersion {
		return domain.ErrStaleApplication
	}
	app.Apply(d)
	return nil
}

type stubActivityRepo struct {
	mu        sync.Mutex
	entries   []*domain.ActivityLog
	insertErr error
	recentErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubActivityRepo) Recent(_ context.Context, limit int) ([]*domain.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recentErr != nil {
		return nil, r.recentErr
	}
	var out []*domain.ActivityLog
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		clone := *r.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubSettingsRepo struct {
	byKey map[string]*domain.PlatformSetting
}

func (r *stubSettingsRepo) Upsert(_ context.Context, s *domain.PlatformSetting) error {
	if r.byKey == nil {
		r.byKey = map[string]*domain.PlatformSetting{}
	}
	clone := *s
	r.byKey[s.Key] = &clone
	return nil
}

func (r *stubSettingsRepo) Get(_ context.Context, key string) (*domain.PlatformSetting, error) {
	s, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrSettingNotFound
	}
	clone := *s
	return &clone, nil
}

type stubMFARepo struct {
	mu       sync.Mutex
	byOwner  map[string]*domain.MfaSettings
	saves    int
	consumed []string
}

func newStubMFARepo() *stubMFARepo {
	return &stubMFARepo{byOwner: map[string]*domain.MfaSettings{}}
}

func (r *stubMFARepo) Get(_ context.Context, id string) (*domain.MfaSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byOwner[id]
	if !ok {
		return domain.DisabledMFA(id), nil
	}
	clone := *s
	clone.BackupCodeHashes = append([]string(nil), s.BackupCodeHashes...)
	return &clone, nil
}

func (r *stubMFARepo) Save(_ context.Context, s *domain.MfaSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	clone := *s
	clone.BackupCodeHashes = append([]string(nil), s.BackupCodeHashes...)
	r.byOwner[s.OwnerIdentityID] = &clone
	return nil
}

func (r *stubMFARepo) ConsumeBackupCode(_ context.Context, id, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byOwner[id]
	if !ok || !s.IsEnabled {
		return false, nil
	}
	for i, h := range s.BackupCodeHashes {
		if h == hash {
			s.BackupCodeHashes = append(s.BackupCodeHashes[:i:i], s.BackupCodeHashes[i+1:]...)
			r.consumed = append(r.consumed, hash)
			return true, nil
		}
	}
	return false, nil
}

// stubLimiter grants max attempts per key until Reset.
type stubLimiter struct {
	mu       sync.Mutex
	max      int
	attempts map[string]int
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, attempts: map[string]int{}}
}

func (l *stubLimiter) Acquire(_ context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[key]++
	if l.attempts[key] > l.max {
		return 0, domain.ErrMFALocked
	}
	return l.max - l.attempts[key], nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: map[string]time.Duration{}}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type stubPublisher struct {
	mu   sync.Mutex
	sent []domain.ChangeNotification
	err  error
}

func (p *stubPublisher) Publish(_ context.Context, n domain.ChangeNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

// stubTransactor rolls the application repo back when fn fails, the way a
// Mongo session transaction discards its writes.
type stubTransactor struct {
	apps *stubAppRepo
	runs int
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.runs++
	var saved map[string]*domain.CompanyApplication
	if t.apps != nil {
		saved = t.apps.snapshot()
	}
	if err := fn(ctx); err != nil {
		if t.apps != nil {
			t.apps.restore(saved)
		}
		return err
	}
	return nil
}

// recordingInvalidator keeps the notifications delivered to it.
type recordingInvalidator struct {
	mu   sync.Mutex
	seen []domain.ChangeNotification
}

func (r *recordingInvalidator) Invalidate(n domain.ChangeNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedApplication(repo *stubAppRepo, id, ownerID string, status domain.ApplicationStatus) *domain.CompanyApplication {
	app := &domain.CompanyApplication{
		ID:              id,
		OwnerIdentityID: ownerID,
		BusinessType:    domain.BusinessCorporate,
		TaxID:           "12345678000190",
		LegalName:       "Loja Exemplo LTDA",
		InvoiceName:     "LOJAEXEMPLO",
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}
	repo.seed(app)
	return app
}

func completeDraft() *wizard.Draft {
	d := wizard.NewDraft()
	d.Business = wizard.BusinessIdentity{
		BusinessType: domain.BusinessCorporate,
		TaxID:        "12.345.678/0001-90",
		LegalName:    "Loja Exemplo LTDA",
		InvoiceName:  "LOJAEXEMPLO",
	}
	d.Financial = wizard.FinancialProfile{
		AverageRevenue: "50000-100000",
		AverageTicket:  "50-100",
		CompanyURL:     "https://lojaexemplo.com.br",
		ProductsSold:   "Clothing",
	}
	d.Representative = wizard.Representative{
		Name:       "Carlos Souza",
		TaxID:      "987.654.321-00",
		Email:      "carlos@lojaexemplo.com.br",
		Phone:      "11912345678",
		BirthDate:  "1985-09-30",
		MotherName: "Helena Souza",
	}
	d.Address = wizard.Address{
		PostalCode:   "20040-002",
		Street:       "Rua da Assembleia",
		Number:       "10",
		Neighborhood: "Centro",
		City:         "Rio de Janeiro",
		State:        "RJ",
	}
	d.Documents = wizard.Documents{Front: "front.jpg", Back: "back.jpg", Selfie: "selfie.jpg", Contract: "contract.pdf"}
	d.Step = wizard.LastStep
	return d
}
