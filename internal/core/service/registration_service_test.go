package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

func TestRegistrationService_WizardToPendingReview(t *testing.T) {
	apps := newStubAppRepo()
	activity := &stubActivityRepo{}
	pub := &stubPublisher{}
	stages := NewStageService(apps, "", discardLogger)
	reg := NewRegistrationService(apps, activity, &stubTransactor{apps: apps}, pub, discardLogger, stages)
	router := NewSessionRouter(stages, discardLogger)
	principal := &domain.Principal{IdentityID: "owner-1", Email: "carlos@lojaexemplo.com.br", Role: domain.RoleMerchant, Scope: domain.ScopeSession}

	before, err := router.Route(context.Background(), principal)
	if err != nil {
		t.Fatalf("route before submit: %v", err)
	}
	if before.Kind != domain.SurfaceRegistrationWizard {
		t.Fatalf("expected wizard before submit, got %s", before.Kind)
	}

	draft := completeDraft()
	app, err := reg.Submit(context.Background(), "owner-1", draft)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != domain.StatusPending {
		t.Errorf("new application must be pending, got %q", app.Status)
	}
	if app.TaxID != "12345678000190" {
		t.Errorf("tax id must be stored as digits, got %q", app.TaxID)
	}
	if draft.CurrentStep() != wizard.FirstStep || draft.Business.TaxID != "" {
		t.Error("draft must be discarded after a successful submit")
	}

	if len(pub.sent) != 1 || pub.sent[0].OwnerIdentityID != "owner-1" {
		t.Fatalf("expected one notification for owner-1, got %+v", pub.sent)
	}

	// No dispatcher runs here; the cached wizard surface must already be gone.
	after, err := router.Route(context.Background(), principal)
	if err != nil {
		t.Fatalf("route after submit: %v", err)
	}
	if after.Kind != domain.SurfacePendingApproval || after.Stage != domain.StagePendingReview {
		t.Errorf("expected pending approval surface, got %+v", after)
	}
	if acts := activity.actions(); len(acts) != 1 || acts[0] != domain.ActionSubmitCompany {
		t.Errorf("expected one submit_company entry, got %v", acts)
	}
}

func TestRegistrationService_SecondSubmitConflicts(t *testing.T) {
	apps := newStubAppRepo()
	seedApplication(apps, "app-1", "owner-1", domain.StatusPending)
	reg := NewRegistrationService(apps, &stubActivityRepo{}, &stubTransactor{apps: apps}, &stubPublisher{}, discardLogger)

	draft := completeDraft()
	_, err := reg.Submit(context.Background(), "owner-1", draft)
	if !errors.Is(err, domain.ErrApplicationExists) {
		t.Fatalf("expected ErrApplicationExists, got %v", err)
	}
	if draft.Business.TaxID == "" {
		t.Error("draft must be preserved when submit is refused")
	}
}

func TestRegistrationService_StoreFailurePreservesDraft(t *testing.T) {
	apps := newStubAppRepo()
	apps.createErr = errors.New("write concern timeout")
	activity := &stubActivityRepo{}
	reg := NewRegistrationService(apps, activity, &stubTransactor{apps: apps}, &stubPublisher{}, discardLogger)

	draft := completeDraft()
	if _, err := reg.Submit(context.Background(), "owner-1", draft); err == nil {
		t.Fatal("expected error when the store fails")
	}
	if draft.CurrentStep() != wizard.LastStep {
		t.Errorf("cursor must stay on the last step, got %d", draft.CurrentStep())
	}
	if draft.Documents.Contract == "" {
		t.Error("draft values must be preserved")
	}
	if len(activity.entries) != 0 {
		t.Error("failed submit must not be audited")
	}
}

func TestRegistrationService_MissingDocumentsCreatesNothing(t *testing.T) {
	apps := newStubAppRepo()
	reg := NewRegistrationService(apps, &stubActivityRepo{}, &stubTransactor{apps: apps}, &stubPublisher{}, discardLogger)

	draft := completeDraft()
	draft.Documents.Selfie = ""
	_, err := reg.Submit(context.Background(), "owner-1", draft)
	if !errors.Is(err, domain.ErrMissingDocuments) {
		t.Fatalf("expected ErrMissingDocuments, got %v", err)
	}
	if len(apps.byID) != 0 {
		t.Errorf("no application may be created, got %d", len(apps.byID))
	}
}

func TestRegistrationService_PublishFailureStillRoutesToPending(t *testing.T) {
	apps := newStubAppRepo()
	stages := NewStageService(apps, "", discardLogger)
	pub := &stubPublisher{err: errors.New("redis: connection refused")}
	reg := NewRegistrationService(apps, &stubActivityRepo{}, &stubTransactor{apps: apps}, pub, discardLogger, stages)
	router := NewSessionRouter(stages, discardLogger)
	principal := &domain.Principal{IdentityID: "owner-1", Role: domain.RoleMerchant, Scope: domain.ScopeSession}

	if _, err := router.Route(context.Background(), principal); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := reg.Submit(context.Background(), "owner-1", completeDraft()); err != nil {
		t.Fatalf("submit must succeed when only the broadcast fails: %v", err)
	}

	got, err := router.Route(context.Background(), principal)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if got.Kind != domain.SurfacePendingApproval {
		t.Errorf("expected pending approval, got %s", got.Kind)
	}
}

func TestRegistrationService_AuditFailureRollsBackSubmit(t *testing.T) {
	apps := newStubAppRepo()
	insertErr := errors.New("write concern timeout")
	activity := &stubActivityRepo{insertErr: insertErr}
	pub := &stubPublisher{}
	local := &recordingInvalidator{}
	reg := NewRegistrationService(apps, activity, &stubTransactor{apps: apps}, pub, discardLogger, local)

	draft := completeDraft()
	_, err := reg.Submit(context.Background(), "owner-1", draft)
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected the audit failure, got %v", err)
	}
	if len(apps.byID) != 0 {
		t.Errorf("application must not outlive its failed audit entry, got %d", len(apps.byID))
	}
	if draft.CurrentStep() != wizard.LastStep || draft.Business.TaxID == "" {
		t.Error("draft must be preserved for a retry")
	}
	if len(pub.sent) != 0 || len(local.seen) != 0 {
		t.Errorf("nothing may be announced, got %v / %v", pub.sent, local.seen)
	}

	activity.insertErr = nil
	if _, err := reg.Submit(context.Background(), "owner-1", draft); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(apps.byID) != 1 {
		t.Errorf("expected one application after retry, got %d", len(apps.byID))
	}
}
