package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prequalify/prequal/internal/cache"
	"github.com/prequalify/prequal/internal/ledger"
	"github.com/prequalify/prequal/internal/underwriting"
	"github.com/prequalify/prequal/internal/validate"
	"github.com/prequalify/prequal/pkg/types"
)

func validRequest() types.ApplicationRequest {
	return types.ApplicationRequest{
		ApplicantName: "Alice Smith",
		MonthlyIncome: 5000,
		MonthlyDebts:  1500,
		CreditScore:   720,
		LoanAmount:    250000,
	}
}

func TestSimulateDoesNotPersist(t *testing.T) {
	store := ledger.NewInMemoryStore()
	svc := NewApplicationService(underwriting.DefaultRules(), store)

	if _, err := svc.Simulate(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs, err := store.ListApplications(0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("simulate must not persist, found %d records", len(recs))
	}
}

func TestSimulateUsesCache(t *testing.T) {
	mc := cache.NewMemoryCache()
	svc := NewApplicationService(underwriting.DefaultRules(), ledger.NewInMemoryStore())
	svc.Cache = mc
	svc.CacheTTL = time.Minute

	first, err := svc.Simulate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", mc.Len())
	}

	second, err := svc.Simulate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("cached response differs: %+v vs %+v", first, second)
	}
	if mc.Len() != 1 {
		t.Fatalf("expected cache entry to be reused, got %d entries", mc.Len())
	}
}

func TestSimulateCacheKeyVariesByRequest(t *testing.T) {
	mc := cache.NewMemoryCache()
	svc := NewApplicationService(underwriting.DefaultRules(), ledger.NewInMemoryStore())
	svc.Cache = mc
	svc.CacheTTL = time.Minute

	if _, err := svc.Simulate(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := validRequest()
	other.CreditScore = 580
	if _, err := svc.Simulate(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Len() != 2 {
		t.Fatalf("expected distinct cache entries, got %d", mc.Len())
	}
}

func TestCreateStampsTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	store := ledger.NewInMemoryStore()
	svc := NewApplicationService(underwriting.DefaultRules(), store)
	svc.now = func() time.Time { return fixed }

	resp, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2026-03-14T09:26:53Z"
	if resp.CreatedAt != want {
		t.Fatalf("expected %q, got %q", want, resp.CreatedAt)
	}

	rec, ok := store.GetApplication(resp.ID)
	if !ok {
		t.Fatal("record not stored")
	}
	if rec.CreatedAt != want {
		t.Fatalf("stored timestamp %q differs from response %q", rec.CreatedAt, want)
	}
}

func TestCreateNormalizesApplicantName(t *testing.T) {
	store := ledger.NewInMemoryStore()
	svc := NewApplicationService(underwriting.DefaultRules(), store)

	req := validRequest()
	req.ApplicantName = "  José Garcia  "
	resp, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := store.GetApplication(resp.ID)
	if !ok {
		t.Fatal("record not stored")
	}
	if rec.ApplicantName != "José Garcia" {
		t.Fatalf("expected normalized name, got %q", rec.ApplicantName)
	}
}

func TestCreateValidationError(t *testing.T) {
	svc := NewApplicationService(underwriting.DefaultRules(), ledger.NewInMemoryStore())

	req := validRequest()
	req.CreditScore = 200
	_, err := svc.Create(context.Background(), req)

	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validate.Error, got %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := NewApplicationService(underwriting.DefaultRules(), ledger.NewInMemoryStore())

	_, err := svc.Get(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
