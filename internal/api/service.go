package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prequalify/prequal/internal/cache"
	"github.com/prequalify/prequal/internal/ledger"
	"github.com/prequalify/prequal/internal/underwriting"
	"github.com/prequalify/prequal/internal/validate"
	"github.com/prequalify/prequal/pkg/types"
)

// ErrNotFound is returned when a requested application id does not exist.
var ErrNotFound = errors.New("application not found")

// ApplicationService validates, evaluates, and optionally persists loan
// applications. The evaluation itself is pure; persistence and caching live
// here so handlers stay thin.
type ApplicationService struct {
	Rules    underwriting.Rules
	Store    ledger.Store
	Cache    cache.Cache
	CacheTTL time.Duration

	now func() time.Time
}

func NewApplicationService(rules underwriting.Rules, store ledger.Store) *ApplicationService {
	return &ApplicationService{
		Rules: rules,
		Store: store,
		now:   time.Now,
	}
}

func (s *ApplicationService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Simulate evaluates a request without persisting anything. When a cache is
// configured, identical requests are served from it; the evaluation is
// deterministic, so a cached response is byte-for-byte the fresh one.
func (s *ApplicationService) Simulate(ctx context.Context, req types.ApplicationRequest) (types.DecisionResponse, error) {
	req.ApplicantName = validate.NormalizeName(req.ApplicantName)
	if err := validate.Struct(req); err != nil {
		return types.DecisionResponse{}, err
	}

	var key string
	if s.Cache != nil {
		key = simulateKey(req)
		if raw, ok := s.Cache.Get(ctx, key); ok {
			var cached types.DecisionResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	decision, err := underwriting.Evaluate(s.Rules, toApplication(req))
	if err != nil {
		return types.DecisionResponse{}, err
	}
	resp := toDecisionResponse(decision)

	if s.Cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = s.Cache.Set(ctx, key, string(raw), s.CacheTTL)
		}
	}

	return resp, nil
}

// Create evaluates the request and stores the result. The store assigns the
// id; the submission timestamp is taken once here so the stored record and
// the response carry the same value.
func (s *ApplicationService) Create(ctx context.Context, req types.ApplicationRequest) (types.CreatedResponse, error) {
	req.ApplicantName = validate.NormalizeName(req.ApplicantName)
	if err := validate.Struct(req); err != nil {
		return types.CreatedResponse{}, err
	}

	decision, err := underwriting.Evaluate(s.Rules, toApplication(req))
	if err != nil {
		return types.CreatedResponse{}, err
	}

	createdAt := s.clock().UTC().Format(time.RFC3339)
	rec := ledger.ApplicationRecord{
		ApplicantName:   req.ApplicantName,
		MonthlyIncome:   req.MonthlyIncome,
		MonthlyDebts:    req.MonthlyDebts,
		CreditScore:     req.CreditScore,
		LoanAmount:      req.LoanAmount,
		DTIRatio:        decision.DTIRatio,
		Decision:        string(decision.Outcome),
		DecisionMessage: decision.Message,
		CreatedAt:       createdAt,
	}

	id, err := s.Store.InsertApplication(rec)
	if err != nil {
		return types.CreatedResponse{}, fmt.Errorf("store application: %w", err)
	}

	return types.CreatedResponse{
		ID:        id,
		Decision:  string(decision.Outcome),
		Message:   decision.Message,
		DTIRatio:  decision.DTIRatio,
		CreatedAt: createdAt,
	}, nil
}

func (s *ApplicationService) Get(ctx context.Context, id int64) (types.StoredApplication, error) {
	rec, ok := s.Store.GetApplication(id)
	if !ok {
		return types.StoredApplication{}, ErrNotFound
	}
	return toStoredApplication(rec), nil
}

func (s *ApplicationService) List(ctx context.Context, limit, offset int) ([]types.StoredApplication, error) {
	recs, err := s.Store.ListApplications(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]types.StoredApplication, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toStoredApplication(rec))
	}
	return out, nil
}

func simulateKey(req types.ApplicationRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return "prequal:simulate:" + hex.EncodeToString(sum[:])
}

func toApplication(req types.ApplicationRequest) underwriting.Application {
	return underwriting.Application{
		ApplicantName: req.ApplicantName,
		MonthlyIncome: req.MonthlyIncome,
		MonthlyDebts:  req.MonthlyDebts,
		CreditScore:   req.CreditScore,
		LoanAmount:    req.LoanAmount,
	}
}

func toDecisionResponse(d underwriting.Decision) types.DecisionResponse {
	return types.DecisionResponse{
		Decision:    string(d.Outcome),
		Message:     d.Message,
		DTIRatio:    d.DTIRatio,
		CreditScore: d.CreditScore,
	}
}

func toStoredApplication(rec ledger.ApplicationRecord) types.StoredApplication {
	return types.StoredApplication{
		ID:              rec.ID,
		ApplicantName:   rec.ApplicantName,
		MonthlyIncome:   rec.MonthlyIncome,
		MonthlyDebts:    rec.MonthlyDebts,
		CreditScore:     rec.CreditScore,
		LoanAmount:      rec.LoanAmount,
		DTIRatio:        rec.DTIRatio,
		Decision:        rec.Decision,
		DecisionMessage: rec.DecisionMessage,
		CreatedAt:       rec.CreatedAt,
	}
}
