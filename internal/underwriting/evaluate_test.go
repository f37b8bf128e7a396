package underwriting

import (
	"errors"
	"strings"
	"testing"
)

func healthyApplication() Application {
	return Application{
		ApplicantName: "John Doe",
		MonthlyIncome: 5000,
		MonthlyDebts:  1500,
		CreditScore:   720,
		LoanAmount:    250000,
	}
}

func TestEvaluateApproves(t *testing.T) {
	decision, err := Evaluate(DefaultRules(), healthyApplication())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeApproved {
		t.Fatalf("expected approved, got %s", decision.Outcome)
	}
	if decision.DTIRatio != 30 {
		t.Fatalf("expected dti 30, got %v", decision.DTIRatio)
	}
	if decision.CreditScore != 720 {
		t.Fatalf("expected credit score echoed, got %d", decision.CreditScore)
	}
	if decision.Message != "Applicant approved based on healthy DTI and credit score." {
		t.Fatalf("unexpected message: %q", decision.Message)
	}
}

func TestEvaluateDeclinesLowCreditScore(t *testing.T) {
	app := healthyApplication()
	app.CreditScore = 550

	decision, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeDeclined {
		t.Fatalf("expected declined, got %s", decision.Outcome)
	}
	if decision.Message != "Credit score of 550 is below minimum requirement of 600." {
		t.Fatalf("unexpected message: %q", decision.Message)
	}
	if decision.DTIRatio != 30 {
		t.Fatalf("expected dti carried on decline, got %v", decision.DTIRatio)
	}
}

func TestEvaluateDeclinesHighDTI(t *testing.T) {
	app := healthyApplication()
	app.MonthlyDebts = 2500

	decision, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeDeclined {
		t.Fatalf("expected declined, got %s", decision.Outcome)
	}
	if decision.Message != "Debt-to-income ratio of 50% exceeds maximum of 45%." {
		t.Fatalf("unexpected message: %q", decision.Message)
	}
}

// The credit score rule wins when both decline conditions hold, so the
// message names the credit score.
func TestEvaluateCreditScoreRuleWins(t *testing.T) {
	app := healthyApplication()
	app.CreditScore = 550
	app.MonthlyDebts = 2500

	decision, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeDeclined {
		t.Fatalf("expected declined, got %s", decision.Outcome)
	}
	if !strings.Contains(decision.Message, "Credit score") {
		t.Fatalf("expected credit score message, got %q", decision.Message)
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	app := healthyApplication()
	app.CreditScore = 600

	decision, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeApproved {
		t.Fatalf("credit score 600 must not decline, got %s: %q", decision.Outcome, decision.Message)
	}

	app = healthyApplication()
	app.MonthlyIncome = 1000
	app.MonthlyDebts = 450

	decision, err = Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.DTIRatio != 45 {
		t.Fatalf("expected dti 45, got %v", decision.DTIRatio)
	}
	if decision.Outcome != OutcomeApproved {
		t.Fatalf("dti exactly 45 must not decline, got %s: %q", decision.Outcome, decision.Message)
	}
}

func TestEvaluatePropagatesIncomeError(t *testing.T) {
	app := healthyApplication()
	app.MonthlyIncome = 0

	if _, err := Evaluate(DefaultRules(), app); !errors.Is(err, ErrNonPositiveIncome) {
		t.Fatalf("expected ErrNonPositiveIncome, got %v", err)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	app := healthyApplication()

	first, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Evaluate(DefaultRules(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical decisions, got %+v and %+v", first, second)
	}
}

func TestEvaluateCustomRules(t *testing.T) {
	rules := Rules{MinCreditScore: 700, MaxDTIPercent: 36}

	app := healthyApplication()
	app.CreditScore = 680

	decision, err := Evaluate(rules, app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeDeclined {
		t.Fatalf("expected declined under stricter rules, got %s", decision.Outcome)
	}
	if decision.Message != "Credit score of 680 is below minimum requirement of 700." {
		t.Fatalf("unexpected message: %q", decision.Message)
	}
}
