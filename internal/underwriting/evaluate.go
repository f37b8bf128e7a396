package underwriting

import (
	"fmt"
	"strconv"
)

// Outcome is the tag of a pre-approval decision.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeDeclined Outcome = "declined"
)

// Application holds a range-validated pre-approval request. Contract
// validation happens upstream; Evaluate only re-checks the income because a
// zero income would make the DTI ratio undefined.
type Application struct {
	ApplicantName string
	MonthlyIncome float64
	MonthlyDebts  float64
	CreditScore   int
	LoanAmount    float64
}

// Decision is the result of evaluating one application. DTIRatio and
// CreditScore are populated for declined applicants too.
type Decision struct {
	Outcome     Outcome
	Message     string
	DTIRatio    float64
	CreditScore int
}

// Evaluate applies the decline rules in order (credit score first, then DTI)
// and approves when neither matches. The only error path is a non-positive
// income, which propagates from CalculateDTI untouched.
func Evaluate(rules Rules, app Application) (Decision, error) {
	dti, err := CalculateDTI(app.MonthlyDebts, app.MonthlyIncome)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{DTIRatio: dti, CreditScore: app.CreditScore}

	switch {
	case app.CreditScore < rules.MinCreditScore:
		decision.Outcome = OutcomeDeclined
		decision.Message = fmt.Sprintf("Credit score of %d is below minimum requirement of %d.",
			app.CreditScore, rules.MinCreditScore)
	case dti > rules.MaxDTIPercent:
		decision.Outcome = OutcomeDeclined
		decision.Message = fmt.Sprintf("Debt-to-income ratio of %s%% exceeds maximum of %s%%.",
			formatPercent(dti), formatPercent(rules.MaxDTIPercent))
	default:
		decision.Outcome = OutcomeApproved
		decision.Message = "Applicant approved based on healthy DTI and credit score."
	}

	return decision, nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
