// Package types holds the wire contracts shared by the API, the CLI, and the
// storage mappers.
package types

// ApplicationRequest is the wire form of a pre-approval request. The validate
// tags carry the contract ranges; string lengths count runes after the
// applicant name has been normalized.
type ApplicationRequest struct {
	ApplicantName string  `json:"applicant_name" validate:"required,min=2,max=100"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gt=0"`
	MonthlyDebts  float64 `json:"monthly_debts" validate:"gte=0"`
	CreditScore   int     `json:"credit_score" validate:"gte=300,lte=850"`
	LoanAmount    float64 `json:"loan_amount" validate:"gt=0"`
}

// DecisionResponse is the outcome of a simulation: the decision tag, a
// human-readable explanation, and the inputs the decision was based on.
type DecisionResponse struct {
	Decision    string  `json:"decision"`
	Message     string  `json:"message"`
	DTIRatio    float64 `json:"dti_ratio"`
	CreditScore int     `json:"credit_score"`
}

// CreatedResponse acknowledges a stored application.
type CreatedResponse struct {
	ID        int64   `json:"id"`
	Decision  string  `json:"decision"`
	Message   string  `json:"message"`
	DTIRatio  float64 `json:"dti_ratio"`
	CreatedAt string  `json:"created_at"`
}

// StoredApplication is the wire form of a persisted application record.
// ID and CreatedAt are assigned by the storage layer.
type StoredApplication struct {
	ID              int64   `json:"id"`
	ApplicantName   string  `json:"applicant_name"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyDebts    float64 `json:"monthly_debts"`
	CreditScore     int     `json:"credit_score"`
	LoanAmount      float64 `json:"loan_amount"`
	DTIRatio        float64 `json:"dti_ratio"`
	Decision        string  `json:"decision"`
	DecisionMessage string  `json:"decision_message"`
	CreatedAt       string  `json:"created_at"`
}
