// Package ledger persists evaluated loan applications. Stores assign the
// surrogate integer identity; callers supply everything else, including the
// submission timestamp (RFC3339, UTC).
package ledger

// ApplicationRecord is one stored application: the applicant's inputs plus
// the evaluated decision.
type ApplicationRecord struct {
	ID              int64
	ApplicantName   string
	MonthlyIncome   float64
	MonthlyDebts    float64
	CreditScore     int
	LoanAmount      float64
	DTIRatio        float64
	Decision        string
	DecisionMessage string
	CreatedAt       string
}

type Store interface {
	WithTx(fn func(Tx) error) error

	InsertApplication(rec ApplicationRecord) (int64, error)
	GetApplication(id int64) (ApplicationRecord, bool)
	ListApplications(limit, offset int) ([]ApplicationRecord, error)
}

type Tx interface {
	InsertApplication(rec ApplicationRecord) (int64, error)
	GetApplication(id int64) (ApplicationRecord, bool)
	ListApplications(limit, offset int) ([]ApplicationRecord, error)
}

// DefaultListLimit caps ListApplications when the caller passes limit <= 0.
const DefaultListLimit = 100
