package sqlstore

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/prequalify/prequal/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) WithTx(fn func(ledger.Tx) error) error {
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{})
	if err != nil {
		return err
	}
	wrapped := &Tx{tx: tx}
	if err := fn(wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) InsertApplication(rec ledger.ApplicationRecord) (int64, error) {
	var id int64
	err := s.WithTx(func(tx ledger.Tx) error {
		var err error
		id, err = tx.InsertApplication(rec)
		return err
	})
	return id, err
}

func (s *Store) GetApplication(id int64) (ledger.ApplicationRecord, bool) {
	var rec ledger.ApplicationRecord
	row := s.db.QueryRow(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at
FROM applications WHERE id = ?`, id)
	if err := row.Scan(&rec.ID, &rec.ApplicantName, &rec.MonthlyIncome, &rec.MonthlyDebts, &rec.CreditScore, &rec.LoanAmount, &rec.DTIRatio, &rec.Decision, &rec.DecisionMessage, &rec.CreatedAt); err != nil {
		return ledger.ApplicationRecord{}, false
	}
	return rec, true
}

func (s *Store) ListApplications(limit, offset int) ([]ledger.ApplicationRecord, error) {
	if limit <= 0 {
		limit = ledger.DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.Query(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at
FROM applications
ORDER BY id ASC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.ApplicationRecord{}
	for rows.Next() {
		var rec ledger.ApplicationRecord
		if err := rows.Scan(&rec.ID, &rec.ApplicantName, &rec.MonthlyIncome, &rec.MonthlyDebts, &rec.CreditScore, &rec.LoanAmount, &rec.DTIRatio, &rec.Decision, &rec.DecisionMessage, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type Tx struct {
	tx *sql.Tx
}

func (t *Tx) InsertApplication(rec ledger.ApplicationRecord) (int64, error) {
	res, err := t.tx.Exec(
		`INSERT INTO applications(applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at)
VALUES(?,?,?,?,?,?,?,?,?)`,
		rec.ApplicantName,
		rec.MonthlyIncome,
		rec.MonthlyDebts,
		rec.CreditScore,
		rec.LoanAmount,
		rec.DTIRatio,
		rec.Decision,
		rec.DecisionMessage,
		rec.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *Tx) GetApplication(id int64) (ledger.ApplicationRecord, bool) {
	var rec ledger.ApplicationRecord
	row := t.tx.QueryRow(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at
FROM applications WHERE id = ?`, id)
	if err := row.Scan(&rec.ID, &rec.ApplicantName, &rec.MonthlyIncome, &rec.MonthlyDebts, &rec.CreditScore, &rec.LoanAmount, &rec.DTIRatio, &rec.Decision, &rec.DecisionMessage, &rec.CreatedAt); err != nil {
		return ledger.ApplicationRecord{}, false
	}
	return rec, true
}

func (t *Tx) ListApplications(limit, offset int) ([]ledger.ApplicationRecord, error) {
	if limit <= 0 {
		limit = ledger.DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := t.tx.Query(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at
FROM applications
ORDER BY id ASC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.ApplicationRecord{}
	for rows.Next() {
		var rec ledger.ApplicationRecord
		if err := rows.Scan(&rec.ID, &rec.ApplicantName, &rec.MonthlyIncome, &rec.MonthlyDebts, &rec.CreditScore, &rec.LoanAmount, &rec.DTIRatio, &rec.Decision, &rec.DecisionMessage, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
