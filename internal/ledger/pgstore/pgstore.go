package pgstore

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/prequalify/prequal/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
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

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

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
	row := s.db.QueryRow(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at::text
FROM prequal_applications WHERE id = $1`, id)
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
	rows, err := s.db.Query(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at::text
FROM prequal_applications
ORDER BY id ASC
LIMIT $1 OFFSET $2`, limit, offset)
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
	var id int64
	err := t.tx.QueryRow(
		`INSERT INTO prequal_applications(applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id`,
		rec.ApplicantName,
		rec.MonthlyIncome,
		rec.MonthlyDebts,
		rec.CreditScore,
		rec.LoanAmount,
		rec.DTIRatio,
		rec.Decision,
		rec.DecisionMessage,
		rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (t *Tx) GetApplication(id int64) (ledger.ApplicationRecord, bool) {
	var rec ledger.ApplicationRecord
	row := t.tx.QueryRow(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at::text
FROM prequal_applications WHERE id = $1`, id)
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
	rows, err := t.tx.Query(`SELECT id, applicant_name, monthly_income, monthly_debts, credit_score, loan_amount, dti_ratio, decision, decision_message, created_at::text
FROM prequal_applications
ORDER BY id ASC
LIMIT $1 OFFSET $2`, limit, offset)
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
