package underwriting

import (
	"errors"
	"testing"
)

func TestCalculateDTI(t *testing.T) {
	cases := []struct {
		name   string
		debts  float64
		income float64
		want   float64
	}{
		{"typical", 1500, 5000, 30},
		{"half", 2500, 5000, 50},
		{"no debts", 0, 3000, 0},
		{"repeating decimal rounds", 1000, 3000, 33.33},
		{"repeating decimal rounds up", 2000, 3000, 66.67},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateDTI(tc.debts, tc.income)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// Rounding is pinned to half-to-even: the midpoint goes to the nearest even
// hundredth, not always up.
func TestCalculateDTIRoundsHalfToEven(t *testing.T) {
	got, err := CalculateDTI(300.25, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30.02 {
		t.Fatalf("expected 30.025 to round to 30.02, got %v", got)
	}

	got, err = CalculateDTI(300.35, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30.04 {
		t.Fatalf("expected 30.035 to round to 30.04, got %v", got)
	}
}

func TestCalculateDTINonPositiveIncome(t *testing.T) {
	for _, income := range []float64{0, -1, -5000} {
		if _, err := CalculateDTI(1500, income); !errors.Is(err, ErrNonPositiveIncome) {
			t.Fatalf("income %v: expected ErrNonPositiveIncome, got %v", income, err)
		}
	}
}
