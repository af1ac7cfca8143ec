package balance

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDebitSufficientFunds(t *testing.T) {
	s := NewStore(dec("746.80"))

	remaining, err := s.Debit(dec("100"))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !remaining.Equal(dec("646.80")) {
		t.Fatalf("expected 646.80 remaining, got %s", remaining)
	}
	if !s.Read().Equal(dec("646.80")) {
		t.Fatalf("expected stored balance 646.80, got %s", s.Read())
	}
}

func TestDebitInsufficientFundsLeavesBalance(t *testing.T) {
	s := NewStore(dec("100"))

	_, err := s.Debit(dec("210"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("expected typed shortfall error, got %T", err)
	}
	if !ife.Shortfall.Equal(dec("110")) {
		t.Fatalf("expected shortfall 110, got %s", ife.Shortfall)
	}

	if !s.Read().Equal(dec("100")) {
		t.Fatalf("balance mutated on rejected debit: %s", s.Read())
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	s := NewStore(dec("50"))
	if _, err := s.Debit(decimal.Zero); err == nil {
		t.Fatal("expected error for zero debit")
	}
	if _, err := s.Debit(dec("-5")); err == nil {
		t.Fatal("expected error for negative debit")
	}
	if !s.Read().Equal(dec("50")) {
		t.Fatalf("balance mutated: %s", s.Read())
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	s := NewStore(dec("25.50"))

	ops := []struct {
		credit bool
		amount string
	}{
		{false, "10"},
		{true, "4.49"},
		{false, "100"},
		{false, "19.99"},
		{true, "0.01"},
		{false, "0.02"},
	}

	for _, op := range ops {
		if op.credit {
			s.Credit(dec(op.amount))
		} else {
			s.Debit(dec(op.amount))
		}
		if s.Read().IsNegative() {
			t.Fatalf("balance went negative: %s", s.Read())
		}
	}
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	s := NewStore(dec("1000"))

	const workers = 10
	amount := dec("600")

	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Debit(amount); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	var succeeded int
	for range successes {
		succeeded++
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one debit to succeed, got %d", succeeded)
	}
	if !s.Read().Equal(dec("400")) {
		t.Fatalf("expected final balance 400, got %s", s.Read())
	}
}

func TestFormatMasked(t *testing.T) {
	s := NewStore(dec("746.8"))

	if got := s.FormatMasked(true); got != "746.80" {
		t.Fatalf("expected 746.80, got %s", got)
	}
	if got := s.FormatMasked(false); got != "XXXX.XX" {
		t.Fatalf("expected mask, got %s", got)
	}
}
