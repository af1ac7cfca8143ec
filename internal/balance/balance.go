package balance

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds occurs when a debit would drive the balance
// negative. The balance is left untouched in that case.
var ErrInsufficientFunds = errors.New("insufficient funds")

// maskedPlaceholder is what FormatMasked shows when the balance is hidden.
const maskedPlaceholder = "XXXX.XX"

// InsufficientFundsError carries the exact shortfall so callers can tell
// the user how much is missing.
type InsufficientFundsError struct {
	Balance   decimal.Decimal
	Required  decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s, required %s, short %s",
		e.Balance.StringFixed(2), e.Required.StringFixed(2), e.Shortfall.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// Store is the single source of truth for the wallet's spendable amount.
// The amount never goes negative: debits that would overdraw are rejected
// without mutation.
type Store struct {
	mu     sync.RWMutex
	amount decimal.Decimal
}

// NewStore seeds a balance store. The seed must be non-negative; it is
// validated where it enters the system (config).
func NewStore(seed decimal.Decimal) *Store {
	return &Store{amount: seed}
}

// Credit unconditionally increases the balance and returns the new amount.
// Callers validate that amount is positive before crediting.
func (s *Store) Credit(amount decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = s.amount.Add(amount)
	return s.amount
}

// Debit decreases the balance by amount if funds suffice, returning the
// new balance. The sufficiency check and the decrement happen under one
// lock so overlapping debits cannot both pass against a stale balance.
func (s *Store) Debit(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("debit amount must be positive, got %s", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.amount.LessThan(amount) {
		return s.amount, &InsufficientFundsError{
			Balance:   s.amount,
			Required:  amount,
			Shortfall: amount.Sub(s.amount),
		}
	}

	s.amount = s.amount.Sub(amount)
	return s.amount, nil
}

// Read returns the current balance.
func (s *Store) Read() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.amount
}

// FormatMasked renders the balance to two decimals when reveal is true,
// or the fixed placeholder when hidden.
func (s *Store) FormatMasked(reveal bool) string {
	if !reveal {
		return maskedPlaceholder
	}
	return s.Read().StringFixed(2)
}
