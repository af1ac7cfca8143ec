package checkout

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisa-pay/paisa_pay/internal/balance"
	"github.com/paisa-pay/paisa_pay/internal/ledger"
	"github.com/paisa-pay/paisa_pay/internal/notification"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const codeLength = 8

// Result is returned to the confirmation screen's collaborator once a
// checkout completes.
type Result struct {
	TransactionCode string          `json:"transaction_code"`
	Entry           ledger.Entry    `json:"entry"`
	NewBalance      decimal.Decimal `json:"new_balance"`
}

// Coordinator orchestrates one checkout attempt end to end: validate the
// request, move the balance, record the ledger entry and issue a display
// code. Submits are serialized by a single mutex so overlapping attempts
// cannot both pass the sufficiency check against a stale balance.
type Coordinator struct {
	mu       sync.Mutex
	balance  *balance.Store
	ledger   *ledger.Store
	notifier notification.Notifier
	logger   *slog.Logger
	delay    time.Duration
	issued   map[string]struct{}
}

// NewCoordinator wires a coordinator. delay is the simulated settlement
// latency applied between the balance mutation and the ledger write; pass
// zero to run synchronously (tests do).
func NewCoordinator(bal *balance.Store, led *ledger.Store, notifier notification.Notifier, logger *slog.Logger, delay time.Duration) *Coordinator {
	return &Coordinator{
		balance:  bal,
		ledger:   led,
		notifier: notifier,
		logger:   logger,
		delay:    delay,
		issued:   make(map[string]struct{}),
	}
}

// Submit processes a checkout attempt. Validation and insufficient-funds
// failures leave no trace; once the balance has moved, a failed durable
// write still returns the Result together with the *ledger.PersistenceError
// so callers can log and retry the write without telling the user the
// money did not move.
func (c *Coordinator) Submit(ctx context.Context, req Request) (Result, error) {
	sp, err := validate(req)
	if err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var newBalance decimal.Decimal
	if req.Kind == ledger.KindLoadMoney {
		// Loading money credits the principal; the service charge is
		// shown to the user but never deducted.
		newBalance = c.balance.Credit(req.Amount)
	} else {
		total := req.Amount.Add(req.ServiceCharge)
		newBalance, err = c.balance.Debit(total)
		if err != nil {
			return Result{}, err
		}
	}

	// Simulated settlement latency. Not interruptible: the money has
	// already moved.
	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	code := c.nextCodeLocked()
	entry, appendErr := c.ledger.Append(ctx, ledger.EntryInput{
		Kind:            req.Kind,
		Title:           sp.title(req.Metadata),
		Subtitle:        sp.subtitle,
		Amount:          req.Amount,
		Status:          ledger.StatusCompleted,
		OccurredAt:      time.Now().UTC(),
		TransactionCode: code,
		Counterparty:    req.Metadata.field(sp.party),
		Provider:        req.Metadata.field(sp.provider),
		Category:        req.Kind.Category(),
	})

	result := Result{TransactionCode: code, Entry: entry, NewBalance: newBalance}

	c.notify(ctx, req, entry)

	if appendErr != nil {
		c.logger.Warn("ledger write failed after balance mutation",
			"kind", req.Kind, "transaction_code", code, "error", appendErr)
		return result, appendErr
	}

	c.logger.Info("checkout completed",
		"kind", req.Kind, "transaction_code", code, "amount", req.Amount.StringFixed(2))
	return result, nil
}

func (c *Coordinator) notify(ctx context.Context, req Request, entry ledger.Entry) {
	if c.notifier == nil {
		return
	}
	kind := notification.KindPaymentCompleted
	if req.Kind == ledger.KindLoadMoney {
		kind = notification.KindMoneyLoaded
	}
	_ = c.notifier.Send(ctx, notification.Message{
		Kind:        kind,
		Destination: entry.Counterparty,
		Body:        entry.Title + " Rs. " + req.Amount.StringFixed(2),
	})
}

// nextCodeLocked issues a human-facing display code, re-rolled until it
// has not been handed out this session. The entry id remains the only
// durable uniqueness guarantee.
func (c *Coordinator) nextCodeLocked() string {
	for {
		var b strings.Builder
		for i := 0; i < codeLength; i++ {
			b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
		}
		code := b.String()
		if _, taken := c.issued[code]; !taken {
			c.issued[code] = struct{}{}
			return code
		}
	}
}
