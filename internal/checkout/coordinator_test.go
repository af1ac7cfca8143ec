package checkout

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisa-pay/paisa_pay/internal/balance"
	"github.com/paisa-pay/paisa_pay/internal/ledger"
	"github.com/paisa-pay/paisa_pay/internal/logging"
	"github.com/paisa-pay/paisa_pay/internal/notification"
	"github.com/paisa-pay/paisa_pay/internal/storage"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newCoordinator(t *testing.T, seed string) (*Coordinator, *balance.Store, *ledger.Store) {
	t.Helper()
	bal := balance.NewStore(dec(seed))
	led := ledger.NewStore(storage.NewMemory())
	if err := led.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize ledger: %v", err)
	}
	coord := NewCoordinator(bal, led, nil, logging.Discard(), 0)
	return coord, bal, led
}

func TestSubmitTopUpDebitsAndRecords(t *testing.T) {
	coord, bal, led := newCoordinator(t, "746.80")
	before := led.Len()

	res, err := coord.Submit(context.Background(), Request{
		Kind:   ledger.KindTopUp,
		Amount: dec("100"),
		Metadata: Metadata{
			PhoneNumber: "9824897066",
			Provider:    "Ncell",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !bal.Read().Equal(dec("646.80")) {
		t.Fatalf("expected balance 646.80, got %s", bal.Read())
	}
	if !res.NewBalance.Equal(dec("646.80")) {
		t.Fatalf("result balance mismatch: %s", res.NewBalance)
	}
	if led.Len() != before+1 {
		t.Fatalf("expected one new ledger entry, have %d", led.Len()-before)
	}

	entry := led.Recent(1)[0]
	if !entry.Amount.Equal(dec("100")) {
		t.Fatalf("entry amount %s, want 100", entry.Amount)
	}
	if entry.Category != ledger.CategoryTopUp {
		t.Fatalf("entry category %s, want topup", entry.Category)
	}
	if entry.Status != ledger.StatusCompleted {
		t.Fatalf("entry status %s, want completed", entry.Status)
	}
	if entry.Title != "Ncell Recharge" {
		t.Fatalf("entry title %q", entry.Title)
	}
	if entry.TransactionCode != res.TransactionCode {
		t.Fatal("entry and result disagree on transaction code")
	}
}

func TestSubmitInsufficientFunds(t *testing.T) {
	coord, bal, led := newCoordinator(t, "100")
	before := led.Len()

	_, err := coord.Submit(context.Background(), Request{
		Kind:          ledger.KindElectricity,
		Amount:        dec("200"),
		ServiceCharge: dec("10"),
		Metadata:      Metadata{CustomerNumber: "123456", Provider: "NEA"},
	})

	var ife *balance.InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	if !ife.Shortfall.Equal(dec("110")) {
		t.Fatalf("expected shortfall 110, got %s", ife.Shortfall)
	}
	if !bal.Read().Equal(dec("100")) {
		t.Fatalf("balance mutated on rejected checkout: %s", bal.Read())
	}
	if led.Len() != before {
		t.Fatal("ledger entry written for rejected checkout")
	}
}

func TestSubmitLoadMoneyCreditsPrincipalOnly(t *testing.T) {
	coord, bal, led := newCoordinator(t, "500")

	res, err := coord.Submit(context.Background(), Request{
		Kind:          ledger.KindLoadMoney,
		Amount:        dec("1000"),
		ServiceCharge: dec("25"),
		Metadata:      Metadata{Method: "bank"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !bal.Read().Equal(dec("1500")) {
		t.Fatalf("expected balance 1500, got %s", bal.Read())
	}
	entry := led.Recent(1)[0]
	if entry.Category != ledger.CategoryPayment {
		t.Fatalf("load-money category %s, want payment", entry.Category)
	}
	if !entry.Amount.Equal(dec("1000")) {
		t.Fatalf("entry amount %s, want 1000", entry.Amount)
	}
	if !res.NewBalance.Equal(dec("1500")) {
		t.Fatalf("result balance %s, want 1500", res.NewBalance)
	}
}

func TestSubmitValidation(t *testing.T) {
	coord, bal, led := newCoordinator(t, "500")
	before := led.Len()

	cases := []struct {
		name string
		req  Request
	}{
		{"unknown kind", Request{Kind: "lottery", Amount: dec("10")}},
		{"zero amount", Request{Kind: ledger.KindTopUp, Amount: decimal.Zero, Metadata: Metadata{PhoneNumber: "98"}}},
		{"negative amount", Request{Kind: ledger.KindTopUp, Amount: dec("-5"), Metadata: Metadata{PhoneNumber: "98"}}},
		{"negative charge", Request{Kind: ledger.KindTopUp, Amount: dec("5"), ServiceCharge: dec("-1"), Metadata: Metadata{PhoneNumber: "98"}}},
		{"missing phone", Request{Kind: ledger.KindTopUp, Amount: dec("5")}},
		{"missing bank", Request{Kind: ledger.KindBankTransfer, Amount: dec("5"), Metadata: Metadata{AccountNumber: "0123"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := coord.Submit(context.Background(), tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if !bal.Read().Equal(dec("500")) {
		t.Fatalf("balance mutated by rejected requests: %s", bal.Read())
	}
	if led.Len() != before {
		t.Fatal("ledger mutated by rejected requests")
	}
}

func TestConcurrentSubmitsSerializeDebit(t *testing.T) {
	coord, bal, _ := newCoordinator(t, "1000")

	req := Request{
		Kind:     ledger.KindSendMoney,
		Amount:   dec("600"),
		Metadata: Metadata{PhoneNumber: "9800000001", CustomerName: "Sita Rai"},
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := coord.Submit(context.Background(), req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, balance.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if ok != 1 || insufficient != 1 {
		t.Fatalf("expected one success and one rejection, got %d/%d", ok, insufficient)
	}
	if !bal.Read().Equal(dec("400")) {
		t.Fatalf("expected final balance 400, got %s", bal.Read())
	}
}

func TestTransactionCodeFormatAndUniqueness(t *testing.T) {
	coord, _, _ := newCoordinator(t, "100000")
	pattern := regexp.MustCompile(`^[0-9A-Z]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		res, err := coord.Submit(context.Background(), Request{
			Kind:     ledger.KindTopUp,
			Amount:   dec("1"),
			Metadata: Metadata{PhoneNumber: "9800000000", Provider: "NTC"},
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !pattern.MatchString(res.TransactionCode) {
			t.Fatalf("bad transaction code %q", res.TransactionCode)
		}
		if seen[res.TransactionCode] {
			t.Fatalf("duplicate transaction code %q", res.TransactionCode)
		}
		seen[res.TransactionCode] = true
	}
}

type failingStorage struct {
	*storage.Memory
	fail bool
}

func (f *failingStorage) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Put(ctx, key, value, ttl)
}

func TestSubmitKeepsBalanceOnPersistenceFailure(t *testing.T) {
	kv := &failingStorage{Memory: storage.NewMemory()}
	bal := balance.NewStore(dec("500"))
	led := ledger.NewStore(kv)
	ctx := context.Background()
	if err := led.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	coord := NewCoordinator(bal, led, nil, logging.Discard(), 0)

	kv.fail = true
	res, err := coord.Submit(ctx, Request{
		Kind:     ledger.KindTopUp,
		Amount:   dec("100"),
		Metadata: Metadata{PhoneNumber: "9800000000", Provider: "Ncell"},
	})

	var perr *ledger.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	// The money moved; the result must still describe the completed
	// checkout.
	if !bal.Read().Equal(dec("400")) {
		t.Fatalf("expected balance 400, got %s", bal.Read())
	}
	if res.TransactionCode == "" || res.Entry.ID == "" {
		t.Fatal("result missing despite committed balance mutation")
	}
	if led.Recent(1)[0].ID != res.Entry.ID {
		t.Fatal("entry missing from in-memory ledger")
	}

	kv.fail = false
	if err := led.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (r *recordingNotifier) Send(_ context.Context, m notification.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

func TestSubmitEmitsReceiptNotification(t *testing.T) {
	notifier := &recordingNotifier{}
	bal := balance.NewStore(dec("500"))
	led := ledger.NewStore(storage.NewMemory())
	ctx := context.Background()
	if err := led.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	coord := NewCoordinator(bal, led, notifier, logging.Discard(), 0)

	if _, err := coord.Submit(ctx, Request{
		Kind:     ledger.KindLoadMoney,
		Amount:   dec("50"),
		Metadata: Metadata{Method: "bank"},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.messages))
	}
	if notifier.messages[0].Kind != notification.KindMoneyLoaded {
		t.Fatalf("expected money_loaded notification, got %s", notifier.messages[0].Kind)
	}
}
