package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of transaction categories a checkout can carry.
// It drives which metadata fields apply and how the entry is titled.
type Kind string

const (
	KindTopUp        Kind = "topup"
	KindElectricity  Kind = "electricity"
	KindWater        Kind = "water"
	KindInternet     Kind = "internet"
	KindBankTransfer Kind = "bank-transfer"
	KindLoadMoney    Kind = "load-money"
	KindAirlines     Kind = "airlines"
	KindBus          Kind = "bus"
	KindTV           Kind = "tv"
	KindSchool       Kind = "school"
	KindSendMoney    Kind = "send-money"
)

// Status reflects settlement state. Synchronously confirmed checkouts are
// always written as completed; no async settlement is modeled.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Category is the coarse bucket used for history filtering, distinct from
// Kind.
type Category string

const (
	CategoryPayment  Category = "payment"
	CategoryTransfer Category = "transfer"
	CategoryTopUp    Category = "topup"
	CategoryBills    Category = "bills"

	// CategoryAll is the filter sentinel matching every entry.
	CategoryAll Category = "all"
)

// kindCategories is the one fixed Kind-to-Category mapping.
var kindCategories = map[Kind]Category{
	KindTopUp:        CategoryTopUp,
	KindElectricity:  CategoryBills,
	KindWater:        CategoryBills,
	KindInternet:     CategoryBills,
	KindTV:           CategoryBills,
	KindSchool:       CategoryBills,
	KindBankTransfer: CategoryTransfer,
	KindSendMoney:    CategoryTransfer,
	KindLoadMoney:    CategoryPayment,
	KindAirlines:     CategoryPayment,
	KindBus:          CategoryPayment,
}

// Valid reports whether k belongs to the closed kind set.
func (k Kind) Valid() bool {
	_, ok := kindCategories[k]
	return ok
}

// Category resolves the history bucket for the kind.
func (k Kind) Category() Category {
	return kindCategories[k]
}

// Entry is one immutable record in the payment history.
type Entry struct {
	ID              string          `json:"id"`
	Kind            Kind            `json:"kind"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	Amount          decimal.Decimal `json:"amount"`
	Status          Status          `json:"status"`
	OccurredAt      time.Time       `json:"occurred_at"`
	TransactionCode string          `json:"transaction_code"`
	Counterparty    string          `json:"counterparty,omitempty"`
	Provider        string          `json:"provider,omitempty"`
	Category        Category        `json:"category"`
}

// EntryInput carries everything needed to append an entry except the id,
// which the store assigns.
type EntryInput struct {
	Kind            Kind
	Title           string
	Subtitle        string
	Amount          decimal.Decimal
	Status          Status
	OccurredAt      time.Time
	TransactionCode string
	Counterparty    string
	Provider        string
	Category        Category
}

// PersistenceError reports a failed durable write. The in-memory state is
// authoritative for the session, so the mutation it wraps has already
// taken effect; callers log and may retry via Flush.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger: persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GroupByDate buckets entries by calendar date (UTC) for display. Order
// within a bucket follows the input order.
func GroupByDate(entries []Entry) map[string][]Entry {
	groups := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		day := e.OccurredAt.UTC().Format("2006-01-02")
		groups[day] = append(groups[day], e)
	}
	return groups
}
