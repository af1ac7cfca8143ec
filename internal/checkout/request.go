package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paisa-pay/paisa_pay/internal/ledger"
)

// Metadata carries the per-kind request fields. Which ones are required
// and how they shape the receipt is decided by the kind table below, not
// by callers branching on kind.
type Metadata struct {
	PhoneNumber    string `json:"phone_number,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	AccountName    string `json:"account_name,omitempty"`
	Bank           string `json:"bank,omitempty"`
	CustomerNumber string `json:"customer_number,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Method         string `json:"method,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
}

// Request is one validated-on-submit checkout attempt. Amount is the
// principal; ServiceCharge is added to the debit for every kind except
// load-money, where it is informational only.
type Request struct {
	Kind          ledger.Kind     `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Metadata      Metadata        `json:"metadata"`
}

// ValidationError rejects a request before any processing; no state is
// mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout request: %s %s", e.Field, e.Reason)
}

type metaField string

const (
	fieldNone           metaField = ""
	fieldPhoneNumber    metaField = "phone_number"
	fieldAccountNumber  metaField = "account_number"
	fieldAccountName    metaField = "account_name"
	fieldBank           metaField = "bank"
	fieldCustomerNumber metaField = "customer_number"
	fieldCustomerName   metaField = "customer_name"
	fieldProvider       metaField = "provider"
	fieldMethod         metaField = "method"
)

func (m Metadata) field(f metaField) string {
	switch f {
	case fieldPhoneNumber:
		return m.PhoneNumber
	case fieldAccountNumber:
		return m.AccountNumber
	case fieldAccountName:
		return m.AccountName
	case fieldBank:
		return m.Bank
	case fieldCustomerNumber:
		return m.CustomerNumber
	case fieldCustomerName:
		return m.CustomerName
	case fieldProvider:
		return m.Provider
	case fieldMethod:
		return m.Method
	default:
		return ""
	}
}

// kindSpec describes how one kind is validated and rendered on the
// receipt. titleField names the metadata field the title derives from;
// titleFormat, when set, wraps that value.
type kindSpec struct {
	defaultTitle string
	titleFormat  string
	titleField   metaField
	subtitle     string
	required     []metaField
	party        metaField
	provider     metaField
}

func (sp kindSpec) title(m Metadata) string {
	v := m.field(sp.titleField)
	if v == "" {
		return sp.defaultTitle
	}
	if sp.titleFormat != "" {
		return fmt.Sprintf(sp.titleFormat, v)
	}
	return v
}

// kindSpecs is the single exhaustive mapping from kind to receipt shape.
var kindSpecs = map[ledger.Kind]kindSpec{
	ledger.KindTopUp: {
		defaultTitle: "Mobile Topup",
		titleFormat:  "%s Recharge",
		titleField:   fieldProvider,
		subtitle:     "Mobile Top-up",
		required:     []metaField{fieldPhoneNumber},
		provider:     fieldProvider,
	},
	ledger.KindElectricity: {
		defaultTitle: "Electricity Bill Payment",
		titleField:   fieldProvider,
		subtitle:     "Electricity Bill",
		required:     []metaField{fieldCustomerNumber},
		provider:     fieldProvider,
	},
	ledger.KindWater: {
		defaultTitle: "Water Bill Payment",
		titleField:   fieldProvider,
		subtitle:     "Water Bill Payment",
		required:     []metaField{fieldCustomerNumber},
		provider:     fieldProvider,
	},
	ledger.KindInternet: {
		defaultTitle: "Internet Bill Payment",
		titleField:   fieldProvider,
		subtitle:     "Internet Bill",
		required:     []metaField{fieldCustomerNumber},
		provider:     fieldProvider,
	},
	ledger.KindBankTransfer: {
		defaultTitle: "Bank Transfer",
		titleField:   fieldAccountName,
		subtitle:     "Bank Transfer",
		required:     []metaField{fieldAccountNumber, fieldBank},
		party:        fieldAccountName,
		provider:     fieldBank,
	},
	ledger.KindLoadMoney: {
		defaultTitle: "Money Loaded",
		subtitle:     "Load Money",
		required:     []metaField{fieldMethod},
		provider:     fieldMethod,
	},
	ledger.KindAirlines: {
		defaultTitle: "Flight Booking",
		titleField:   fieldProvider,
		subtitle:     "Airline Ticket",
		required:     []metaField{fieldCustomerName},
		party:        fieldCustomerName,
		provider:     fieldProvider,
	},
	ledger.KindBus: {
		defaultTitle: "Bus Ticket",
		titleField:   fieldProvider,
		subtitle:     "Bus Booking",
		required:     []metaField{fieldCustomerName},
		party:        fieldCustomerName,
		provider:     fieldProvider,
	},
	ledger.KindTV: {
		defaultTitle: "TV Subscription",
		titleField:   fieldProvider,
		subtitle:     "TV Bill",
		required:     []metaField{fieldCustomerNumber},
		provider:     fieldProvider,
	},
	ledger.KindSchool: {
		defaultTitle: "School Fee Payment",
		titleField:   fieldProvider,
		subtitle:     "Fee Payment",
		required:     []metaField{fieldCustomerNumber},
		provider:     fieldProvider,
	},
	ledger.KindSendMoney: {
		defaultTitle: "Money Sent",
		titleField:   fieldCustomerName,
		subtitle:     "Send Money",
		required:     []metaField{fieldPhoneNumber},
		party:        fieldCustomerName,
	},
}

// validate checks the request against the kind table and returns the
// matched row.
func validate(req Request) (kindSpec, error) {
	sp, ok := kindSpecs[req.Kind]
	if !ok {
		return kindSpec{}, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", req.Kind)}
	}
	if req.Amount.Sign() <= 0 {
		return kindSpec{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if req.ServiceCharge.Sign() < 0 {
		return kindSpec{}, &ValidationError{Field: "service_charge", Reason: "must not be negative"}
	}
	for _, f := range sp.required {
		if req.Metadata.field(f) == "" {
			return kindSpec{}, &ValidationError{Field: string(f), Reason: "is required"}
		}
	}
	return sp, nil
}
