package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seedEntries builds the demo history written on first run so the app
// does not start with an empty statement screen.
func seedEntries() []Entry {
	day := func(d string, hour, min int) time.Time {
		t, _ := time.Parse("2006-01-02", d)
		return t.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute).UTC()
	}

	return []Entry{
		{
			ID:              uuid.NewString(),
			Kind:            KindTopUp,
			Title:           "Ncell Recharge",
			Subtitle:        "Mobile Top-up",
			Amount:          decimal.NewFromInt(100),
			Status:          StatusCompleted,
			OccurredAt:      day("2024-01-20", 14, 30),
			TransactionCode: "TXN123456789",
			Provider:        "Ncell",
			Category:        CategoryTopUp,
		},
		{
			ID:              uuid.NewString(),
			Kind:            KindElectricity,
			Title:           "Nepal Electricity Authority",
			Subtitle:        "Electricity Bill",
			Amount:          decimal.NewFromInt(850),
			Status:          StatusCompleted,
			OccurredAt:      day("2024-01-20", 13, 15),
			TransactionCode: "TXN123456788",
			Provider:        "NEA",
			Category:        CategoryBills,
		},
		{
			ID:              uuid.NewString(),
			Kind:            KindBankTransfer,
			Title:           "Ram Sharma",
			Subtitle:        "Bank Transfer",
			Amount:          decimal.NewFromInt(5000),
			Status:          StatusCompleted,
			OccurredAt:      day("2024-01-19", 20, 45),
			TransactionCode: "TXN123456787",
			Counterparty:    "Ram Sharma",
			Category:        CategoryTransfer,
		},
		{
			ID:              uuid.NewString(),
			Kind:            KindWater,
			Title:           "KUKL Water Bill",
			Subtitle:        "Water Bill Payment",
			Amount:          decimal.NewFromInt(450),
			Status:          StatusCompleted,
			OccurredAt:      day("2024-01-19", 15, 20),
			TransactionCode: "TXN123456786",
			Provider:        "KUKL",
			Category:        CategoryBills,
		},
		{
			ID:              uuid.NewString(),
			Kind:            KindLoadMoney,
			Title:           "Money Loaded",
			Subtitle:        "Bank Transfer",
			Amount:          decimal.NewFromInt(2000),
			Status:          StatusCompleted,
			OccurredAt:      day("2024-01-18", 18, 15),
			TransactionCode: "TXN123456785",
			Provider:        "Bank Transfer",
			Category:        CategoryPayment,
		},
	}
}
