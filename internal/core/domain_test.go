package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2024, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl "); got != "AAPL" {
		t.Fatalf("expected AAPL, got %q", got)
	}
}

func TestAssetValidate(t *testing.T) {
	good := Asset{
		Ticker:       "AAPL",
		PurchaseDate: NewDate(2024, 1, 1),
		Shares:       Quantity{Units: 100000},
		CostBasis:    Money{Cents: 150000},
		Class:        Equities,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Asset{
		{Ticker: "", PurchaseDate: NewDate(2024, 1, 1), Shares: Quantity{Units: 1}, CostBasis: Money{Cents: 1}, Class: Equities},
		{Ticker: "AAPL", PurchaseDate: Date{}, Shares: Quantity{Units: 1}, CostBasis: Money{Cents: 1}, Class: Equities},
		{Ticker: "AAPL", PurchaseDate: NewDate(2024, 1, 1), Shares: Quantity{Units: 0}, CostBasis: Money{Cents: 1}, Class: Equities},
		{Ticker: "AAPL", PurchaseDate: NewDate(2024, 1, 1), Shares: Quantity{Units: 1}, CostBasis: Money{Cents: 0}, Class: Equities},
		{Ticker: "AAPL", PurchaseDate: NewDate(2024, 1, 1), Shares: Quantity{Units: 1}, CostBasis: Money{Cents: 1}, Class: "Commodities"},
		{Ticker: "VERYLONGTICKER", PurchaseDate: NewDate(2024, 1, 1), Shares: Quantity{Units: 1}, CostBasis: Money{Cents: 1}, Class: Equities},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Ticker: "AAPL", Type: Buy, Amount: Money{Cents: 100}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// A sell recorded as a negative amount is accepted; the sign is not
	// interpreted.
	neg := Transaction{Ticker: "AAPL", Type: Sell, Amount: Money{Cents: -100}}
	if err := neg.Validate(); err != nil {
		t.Fatalf("expected ok for negative amount, got %v", err)
	}

	bads := []Transaction{
		{Ticker: "", Type: Buy, Amount: Money{Cents: 1}},
		{Ticker: "AAPL", Type: "Transfer", Amount: Money{Cents: 1}},
		{Ticker: "AAPL", Type: Buy, Amount: Money{Cents: 0}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestClosedSets(t *testing.T) {
	if len(AssetClasses()) != 5 {
		t.Fatalf("expected 5 asset classes")
	}
	if len(TransactionTypes()) != 3 {
		t.Fatalf("expected 3 transaction types")
	}
	if AssetClass("Bonds").Valid() {
		t.Fatalf("unknown class should be invalid")
	}
	if TransactionType("Swap").Valid() {
		t.Fatalf("unknown type should be invalid")
	}
}
