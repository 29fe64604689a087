package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Equities    AssetClass = "Equities"
	FixedIncome AssetClass = "Fixed Income"
	Crypto      AssetClass = "Crypto"
	RealEstate  AssetClass = "Real Estate"
	OtherClass  AssetClass = "Other"
)

const (
	Buy      TransactionType = "Buy"
	Sell     TransactionType = "Sell"
	Dividend TransactionType = "Dividend"
)

type (
	AssetClass string

	TransactionType string

	Date struct {
		time.Time
	}

	// Asset is a single tracked holding, keyed by ticker.
	// CostBasis is the total amount paid, not per share.
	Asset struct {
		Ticker       string
		PurchaseDate Date
		Shares       Quantity
		CostBasis    Money
		Class        AssetClass
	}

	// Transaction is an append-only cash movement against an asset.
	// The date is server-assigned at logging time; Amount sign is not
	// interpreted by the system.
	Transaction struct {
		ID     int64
		Ticker string
		Date   Date
		Type   TransactionType
		Amount Money
		Notes  string
	}
)

var (
	ErrEmptyTicker   = errors.New("empty ticker")
	ErrInvalidShares = errors.New("invalid share quantity")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidClass  = errors.New("unknown asset class")
	ErrInvalidType   = errors.New("unknown transaction type")
	ErrAssetExists   = errors.New("asset already exists")
	ErrAssetNotFound = errors.New("asset not found")
)

// AssetClasses lists the closed set of allocation categories, in form order.
func AssetClasses() []AssetClass {
	return []AssetClass{Equities, FixedIncome, Crypto, RealEstate, OtherClass}
}

// TransactionTypes lists the closed set of transaction types, in form order.
func TransactionTypes() []TransactionType {
	return []TransactionType{Buy, Sell, Dividend}
}

func (c AssetClass) Valid() bool {
	switch c {
	case Equities, FixedIncome, Crypto, RealEstate, OtherClass:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case Buy, Sell, Dividend:
		return true
	}
	return false
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// NormalizeTicker trims and uppercases a ticker symbol the way the
// asset forms do.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.Ticker) == "" {
		return ErrEmptyTicker
	}
	if len(a.Ticker) > 12 {
		return errors.New("ticker too long (max 12 characters)")
	}
	if err := a.PurchaseDate.Validate(); err != nil {
		return err
	}
	if a.Shares.Units <= 0 {
		return ErrInvalidShares
	}
	if a.CostBasis.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !a.Class.Valid() {
		return ErrInvalidClass
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Ticker) == "" {
		return ErrEmptyTicker
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if len(t.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}
