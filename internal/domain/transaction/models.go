package transaction

import (
	"errors"
	"time"
)

// Transaction directions as reported by the provider.
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction mirrors one ledger entry of a provider account. Installment
// fields are only present for card purchases paid in installments.
type Transaction struct {
	ID                 string    `json:"id"`
	AccountID          string    `json:"accountId"`
	Date               time.Time `json:"date"`
	Description        string    `json:"description"`
	Amount             float64   `json:"amount"`
	Direction          string    `json:"direction"`
	Category           string    `json:"category"`
	CurrentInstallment *int      `json:"currentInstallment,omitempty"`
	TotalInstallments  *int      `json:"totalInstallments,omitempty"`
	LastSyncedAt       time.Time `json:"lastSyncedAt"`
}

// UpsertParams contains parameters for creating or refreshing a transaction
type UpsertParams struct {
	ID                 string
	AccountID          string
	Date               time.Time
	Description        string
	Amount             float64
	Direction          string
	Category           string
	CurrentInstallment *int
	TotalInstallments  *int
}

func (p UpsertParams) Validate() error {
	if p.ID == "" {
		return errors.New("transaction ID is required for upsert")
	}
	if p.AccountID == "" {
		return errors.New("transaction account ID is required")
	}
	if p.Direction != DirectionCredit && p.Direction != DirectionDebit {
		return errors.New("transaction direction must be credit or debit")
	}
	return nil
}

// Page is one page of a transaction listing.
type Page struct {
	Items      []*Transaction `json:"items"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}
