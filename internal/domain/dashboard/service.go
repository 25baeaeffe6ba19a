// Package dashboard aggregates mirrored card data into summary figures.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/customer"
	"finmirror/internal/domain/transaction"
)

// BillStats summarizes card spending for the current and previous month.
type BillStats struct {
	BillThisMonth float64 `json:"billThisMonth"`
	BillLastMonth float64 `json:"billLastMonth"`
	GrowthPercent float64 `json:"growthPercent"`
}

// Service computes dashboard figures from the mirrored store. It never
// talks to the provider; stale data is served as-is.
type Service struct {
	customers    customer.Repository
	accounts     account.Repository
	transactions transaction.Repository
}

// NewService creates a new dashboard service
func NewService(customers customer.Repository, accounts account.Repository, transactions transaction.Repository) *Service {
	return &Service{customers: customers, accounts: accounts, transactions: transactions}
}

// CardBillStats computes the customer's card bill for the month containing
// now and the month before, plus month-over-month growth. Only debits on
// credit-card accounts count toward the bill.
func (s *Service) CardBillStats(ctx context.Context, taxID string, now time.Time) (*BillStats, error) {
	c, err := s.customers.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListByIDs(ctx, c.AccountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	var cardIDs []string
	for _, acc := range accounts {
		if acc.Kind == account.KindCreditCard {
			cardIDs = append(cardIDs, acc.ID)
		}
	}

	stats := &BillStats{}
	if len(cardIDs) == 0 {
		return stats, nil
	}

	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	entries, err := s.transactions.ListByAccountIDsBetween(ctx, cardIDs, lastMonthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	for _, tx := range entries {
		if tx.Direction != transaction.DirectionDebit {
			continue
		}
		if tx.Date.Before(thisMonthStart) {
			stats.BillLastMonth += tx.Amount
		} else {
			stats.BillThisMonth += tx.Amount
		}
	}

	if stats.BillLastMonth > 0 {
		stats.GrowthPercent = (stats.BillThisMonth - stats.BillLastMonth) / stats.BillLastMonth * 100
	}

	return stats, nil
}
