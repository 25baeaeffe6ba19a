package dashboard

import (
	"context"
	"math"
	"testing"
	"time"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/customer"
	"finmirror/internal/domain/transaction"
)

type stubCustomerRepo struct {
	customer *customer.Customer
	err      error
}

func (s *stubCustomerRepo) Upsert(ctx context.Context, params customer.UpsertParams) (*customer.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customer, s.err
}
func (s *stubCustomerRepo) GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	return s.customer, s.err
}
func (s *stubCustomerRepo) ReplaceAccountIDs(ctx context.Context, customerID string, accountIDs []string) error {
	return nil
}

type stubAccountRepo struct {
	accounts []*account.Account
}

func (s *stubAccountRepo) Upsert(ctx context.Context, params account.UpsertParams) (*account.Account, error) {
	return nil, nil
}
func (s *stubAccountRepo) Exists(ctx context.Context, id string) (bool, error) { return false, nil }
func (s *stubAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	return nil, account.ErrAccountNotFound
}
func (s *stubAccountRepo) ListByIDs(ctx context.Context, ids []string) ([]*account.Account, error) {
	return s.accounts, nil
}
func (s *stubAccountRepo) UpdateBalance(ctx context.Context, id string, balance float64, creditLimit *float64) error {
	return nil
}
func (s *stubAccountRepo) ReplaceTransactionIDs(ctx context.Context, accountID string, transactionIDs []string) error {
	return nil
}

type stubTransactionRepo struct {
	entries []*transaction.Transaction
}

func (s *stubTransactionRepo) Upsert(ctx context.Context, params transaction.UpsertParams) (*transaction.Transaction, error) {
	return nil, nil
}
func (s *stubTransactionRepo) ListByAccountIDs(ctx context.Context, accountIDs []string, page, limit int) (*transaction.Page, error) {
	return nil, nil
}
func (s *stubTransactionRepo) ListByAccountIDsBetween(ctx context.Context, accountIDs []string, start, end time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, tx := range s.entries {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func TestCardBillStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)

	customers := &stubCustomerRepo{
		customer: &customer.Customer{ID: "cust1", TaxID: "12345678901", AccountIDs: []string{"card-1", "check-1"}},
	}
	accounts := &stubAccountRepo{
		accounts: []*account.Account{
			{ID: "card-1", Kind: account.KindCreditCard},
			{ID: "check-1", Kind: account.KindChecking},
		},
	}
	transactions := &stubTransactionRepo{
		entries: []*transaction.Transaction{
			{ID: "t1", AccountID: "card-1", Date: now.AddDate(0, 0, -1), Amount: 150, Direction: transaction.DirectionDebit},
			{ID: "t2", AccountID: "card-1", Date: now.AddDate(0, 0, -2), Amount: 50, Direction: transaction.DirectionDebit},
			{ID: "t3", AccountID: "card-1", Date: now.AddDate(0, 0, -1), Amount: 500, Direction: transaction.DirectionCredit},
			{ID: "t4", AccountID: "card-1", Date: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), Amount: 100, Direction: transaction.DirectionDebit},
		},
	}

	got, err := NewService(customers, accounts, transactions).CardBillStats(ctx, "12345678901", now)
	if err != nil {
		t.Fatalf("CardBillStats() unexpected error: %v", err)
	}

	if got.BillThisMonth != 200 {
		t.Errorf("BillThisMonth = %f, want 200", got.BillThisMonth)
	}
	if got.BillLastMonth != 100 {
		t.Errorf("BillLastMonth = %f, want 100", got.BillLastMonth)
	}
	if math.Abs(got.GrowthPercent-100) > 1e-9 {
		t.Errorf("GrowthPercent = %f, want 100", got.GrowthPercent)
	}
}

func TestCardBillStatsNoCards(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)

	customers := &stubCustomerRepo{
		customer: &customer.Customer{ID: "cust1", TaxID: "12345678901", AccountIDs: []string{"check-1"}},
	}
	accounts := &stubAccountRepo{
		accounts: []*account.Account{{ID: "check-1", Kind: account.KindChecking}},
	}

	got, err := NewService(customers, accounts, &stubTransactionRepo{}).CardBillStats(ctx, "12345678901", now)
	if err != nil {
		t.Fatalf("CardBillStats() unexpected error: %v", err)
	}
	if got.BillThisMonth != 0 || got.BillLastMonth != 0 || got.GrowthPercent != 0 {
		t.Errorf("stats = %+v, want all zero", got)
	}
}

func TestCardBillStatsUnknownCustomer(t *testing.T) {
	customers := &stubCustomerRepo{err: customer.ErrCustomerNotFound}

	_, err := NewService(customers, &stubAccountRepo{}, &stubTransactionRepo{}).CardBillStats(context.Background(), "000", time.Now())
	if err != customer.ErrCustomerNotFound {
		t.Errorf("error = %v, want ErrCustomerNotFound", err)
	}
}
