package sync

import (
	"context"
	"time"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/consent"
	"finmirror/internal/domain/customer"
	"finmirror/internal/domain/institution"
	"finmirror/internal/domain/transaction"
	"finmirror/internal/infrastructure/provider"
)

// MockClient implements provider.ClientInterface
type MockClient struct {
	GetInstitutionsFunc        func(ctx context.Context) ([]provider.Institution, error)
	GetConsentsFunc            func(ctx context.Context) ([]provider.Consent, error)
	GetConsentFunc             func(ctx context.Context, id string) (*provider.Consent, error)
	GetCustomerFunc            func(ctx context.Context, id string) (*provider.Customer, error)
	GetCustomerAccountsFunc    func(ctx context.Context, customerID string) ([]provider.Account, error)
	GetAccountBalanceFunc      func(ctx context.Context, accountID string) (*provider.Balance, error)
	GetAccountTransactionsFunc func(ctx context.Context, accountID string) ([]provider.Transaction, error)
}

func (m *MockClient) GetInstitutions(ctx context.Context) ([]provider.Institution, error) {
	if m.GetInstitutionsFunc != nil {
		return m.GetInstitutionsFunc(ctx)
	}
	return []provider.Institution{}, nil
}

func (m *MockClient) GetConsents(ctx context.Context) ([]provider.Consent, error) {
	if m.GetConsentsFunc != nil {
		return m.GetConsentsFunc(ctx)
	}
	return []provider.Consent{}, nil
}

func (m *MockClient) GetConsent(ctx context.Context, id string) (*provider.Consent, error) {
	if m.GetConsentFunc != nil {
		return m.GetConsentFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClient) GetCustomer(ctx context.Context, id string) (*provider.Customer, error) {
	if m.GetCustomerFunc != nil {
		return m.GetCustomerFunc(ctx, id)
	}
	return &provider.Customer{ID: id}, nil
}

func (m *MockClient) GetCustomerAccounts(ctx context.Context, customerID string) ([]provider.Account, error) {
	if m.GetCustomerAccountsFunc != nil {
		return m.GetCustomerAccountsFunc(ctx, customerID)
	}
	return []provider.Account{}, nil
}

func (m *MockClient) GetAccountBalance(ctx context.Context, accountID string) (*provider.Balance, error) {
	if m.GetAccountBalanceFunc != nil {
		return m.GetAccountBalanceFunc(ctx, accountID)
	}
	return &provider.Balance{}, nil
}

func (m *MockClient) GetAccountTransactions(ctx context.Context, accountID string) ([]provider.Transaction, error) {
	if m.GetAccountTransactionsFunc != nil {
		return m.GetAccountTransactionsFunc(ctx, accountID)
	}
	return []provider.Transaction{}, nil
}

// MockInstitutionRepo implements institution.Repository
type MockInstitutionRepo struct {
	UpsertFunc func(ctx context.Context, params institution.UpsertParams) (*institution.Institution, error)
	ExistsFunc func(ctx context.Context, id string) (bool, error)
	ListFunc   func(ctx context.Context, onlyActive bool) ([]*institution.Institution, error)
}

func (m *MockInstitutionRepo) Upsert(ctx context.Context, params institution.UpsertParams) (*institution.Institution, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &institution.Institution{ID: params.ID}, nil
}

func (m *MockInstitutionRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockInstitutionRepo) List(ctx context.Context, onlyActive bool) ([]*institution.Institution, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, onlyActive)
	}
	return nil, nil
}

// MockConsentRepo implements consent.Repository
type MockConsentRepo struct {
	UpsertFunc          func(ctx context.Context, params consent.UpsertParams) (*consent.Consent, error)
	ExistsFunc          func(ctx context.Context, id string) (bool, error)
	GetByIDFunc         func(ctx context.Context, id string) (*consent.Consent, error)
	GetByCustomerIDFunc func(ctx context.Context, customerID string) (*consent.Consent, error)
	ListActiveFunc      func(ctx context.Context) ([]*consent.Consent, error)
	ListActiveIDsFunc   func(ctx context.Context) ([]string, error)
	MarkRevokedFunc     func(ctx context.Context, id string) error
	SetOwnerFunc        func(ctx context.Context, id string, userID int64) error
}

func (m *MockConsentRepo) Upsert(ctx context.Context, params consent.UpsertParams) (*consent.Consent, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &consent.Consent{ID: params.ID}, nil
}

func (m *MockConsentRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockConsentRepo) GetByID(ctx context.Context, id string) (*consent.Consent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, consent.ErrConsentNotFound
}

func (m *MockConsentRepo) GetByCustomerID(ctx context.Context, customerID string) (*consent.Consent, error) {
	if m.GetByCustomerIDFunc != nil {
		return m.GetByCustomerIDFunc(ctx, customerID)
	}
	return nil, consent.ErrConsentNotFound
}

func (m *MockConsentRepo) ListActive(ctx context.Context) ([]*consent.Consent, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockConsentRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	if m.ListActiveIDsFunc != nil {
		return m.ListActiveIDsFunc(ctx)
	}
	return nil, nil
}

func (m *MockConsentRepo) MarkRevoked(ctx context.Context, id string) error {
	if m.MarkRevokedFunc != nil {
		return m.MarkRevokedFunc(ctx, id)
	}
	return nil
}

func (m *MockConsentRepo) SetOwner(ctx context.Context, id string, userID int64) error {
	if m.SetOwnerFunc != nil {
		return m.SetOwnerFunc(ctx, id, userID)
	}
	return nil
}

// MockCustomerRepo implements customer.Repository
type MockCustomerRepo struct {
	UpsertFunc            func(ctx context.Context, params customer.UpsertParams) (*customer.Customer, error)
	GetByIDFunc           func(ctx context.Context, id string) (*customer.Customer, error)
	GetByTaxIDFunc        func(ctx context.Context, taxID string) (*customer.Customer, error)
	ReplaceAccountIDsFunc func(ctx context.Context, customerID string, accountIDs []string) error
}

func (m *MockCustomerRepo) Upsert(ctx context.Context, params customer.UpsertParams) (*customer.Customer, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &customer.Customer{ID: params.ID, OwnerUserID: params.OwnerUserID, Name: params.Name, TaxID: params.TaxID}, nil
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, customer.ErrCustomerNotFound
}

func (m *MockCustomerRepo) GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	if m.GetByTaxIDFunc != nil {
		return m.GetByTaxIDFunc(ctx, taxID)
	}
	return nil, customer.ErrCustomerNotFound
}

func (m *MockCustomerRepo) ReplaceAccountIDs(ctx context.Context, customerID string, accountIDs []string) error {
	if m.ReplaceAccountIDsFunc != nil {
		return m.ReplaceAccountIDsFunc(ctx, customerID, accountIDs)
	}
	return nil
}

// MockAccountRepo implements account.Repository
type MockAccountRepo struct {
	UpsertFunc                func(ctx context.Context, params account.UpsertParams) (*account.Account, error)
	ExistsFunc                func(ctx context.Context, id string) (bool, error)
	GetByIDFunc               func(ctx context.Context, id string) (*account.Account, error)
	ListByIDsFunc             func(ctx context.Context, ids []string) ([]*account.Account, error)
	UpdateBalanceFunc         func(ctx context.Context, id string, balance float64, creditLimit *float64) error
	ReplaceTransactionIDsFunc func(ctx context.Context, accountID string, transactionIDs []string) error
}

func (m *MockAccountRepo) Upsert(ctx context.Context, params account.UpsertParams) (*account.Account, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &account.Account{ID: params.ID, Kind: params.Kind}, nil
}

func (m *MockAccountRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *MockAccountRepo) ListByIDs(ctx context.Context, ids []string) ([]*account.Account, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockAccountRepo) UpdateBalance(ctx context.Context, id string, balance float64, creditLimit *float64) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, id, balance, creditLimit)
	}
	return nil
}

func (m *MockAccountRepo) ReplaceTransactionIDs(ctx context.Context, accountID string, transactionIDs []string) error {
	if m.ReplaceTransactionIDsFunc != nil {
		return m.ReplaceTransactionIDsFunc(ctx, accountID, transactionIDs)
	}
	return nil
}

// MockTransactionRepo implements transaction.Repository
type MockTransactionRepo struct {
	UpsertFunc                  func(ctx context.Context, params transaction.UpsertParams) (*transaction.Transaction, error)
	ListByAccountIDsFunc        func(ctx context.Context, accountIDs []string, page, limit int) (*transaction.Page, error)
	ListByAccountIDsBetweenFunc func(ctx context.Context, accountIDs []string, start, end time.Time) ([]*transaction.Transaction, error)
}

func (m *MockTransactionRepo) Upsert(ctx context.Context, params transaction.UpsertParams) (*transaction.Transaction, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &transaction.Transaction{ID: params.ID, AccountID: params.AccountID}, nil
}

func (m *MockTransactionRepo) ListByAccountIDs(ctx context.Context, accountIDs []string, page, limit int) (*transaction.Page, error) {
	if m.ListByAccountIDsFunc != nil {
		return m.ListByAccountIDsFunc(ctx, accountIDs, page, limit)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByAccountIDsBetween(ctx context.Context, accountIDs []string, start, end time.Time) ([]*transaction.Transaction, error) {
	if m.ListByAccountIDsBetweenFunc != nil {
		return m.ListByAccountIDsBetweenFunc(ctx, accountIDs, start, end)
	}
	return nil, nil
}
