package provider

import "context"

// ClientInterface abstracts the provider API for the sync reconcilers,
// allowing tests to substitute a mock client.
type ClientInterface interface {
	GetInstitutions(ctx context.Context) ([]Institution, error)
	GetConsents(ctx context.Context) ([]Consent, error)
	GetConsent(ctx context.Context, id string) (*Consent, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetCustomerAccounts(ctx context.Context, customerID string) ([]Account, error)
	GetAccountBalance(ctx context.Context, accountID string) (*Balance, error)
	GetAccountTransactions(ctx context.Context, accountID string) ([]Transaction, error)
}
