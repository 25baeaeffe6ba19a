// Package provider implements the outbound gateway to the Open Finance API.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout = 5 * time.Second

	institutionsPath = "/institution"
	consentsPath     = "/consents"
	customersPath    = "/customers"
	accountsPath     = "/accounts"
)

// Client handles communication with the Open Finance provider API.
// Every call carries its own timeout; a failed call fails only the current
// unit of work. Retry policy, if any, belongs to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new provider API client. timeout bounds each
// individual call; zero selects the default.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

// Institution is an entry of the provider's institution directory.
type Institution struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// Consent is a consent record as returned by the provider.
type Consent struct {
	ID            string    `json:"_id"`
	InstitutionID string    `json:"institutionId"`
	CustomerID    string    `json:"customerId"`
	ClientAppID   string    `json:"clientAppId"`
	Permissions   []string  `json:"permissions"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Customer is a customer profile as returned by the provider.
type Customer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	TaxID string `json:"cpf"`
}

// Account is an account as returned by the provider's account listing.
// Balance data arrives through a separate balance call.
type Account struct {
	ID     string `json:"_id"`
	Kind   string `json:"type"`
	Branch string `json:"branch"`
	Number string `json:"number"`
}

// Balance is the balance snapshot of one account.
type Balance struct {
	Balance     float64  `json:"balance"`
	CreditLimit *float64 `json:"creditCardLimit"`
}

// Transaction is a ledger entry as returned by the provider.
type Transaction struct {
	ID                 string    `json:"_id"`
	Date               time.Time `json:"date"`
	Description        string    `json:"description"`
	Amount             float64   `json:"amount"`
	Direction          string    `json:"type"`
	Category           string    `json:"category"`
	CurrentInstallment *int      `json:"currentInstallment"`
	TotalInstallments  *int      `json:"totalInstallments"`
}

// GetInstitutions fetches the provider's institution directory.
func (c *Client) GetInstitutions(ctx context.Context) ([]Institution, error) {
	var out []Institution
	if err := c.call(ctx, http.MethodGet, institutionsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConsents fetches the provider's active-consent list.
func (c *Client) GetConsents(ctx context.Context) ([]Consent, error) {
	var out []Consent
	if err := c.call(ctx, http.MethodGet, consentsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConsent fetches a single consent by id.
func (c *Client) GetConsent(ctx context.Context, id string) (*Consent, error) {
	var out Consent
	if err := c.call(ctx, http.MethodGet, consentsPath+"/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer fetches a customer profile by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := c.call(ctx, http.MethodGet, customersPath+"/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomerAccounts fetches the accounts of a customer.
func (c *Client) GetCustomerAccounts(ctx context.Context, customerID string) ([]Account, error) {
	var out []Account
	if err := c.call(ctx, http.MethodGet, customersPath+"/"+customerID+"/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAccountBalance fetches the balance snapshot of an account.
func (c *Client) GetAccountBalance(ctx context.Context, accountID string) (*Balance, error) {
	var out Balance
	if err := c.call(ctx, http.MethodGet, accountsPath+"/"+accountID+"/balance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccountTransactions fetches the full transaction ledger of an account.
func (c *Client) GetAccountTransactions(ctx context.Context, accountID string) ([]Transaction, error) {
	var out []Transaction
	if err := c.call(ctx, http.MethodGet, accountsPath+"/"+accountID+"/transactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// call issues one outbound request with a bounded timeout and decodes the
// JSON response into out. Failures are classified as timeout, HTTP status,
// or network error; the client never retries.
func (c *Client) call(ctx context.Context, method, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: classifyTransportError(err), Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: classifyTransportError(err), Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindHTTP, Status: resp.StatusCode, Endpoint: endpoint, Err: fmt.Errorf("provider returned %s", resp.Status)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &Error{Kind: KindNetwork, Endpoint: endpoint, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
		}
	}

	return nil
}

func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
