package account

import (
	"errors"
	"time"
)

// Account kinds known to the provider. Which kinds actually participate in
// sync is decided by the configured allow-set, not here.
const (
	KindChecking   = "checking"
	KindCreditCard = "credit-card"
)

var validKinds = map[string]struct{}{
	KindChecking:   {},
	KindCreditCard: {},
}

// Domain errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidKind     = errors.New("invalid account kind")
)

// Account mirrors a provider account. TransactionIDs is a reconciliation
// snapshot replaced wholesale on every transaction sync pass.
type Account struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Branch         string    `json:"branch"`
	Number         string    `json:"number"`
	Balance        float64   `json:"balance"`
	CreditLimit    *float64  `json:"creditLimit,omitempty"`
	TransactionIDs []string  `json:"transactionIds"`
	LastSyncedAt   time.Time `json:"lastSyncedAt"`
}

// UpsertParams contains parameters for creating or refreshing an account.
// Balance fields are written by a separate balance pass (UpdateBalance).
type UpsertParams struct {
	ID     string
	Kind   string
	Branch string
	Number string
}

func (p UpsertParams) Validate() error {
	if p.ID == "" {
		return errors.New("account ID is required for upsert")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	return nil
}

// IsValidKind checks if the provided account kind is known.
func IsValidKind(kind string) bool {
	_, ok := validKinds[kind]
	return ok
}
