package customer

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer mirrors a provider customer profile. AccountIDs is a
// reconciliation snapshot: each account sync pass replaces it wholesale with
// the set the provider returned, while the account records themselves are
// kept addressable by id for history.
type Customer struct {
	ID           string    `json:"id"`
	OwnerUserID  int64     `json:"ownerUserId"`
	Name         string    `json:"name"`
	TaxID        string    `json:"taxId"`
	AccountIDs   []string  `json:"accountIds"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}

// UpsertParams contains parameters for creating or refreshing a customer
type UpsertParams struct {
	ID          string
	OwnerUserID int64
	Name        string
	TaxID       string
}

func (p UpsertParams) Validate() error {
	if p.ID == "" {
		return errors.New("customer ID is required for upsert")
	}
	if p.OwnerUserID <= 0 {
		return errors.New("customer must be linked to a local user")
	}
	if p.Name == "" {
		return errors.New("customer name is required")
	}
	return nil
}
