package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/customer"
	"finmirror/internal/shared/middleware"
)

type AccountHandler struct {
	customers customer.Repository
	accounts  account.Repository
}

func NewAccountHandler(customers customer.Repository, accounts account.Repository) *AccountHandler {
	return &AccountHandler{customers: customers, accounts: accounts}
}

// HandleList returns the mirrored accounts of the authenticated user's
// customer record, resolved through the tax id in the token.
func (h *AccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, ok := h.resolveCustomer(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.ListByIDs(r.Context(), c.AccountIDs)
	if err != nil {
		log.Printf("Failed to list accounts for customer %s: %v", c.ID, err)
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []*account.Account{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

// HandleByID returns one mirrored account, if it belongs to the
// authenticated user's customer record.
func (h *AccountHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Account id is required", http.StatusBadRequest)
		return
	}

	c, ok := h.resolveCustomer(w, r)
	if !ok {
		return
	}

	owned := false
	for _, accountID := range c.AccountIDs {
		if accountID == id {
			owned = true
			break
		}
	}
	if !owned {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	acc, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get account %s: %v", id, err)
		http.Error(w, "Failed to get account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acc)
}

// resolveCustomer maps the authenticated user to their mirrored customer
// record. Writes the error response and returns ok=false on failure.
func (h *AccountHandler) resolveCustomer(w http.ResponseWriter, r *http.Request) (*customer.Customer, bool) {
	taxID, ok := middleware.TaxIDFromContext(r.Context())
	if !ok || taxID == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}

	c, err := h.customers.GetByTaxID(r.Context(), taxID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			http.Error(w, "No mirrored data for this user yet", http.StatusNotFound)
			return nil, false
		}
		log.Printf("Failed to resolve customer for tax id: %v", err)
		http.Error(w, "Failed to resolve customer", http.StatusInternalServerError)
		return nil, false
	}

	return c, true
}
