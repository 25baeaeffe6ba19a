package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"finmirror/internal/domain/transaction"
)

type TransactionHandler struct {
	accounts     *AccountHandler
	transactions transaction.Repository
}

func NewTransactionHandler(accounts *AccountHandler, transactions transaction.Repository) *TransactionHandler {
	return &TransactionHandler{accounts: accounts, transactions: transactions}
}

// HandleList returns a page of the authenticated user's mirrored
// transactions across all their accounts, newest first.
// Query params: page (default 1), limit (default 20, max 100).
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, ok := h.accounts.resolveCustomer(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.transactions.ListByAccountIDs(r.Context(), c.AccountIDs, page, limit)
	if err != nil {
		log.Printf("Failed to list transactions for customer %s: %v", c.ID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
