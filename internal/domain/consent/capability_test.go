package consent

import "testing"

func TestParseCapabilities(t *testing.T) {
	tests := []struct {
		name             string
		permissions      []string
		wantAccounts     bool
		wantTransactions bool
	}{
		{
			name:             "accounts read scope",
			permissions:      []string{"ACCOUNTS_READ"},
			wantAccounts:     true,
			wantTransactions: false,
		},
		{
			name:             "transactions scope",
			permissions:      []string{"TRANSACTIONS_READ"},
			wantAccounts:     false,
			wantTransactions: true,
		},
		{
			name:             "credit card scopes grant transaction access",
			permissions:      []string{"CREDIT_CARDS_ACCOUNTS_READ"},
			wantAccounts:     true,
			wantTransactions: true,
		},
		{
			name:             "case insensitive matching",
			permissions:      []string{"accounts_read", "Transactions_Read"},
			wantAccounts:     true,
			wantTransactions: true,
		},
		{
			name:             "whitespace trimmed",
			permissions:      []string{"  ACCOUNTS_BALANCES_READ  "},
			wantAccounts:     true,
			wantTransactions: false,
		},
		{
			name:             "unknown scopes grant nothing",
			permissions:      []string{"RESOURCES_READ", "LOANS_READ"},
			wantAccounts:     false,
			wantTransactions: false,
		},
		{
			name:             "empty permissions",
			permissions:      nil,
			wantAccounts:     false,
			wantTransactions: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseCapabilities(tt.permissions)

			if got := set.Has(CapabilityAccounts); got != tt.wantAccounts {
				t.Errorf("Has(accounts) = %v, want %v", got, tt.wantAccounts)
			}
			if got := set.Has(CapabilityTransactions); got != tt.wantTransactions {
				t.Errorf("Has(transactions) = %v, want %v", got, tt.wantTransactions)
			}
		})
	}
}

func TestCapabilitySet_List(t *testing.T) {
	set := ParseCapabilities([]string{"TRANSACTIONS_READ", "ACCOUNTS_READ"})

	list := set.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
	// Stable order: accounts before transactions
	if list[0] != CapabilityAccounts || list[1] != CapabilityTransactions {
		t.Errorf("List() = %v, want [accounts transactions]", list)
	}
}
