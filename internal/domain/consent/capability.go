package consent

import (
	"sort"
	"strings"
)

// Capability is a canonical permission grant derived from the provider's raw
// permission strings. Raw strings are normalized once at consent-load time so
// gating logic never touches free-form text.
type Capability string

const (
	// CapabilityAccounts enables account and balance sync.
	CapabilityAccounts Capability = "accounts"
	// CapabilityTransactions enables transaction sync.
	CapabilityTransactions Capability = "transactions"
)

// capabilityKeywords maps normalized permission-string fragments to the
// capability they grant. Credit-card scopes are bucketed with transaction
// access because card statements arrive through the transaction ledger.
var capabilityKeywords = map[string]Capability{
	"ACCOUNTS":     CapabilityAccounts,
	"TRANSACTIONS": CapabilityTransactions,
	"CREDIT_CARDS": CapabilityTransactions,
}

// CapabilitySet is the parsed capability grants of one consent.
type CapabilitySet map[Capability]struct{}

// Has reports whether the set grants the given capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the granted capabilities in stable order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseCapabilities derives the canonical capability set from raw provider
// permission strings. Matching is case-insensitive: "ACCOUNTS_READ",
// "accounts" and "Accounts_Write" all grant CapabilityAccounts.
func ParseCapabilities(permissions []string) CapabilitySet {
	set := make(CapabilitySet)
	for _, raw := range permissions {
		normalized := strings.ToUpper(strings.TrimSpace(raw))
		for keyword, capability := range capabilityKeywords {
			if strings.Contains(normalized, keyword) {
				set[capability] = struct{}{}
			}
		}
	}
	return set
}
