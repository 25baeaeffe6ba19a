package consent

// RevokedIDs returns the local active consent ids that are absent from the
// provider's latest active list. Absence is the only revocation signal the
// provider gives; callers must not invoke this when the provider fetch
// failed, or a transient outage would read as mass revocation.
func RevokedIDs(localActiveIDs, providerIDs []string) []string {
	present := make(map[string]struct{}, len(providerIDs))
	for _, id := range providerIDs {
		present[id] = struct{}{}
	}

	var revoked []string
	for _, id := range localActiveIDs {
		if _, ok := present[id]; !ok {
			revoked = append(revoked, id)
		}
	}
	return revoked
}
