package sync

import "time"

// InstitutionResult summarizes one institution directory pass.
type InstitutionResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ConsentResult summarizes one consent reconciliation pass.
// RevokedIDs carries the ids revoked this pass for follow-up (notifications)
// and is not part of the externally reported shape.
type ConsentResult struct {
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Revoked    int      `json:"revoked"`
	Errors     []string `json:"errors"`
	RevokedIDs []string `json:"-"`
}

// StepError records one contained failure: either a pipeline step
// (institutions, consents, balances) or the consent whose cascade failed.
type StepError struct {
	Step      string `json:"step,omitempty"`
	ConsentID string `json:"consentId,omitempty"`
	AccountID string `json:"accountId,omitempty"`
	Error     string `json:"error"`
}

// Report is the aggregate outcome of one sync run, the only contract the
// pipeline exposes outward. A non-empty Errors list still means the run
// completed; it was merely degraded.
type Report struct {
	RunID        string            `json:"runId,omitempty"`
	Skipped      bool              `json:"skipped,omitempty"`
	StartedAt    time.Time         `json:"startedAt,omitzero"`
	FinishedAt   time.Time         `json:"finishedAt,omitzero"`
	Institutions InstitutionResult `json:"institutions"`
	Consents     ConsentResult     `json:"consents"`
	Customers    int               `json:"customers"`
	Accounts     int               `json:"accounts"`
	Balances     int               `json:"balances"`
	Transactions int               `json:"transactions"`
	Errors       []StepError       `json:"errors"`
}
