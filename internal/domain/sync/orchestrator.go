package sync

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"finmirror/internal/domain/consent"
)

var (
	runTracer      = otel.Tracer("finmirror/sync")
	runMeter       = otel.Meter("finmirror/sync")
	runDuration, _ = runMeter.Float64Histogram("sync.run.duration", metric.WithDescription("Sync run duration in seconds"), metric.WithUnit("s"))
	runTotal, _    = runMeter.Int64Counter("sync.run.total", metric.WithDescription("Total sync runs by status"))
	runSkipped, _  = runMeter.Int64Counter("sync.run.skipped", metric.WithDescription("Sync runs skipped because one was already in flight"))
	runStepErrs, _ = runMeter.Int64Counter("sync.run.step_errors", metric.WithDescription("Contained step errors across sync runs"))
)

// RevocationNotifier is notified after a consent is revoked by the sync so
// the owner can be told their bank link stopped working.
type RevocationNotifier interface {
	NotifyConsentRevoked(ctx context.Context, userID int64, consentID string)
}

// Orchestrator drives one full mirror pass: institutions, then consents,
// then per-consent customer, accounts, balances and transactions. At most
// one run is in flight at a time; overlapping triggers are skipped, never
// queued.
type Orchestrator struct {
	institutions *InstitutionReconciler
	consents     *ConsentReconciler
	customers    *CustomerReconciler
	accounts     *AccountReconciler
	transactions *TransactionReconciler
	consentRepo  consent.Repository
	notifier     RevocationNotifier

	running atomic.Bool
}

// NewOrchestrator creates a new sync orchestrator. notifier may be nil when
// revocation notifications are disabled.
func NewOrchestrator(
	institutions *InstitutionReconciler,
	consents *ConsentReconciler,
	customers *CustomerReconciler,
	accounts *AccountReconciler,
	transactions *TransactionReconciler,
	consentRepo consent.Repository,
	notifier RevocationNotifier,
) *Orchestrator {
	return &Orchestrator{
		institutions: institutions,
		consents:     consents,
		customers:    customers,
		accounts:     accounts,
		transactions: transactions,
		consentRepo:  consentRepo,
		notifier:     notifier,
	}
}

// Running reports whether a sync run is currently in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Run executes one full sync pass and returns its aggregate report. When a
// run is already in flight it returns immediately with a skipped report.
// The error return is reserved for a panicking run; contained failures land
// in the report's Errors list and the run still completes.
func (o *Orchestrator) Run(ctx context.Context) (report *Report, err error) {
	if !o.running.CompareAndSwap(false, true) {
		log.Println("Sync run already in progress, skipping trigger")
		runSkipped.Add(ctx, 1)
		return &Report{Skipped: true}, nil
	}
	defer o.running.Store(false)

	report = &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Errors:    []StepError{},
	}

	ctx, span := runTracer.Start(ctx, "sync.run",
		trace.WithAttributes(attribute.String("run.id", report.RunID)),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		report.FinishedAt = time.Now()
		runDuration.Record(ctx, time.Since(start).Seconds())
		runStepErrs.Add(ctx, int64(len(report.Errors)))

		if r := recover(); r != nil {
			err = fmt.Errorf("sync run %s panicked: %v", report.RunID, r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			runTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "failed")))
			log.Printf("Sync run %s failed: %v", report.RunID, err)
			return
		}
		runTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "completed")))
		log.Printf("Sync run %s completed in %v - Customers: %d, Accounts: %d, Transactions: %d, Errors: %d",
			report.RunID, report.FinishedAt.Sub(report.StartedAt), report.Customers,
			report.Accounts, report.Transactions, len(report.Errors))
	}()

	log.Printf("Sync run %s started", report.RunID)

	if instResult, instErr := o.institutions.SyncAll(ctx); instErr != nil {
		report.Errors = append(report.Errors, StepError{Step: "institutions", Error: instErr.Error()})
	} else {
		report.Institutions = *instResult
	}

	consentResult, consentErr := o.consents.SyncAll(ctx)
	if consentErr != nil {
		// Without a fresh consent picture the cascade cannot run; the run
		// still completes with whatever the institution pass produced.
		report.Errors = append(report.Errors, StepError{Step: "consents", Error: consentErr.Error()})
		return report, nil
	}
	report.Consents = *consentResult

	o.notifyRevocations(ctx, consentResult.RevokedIDs)

	active, listErr := o.consentRepo.ListActive(ctx)
	if listErr != nil {
		report.Errors = append(report.Errors, StepError{Step: "consents", Error: fmt.Sprintf("failed to list active consents: %v", listErr)})
		return report, nil
	}

	for _, c := range active {
		if cascadeErr := o.syncConsentCascade(ctx, c, report); cascadeErr != nil {
			report.Errors = append(report.Errors, StepError{ConsentID: c.ID, Error: cascadeErr.Error()})
		}
	}

	return report, nil
}

// syncConsentCascade runs customer, account, balance and transaction sync for
// one active consent. Steps gated off by the consent's capabilities are
// silently skipped. A step failure aborts this consent's cascade only.
func (o *Orchestrator) syncConsentCascade(ctx context.Context, c *consent.Consent, report *Report) error {
	log.Printf("Syncing consent %s with capabilities %v", c.ID, c.Capabilities.List())

	record, err := o.customers.SyncByConsent(ctx, c)
	if err != nil {
		return fmt.Errorf("customer sync: %w", err)
	}
	report.Customers++

	hasAccounts := c.Capabilities.Has(consent.CapabilityAccounts)
	hasTransactions := c.Capabilities.Has(consent.CapabilityTransactions)

	var accountIDs []string
	if hasAccounts {
		accResult, err := o.accounts.SyncForCustomer(ctx, c.CustomerID)
		if err != nil {
			return fmt.Errorf("account sync: %w", err)
		}
		accountIDs = accResult.AccountIDs
		report.Accounts += len(accResult.AccountIDs)
		report.Balances += accResult.Balances
		report.Errors = append(report.Errors, accResult.Errors...)
	}

	if hasTransactions {
		if !hasAccounts {
			// No accounts permission this cycle: walk the locally known
			// membership instead of refetching the listing.
			accountIDs = record.AccountIDs
		}
		for _, accountID := range accountIDs {
			txResult, err := o.transactions.SyncForAccount(ctx, accountID)
			if err != nil {
				return fmt.Errorf("transaction sync for account %s: %w", accountID, err)
			}
			report.Transactions += len(txResult.TransactionIDs)
			report.Errors = append(report.Errors, txResult.Errors...)
		}
	}

	return nil
}

func (o *Orchestrator) notifyRevocations(ctx context.Context, revokedIDs []string) {
	if o.notifier == nil {
		return
	}
	for _, id := range revokedIDs {
		c, err := o.consentRepo.GetByID(ctx, id)
		if err != nil {
			log.Printf("Failed to load revoked consent %s for notification: %v", id, err)
			continue
		}
		if !c.HasOwner() {
			continue
		}
		o.notifier.NotifyConsentRevoked(ctx, *c.OwnerUserID, id)
	}
}
