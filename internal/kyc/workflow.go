package kyc

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/pkg/registry"
)

// TaskQueue is the Temporal task queue the KYC worker polls.
const TaskQueue = "kyc-verification"

// Activities exposes the saga steps as Temporal activities. Each activity is
// a thin wrapper over the orchestrator so the business logic stays testable
// without a Temporal server; audits happen inside the activities.
type Activities struct {
	orch *Orchestrator
}

// NewActivities wraps an orchestrator for worker registration.
func NewActivities(orch *Orchestrator) *Activities {
	return &Activities{orch: orch}
}

// ExistingOutcome short-circuits the workflow when the user is already
// verified. A nil outcome means the lookups should run.
func (a *Activities) ExistingOutcome(ctx context.Context, req InitiateRequest) (*Outcome, error) {
	existing, err := a.orch.store.GetKYCRecord(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == model.KYCVerified {
		if existing.ExpiresAt == nil || existing.ExpiresAt.After(a.orch.now()) {
			return &Outcome{
				Status:  "already_verified",
				Source:  existing.Source,
				Message: "KYC already completed",
				Record:  existing,
			}, nil
		}
	}
	return nil, nil
}

// LookupCKYC queries the CKYC registry and audits the attempt.
func (a *Activities) LookupCKYC(ctx context.Context, req InitiateRequest) (registry.LookupResult, error) {
	return a.lookupActivity(ctx, req, a.orch.ckyc, "CKYC_LOOKUP", "CERSAI CKYC API")
}

// LookupKRA queries the KRA registry and audits the attempt.
func (a *Activities) LookupKRA(ctx context.Context, req InitiateRequest) (registry.LookupResult, error) {
	return a.lookupActivity(ctx, req, a.orch.kra, "KRA_LOOKUP", "CVL/CAMS KRA API")
}

func (a *Activities) lookupActivity(ctx context.Context, req InitiateRequest, client registry.Client, action, api string) (registry.LookupResult, error) {
	pan, err := NormalizePAN(req.PAN)
	if err != nil {
		return registry.LookupResult{}, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidPAN", err)
	}
	existingID := ""
	if existing, err := a.orch.store.GetKYCRecord(ctx, req.UserID); err == nil && existing != nil {
		existingID = existing.ID
	}
	return a.orch.lookup(ctx, client, req.UserID, existingID, pan, action, api)
}

// PersistVerified upserts the verified record after a registry hit.
func (a *Activities) PersistVerified(ctx context.Context, req InitiateRequest, source model.KYCSource, result registry.LookupResult) (*Outcome, error) {
	pan, err := NormalizePAN(req.PAN)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidPAN", err)
	}
	rec, err := a.orch.verify(ctx, req, pan, source, result)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Status:  "verified",
		Source:  source,
		Message: "KYC verified via " + string(source),
		Record:  rec,
	}, nil
}

// PersistPending writes the fresh-KYC pending record after a double miss.
func (a *Activities) PersistPending(ctx context.Context, req InitiateRequest) (*Outcome, error) {
	pan, err := NormalizePAN(req.PAN)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidPAN", err)
	}
	return a.orch.persistPending(ctx, req, pan)
}

// VerificationWorkflow is the KYC saga as a Temporal workflow: existing-check,
// CKYC, KRA, then the pending fallback. Registry outages retry with backoff;
// an invalid PAN never retries.
func VerificationWorkflow(ctx workflow.Context, req InitiateRequest) (*Outcome, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        4,
			NonRetryableErrorTypes: []string{"InvalidPAN"},
		},
	})

	var a *Activities

	var existing *Outcome
	if err := workflow.ExecuteActivity(ctx, a.ExistingOutcome, req).Get(ctx, &existing); err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var ckycResult registry.LookupResult
	if err := workflow.ExecuteActivity(ctx, a.LookupCKYC, req).Get(ctx, &ckycResult); err != nil {
		return nil, err
	}
	if ckycResult.Found {
		var out *Outcome
		if err := workflow.ExecuteActivity(ctx, a.PersistVerified, req, model.SourceCKYC, ckycResult).Get(ctx, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var kraResult registry.LookupResult
	if err := workflow.ExecuteActivity(ctx, a.LookupKRA, req).Get(ctx, &kraResult); err != nil {
		return nil, err
	}
	if kraResult.Found {
		var out *Outcome
		if err := workflow.ExecuteActivity(ctx, a.PersistVerified, req, model.SourceKRA, kraResult).Get(ctx, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var out *Outcome
	if err := workflow.ExecuteActivity(ctx, a.PersistPending, req).Get(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
