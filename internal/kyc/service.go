package kyc

import (
	"context"

	"github.com/rotisserie/eris"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// Service fronts the saga for HTTP handlers. With a Temporal client
// configured, initiations run as durable workflows; without one they run in
// process through the orchestrator. Status and document operations always go
// straight to the orchestrator.
type Service struct {
	orch     *Orchestrator
	temporal client.Client
}

// NewService builds a Service. temporalClient may be nil.
func NewService(orch *Orchestrator, temporalClient client.Client) *Service {
	return &Service{orch: orch, temporal: temporalClient}
}

// Initiate runs the verification saga for one user. The workflow id is
// derived from the user id so concurrent initiations for the same user
// collapse onto one execution.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*Outcome, error) {
	if _, err := NormalizePAN(req.PAN); err != nil {
		return nil, err
	}

	if s.temporal == nil {
		return s.orch.Initiate(ctx, req)
	}

	run, err := s.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "kyc-" + req.UserID,
		TaskQueue: TaskQueue,
	}, VerificationWorkflow, req)
	if err != nil {
		zap.L().Warn("kyc: temporal start failed, falling back to in-process saga",
			zap.Error(err),
		)
		return s.orch.Initiate(ctx, req)
	}

	var out *Outcome
	if err := run.Get(ctx, &out); err != nil {
		return nil, eris.Wrap(err, "kyc: workflow execution")
	}
	return out, nil
}

// Status reports the record + documents view.
func (s *Service) Status(ctx context.Context, userID string) (*StatusReport, error) {
	return s.orch.Status(ctx, userID)
}

// SubmitDocument records an uploaded document.
func (s *Service) SubmitDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	return s.orch.SubmitDocument(ctx, doc)
}

// ReviewDocument applies a verification decision to one document.
func (s *Service) ReviewDocument(ctx context.Context, userID, docID string, approved bool, notes string) (*model.KYCRecord, error) {
	return s.orch.ReviewDocument(ctx, userID, docID, approved, notes)
}
