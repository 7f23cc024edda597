// Package kyc implements the KYC verification saga: registry lookups with
// document-upload fallback, per-user state, and a complete audit trail.
package kyc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/pkg/registry"
)

// RequiredDocuments is the fresh-KYC document set. A record verifies from
// documents only once all three types have a verified upload.
var RequiredDocuments = []model.DocumentType{model.DocPAN, model.DocAadhaar, model.DocPhoto}

// ExpiryPeriod is how long a registry verification stays valid.
const ExpiryPeriod = 365 * 24 * time.Hour

// Store is the persistence surface the orchestrator needs. Satisfied by
// store.Store.
type Store interface {
	GetKYCRecord(ctx context.Context, userID string) (*model.KYCRecord, error)
	UpsertKYCRecord(ctx context.Context, rec *model.KYCRecord) (*model.KYCRecord, error)
	AppendAuditEntry(ctx context.Context, entry *model.AuditEntry) error
	ListDocuments(ctx context.Context, userID string) ([]model.UserDocument, error)
	InsertDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error)
	UpdateDocumentStatus(ctx context.Context, docID string, status model.DocStatus, notes string) (*model.UserDocument, error)
}

// InitiateRequest is the input to a KYC check.
type InitiateRequest struct {
	UserID       string `json:"user_id"`
	PAN          string `json:"pan"`
	AadhaarLast4 string `json:"aadhaar_last4,omitempty"`
	DOB          string `json:"dob,omitempty"`
	FullName     string `json:"full_name,omitempty"`
}

// Outcome is the result of initiating a KYC check.
type Outcome struct {
	Status            string               `json:"status"`
	Source            model.KYCSource      `json:"source,omitempty"`
	Message           string               `json:"message"`
	RequiresDocuments bool                 `json:"requires_documents,omitempty"`
	RequiredDocuments []model.DocumentType `json:"required_documents,omitempty"`
	Record            *model.KYCRecord     `json:"kyc_record"`
}

// StatusReport is the combined record + documents view.
type StatusReport struct {
	Record    *model.KYCRecord     `json:"kyc_record"`
	Documents []model.UserDocument `json:"documents"`
	Complete  bool                 `json:"kyc_complete"`
}

// Orchestrator runs the KYC saga in process.
type Orchestrator struct {
	store Store
	ckyc  registry.Client
	kra   registry.Client
	now   func() time.Time
}

// NewOrchestrator wires the saga to its store and the two registries.
func NewOrchestrator(store Store, ckyc, kra registry.Client) *Orchestrator {
	return &Orchestrator{
		store: store,
		ckyc:  ckyc,
		kra:   kra,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Initiate runs the lookup saga for one user: CKYC first, KRA on miss, and a
// pending record with required documents when both miss. Already-verified
// users short-circuit. Every step lands in the audit log.
func (o *Orchestrator) Initiate(ctx context.Context, req InitiateRequest) (*Outcome, error) {
	pan, err := NormalizePAN(req.PAN)
	if err != nil {
		return nil, err
	}

	existing, err := o.store.GetKYCRecord(ctx, req.UserID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: load existing record")
	}
	if existing != nil && existing.Status == model.KYCVerified {
		if existing.ExpiresAt == nil || existing.ExpiresAt.After(o.now()) {
			return &Outcome{
				Status:  "already_verified",
				Source:  existing.Source,
				Message: "KYC already completed",
				Record:  existing,
			}, nil
		}
		// Expired verification falls through to a fresh lookup.
		existing.Status = model.KYCExpired
	}

	existingID := ""
	if existing != nil {
		existingID = existing.ID
	}

	// Step 1: CKYC.
	ckycResult, err := o.lookup(ctx, o.ckyc, req.UserID, existingID, pan, "CKYC_LOOKUP", "CERSAI CKYC API")
	if err != nil {
		return nil, err
	}
	if ckycResult.Found {
		rec, err := o.verify(ctx, req, pan, model.SourceCKYC, ckycResult)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Status:  "verified",
			Source:  model.SourceCKYC,
			Message: "KYC verified via CKYC",
			Record:  rec,
		}, nil
	}

	// Step 2: KRA.
	kraResult, err := o.lookup(ctx, o.kra, req.UserID, existingID, pan, "KRA_LOOKUP", "CVL/CAMS KRA API")
	if err != nil {
		return nil, err
	}
	if kraResult.Found {
		rec, err := o.verify(ctx, req, pan, model.SourceKRA, kraResult)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Status:  "verified",
			Source:  model.SourceKRA,
			Message: "KYC verified via KRA",
			Record:  rec,
		}, nil
	}

	// Step 3: fresh KYC with documents.
	return o.persistPending(ctx, req, pan)
}

// persistPending writes the fresh-KYC pending record after both registries
// miss and returns the pending outcome with the required document list.
func (o *Orchestrator) persistPending(ctx context.Context, req InitiateRequest, pan string) (*Outcome, error) {
	data, _ := json.Marshal(map[string]string{
		"full_name":    req.FullName,
		"dob":          req.DOB,
		"initiated_at": o.now().Format(time.RFC3339),
	})
	rec, err := o.store.UpsertKYCRecord(ctx, &model.KYCRecord{
		UserID:        req.UserID,
		PANNumber:     pan,
		AadhaarMasked: MaskAadhaar(req.AadhaarLast4),
		Source:        model.SourceFresh,
		Status:        model.KYCPending,
		Data:          data,
	})
	if err != nil {
		return nil, eris.Wrap(err, "kyc: upsert pending record")
	}

	o.audit(ctx, req.UserID, rec.ID, "KYC_INITIATED", "Internal",
		map[string]any{"pan": MaskPAN(pan)},
		map[string]any{"status": "PENDING", "requires_documents": true},
		"PENDING", "")

	return &Outcome{
		Status:            "pending",
		Message:           "No existing KYC found. Please upload identity documents.",
		RequiresDocuments: true,
		RequiredDocuments: RequiredDocuments,
		Record:            rec,
	}, nil
}

// lookup queries one registry and audits the attempt, including failures.
func (o *Orchestrator) lookup(ctx context.Context, client registry.Client, userID, recordID, pan, action, api string) (registry.LookupResult, error) {
	result, err := client.Lookup(ctx, pan)
	if err != nil {
		o.audit(ctx, userID, recordID, action, api,
			map[string]any{"pan": MaskPAN(pan)},
			map[string]any{"status": "error"},
			"ERROR", err.Error())
		return registry.LookupResult{}, eris.Wrap(err, "kyc: registry lookup")
	}

	status := "NOT_FOUND"
	resp := map[string]any{"status": "not_found"}
	if result.Found {
		status = "SUCCESS"
		resp = map[string]any{"status": "found"}
	}
	o.audit(ctx, userID, recordID, action, api,
		map[string]any{"pan": MaskPAN(pan)}, resp, status, "")
	return result, nil
}

// verify upserts a verified record with source annotation and expiry.
func (o *Orchestrator) verify(ctx context.Context, req InitiateRequest, pan string, source model.KYCSource, result registry.LookupResult) (*model.KYCRecord, error) {
	now := o.now()
	expires := now.Add(ExpiryPeriod)
	rec, err := o.store.UpsertKYCRecord(ctx, &model.KYCRecord{
		UserID:        req.UserID,
		PANNumber:     pan,
		AadhaarMasked: MaskAadhaar(req.AadhaarLast4),
		CKYCKin:       result.KIN,
		Source:        source,
		Status:        model.KYCVerified,
		Data:          result.Data,
		VerifiedAt:    &now,
		ExpiresAt:     &expires,
	})
	if err != nil {
		return nil, eris.Wrap(err, "kyc: upsert verified record")
	}
	return rec, nil
}

// Status returns the record + documents view.
func (o *Orchestrator) Status(ctx context.Context, userID string) (*StatusReport, error) {
	rec, err := o.store.GetKYCRecord(ctx, userID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: load record")
	}
	docs, err := o.store.ListDocuments(ctx, userID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: list documents")
	}
	return &StatusReport{
		Record:    rec,
		Documents: docs,
		Complete:  rec != nil && rec.Status == model.KYCVerified,
	}, nil
}

// SubmitDocument records an uploaded document (pending verification) and
// moves a pending record to in-progress.
func (o *Orchestrator) SubmitDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	doc.Status = model.DocStatusPending
	saved, err := o.store.InsertDocument(ctx, doc)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: insert document")
	}

	rec, err := o.store.GetKYCRecord(ctx, doc.UserID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: load record")
	}
	if rec != nil && rec.Status == model.KYCPending {
		rec.Status = model.KYCInProgress
		if _, err := o.store.UpsertKYCRecord(ctx, rec); err != nil {
			return nil, eris.Wrap(err, "kyc: mark in progress")
		}
	}

	o.audit(ctx, doc.UserID, recordID(rec), "DOCUMENT_UPLOADED", "Internal",
		map[string]any{"doc_type": doc.DocType, "file_name": doc.FileName},
		map[string]any{"status": "PENDING"},
		"PENDING", "")
	return saved, nil
}

// aggregate flips the record to Verified once every required document type
// has a verified upload.
func (o *Orchestrator) aggregate(ctx context.Context, rec *model.KYCRecord) (*model.KYCRecord, error) {
	docs, err := o.store.ListDocuments(ctx, rec.UserID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: list documents")
	}
	if rec.Status == model.KYCVerified || !documentsComplete(docs) {
		return rec, nil
	}

	now := o.now()
	expires := now.Add(ExpiryPeriod)
	rec.Status = model.KYCVerified
	rec.Source = model.SourceFresh
	rec.VerifiedAt = &now
	rec.ExpiresAt = &expires

	updated, err := o.store.UpsertKYCRecord(ctx, rec)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: verify from documents")
	}
	o.audit(ctx, rec.UserID, rec.ID, "KYC_VERIFIED", "Internal",
		map[string]any{"via": "documents"},
		map[string]any{"status": "VERIFIED"},
		"SUCCESS", "")
	return updated, nil
}

// ReviewDocument applies a verification decision to one document and then
// re-aggregates the record: once every required type has a verified upload
// the record flips to Verified; a rejected document sends the record back
// to Pending so the user can re-upload.
func (o *Orchestrator) ReviewDocument(ctx context.Context, userID, docID string, approved bool, notes string) (*model.KYCRecord, error) {
	status := model.DocStatusVerified
	if !approved {
		status = model.DocStatusRejected
	}
	doc, err := o.store.UpdateDocumentStatus(ctx, docID, status, notes)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: update document")
	}

	rec, err := o.store.GetKYCRecord(ctx, userID)
	if err != nil {
		return nil, eris.Wrap(err, "kyc: load record")
	}
	if rec == nil {
		return nil, eris.New("kyc: no record for user")
	}

	o.audit(ctx, userID, rec.ID, "DOCUMENT_REVIEWED", "Internal",
		map[string]any{"doc_type": doc.DocType},
		map[string]any{"status": status},
		string(status), "")

	if !approved {
		// A rejected required document reopens the record until the user
		// re-uploads.
		rec.Status = model.KYCPending
		updated, err := o.store.UpsertKYCRecord(ctx, rec)
		if err != nil {
			return nil, eris.Wrap(err, "kyc: update record")
		}
		return updated, nil
	}
	return o.aggregate(ctx, rec)
}

// documentsComplete reports whether every required document type has a
// verified upload.
func documentsComplete(docs []model.UserDocument) bool {
	covered := make(map[model.DocumentType]bool)
	for _, d := range docs {
		if d.Status == model.DocStatusVerified {
			covered[d.DocType] = true
		}
	}
	for _, required := range RequiredDocuments {
		if !covered[required] {
			return false
		}
	}
	return true
}

// audit appends an entry; failures are logged and swallowed so the saga
// never fails on bookkeeping.
func (o *Orchestrator) audit(ctx context.Context, userID, recordID, action, api string, reqSummary, respSummary map[string]any, status, errMsg string) {
	reqJSON, _ := json.Marshal(reqSummary)
	respJSON, _ := json.Marshal(respSummary)
	entry := &model.AuditEntry{
		UserID:          userID,
		KYCRecordID:     recordID,
		Action:          action,
		APICalled:       api,
		RequestSummary:  reqJSON,
		ResponseSummary: respJSON,
		Status:          status,
		ErrorMessage:    errMsg,
	}
	if err := o.store.AppendAuditEntry(ctx, entry); err != nil {
		zap.L().Error("kyc: failed to append audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func recordID(rec *model.KYCRecord) string {
	if rec == nil {
		return ""
	}
	return rec.ID
}
