package model

import (
	"encoding/json"
	"time"
)

// KYCStatus is the lifecycle state of a KYC record.
type KYCStatus string

const (
	KYCPending    KYCStatus = "PENDING"
	KYCInProgress KYCStatus = "IN_PROGRESS"
	KYCVerified   KYCStatus = "VERIFIED"
	KYCRejected   KYCStatus = "REJECTED"
	KYCExpired    KYCStatus = "EXPIRED"
)

// KYCSource annotates which registry verified the record, or FRESH when the
// user must complete KYC from scratch with documents.
type KYCSource string

const (
	SourceCKYC  KYCSource = "CKYC"
	SourceKRA   KYCSource = "KRA"
	SourceFresh KYCSource = "FRESH"
)

// DocumentType enumerates the identity documents accepted for fresh KYC.
type DocumentType string

const (
	DocPAN            DocumentType = "PAN"
	DocAadhaar        DocumentType = "AADHAAR"
	DocPassport       DocumentType = "PASSPORT"
	DocVoterID        DocumentType = "VOTER_ID"
	DocDrivingLicense DocumentType = "DRIVING_LICENSE"
	DocAddressProof   DocumentType = "ADDRESS_PROOF"
	DocPhoto          DocumentType = "PHOTO"
	DocSignature      DocumentType = "SIGNATURE"
)

// DocStatus is the per-document verification state.
type DocStatus string

const (
	DocStatusPending  DocStatus = "PENDING"
	DocStatusVerified DocStatus = "VERIFIED"
	DocStatusRejected DocStatus = "REJECTED"
	DocStatusExpired  DocStatus = "EXPIRED"
)

// KYCRecord is the per-user KYC state. One record per user, upserted.
type KYCRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	PANNumber     string          `json:"pan_number"`
	AadhaarMasked string          `json:"aadhaar_masked,omitempty"`
	CKYCKin       string          `json:"ckyc_kin,omitempty"`
	Source        KYCSource       `json:"kyc_source"`
	Status        KYCStatus       `json:"status"`
	Data          json.RawMessage `json:"kyc_data,omitempty"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UserDocument is one uploaded identity document.
type UserDocument struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	DocType     DocumentType `json:"doc_type"`
	DocNumber   string       `json:"doc_number,omitempty"`
	StoragePath string       `json:"storage_path"`
	FileName    string       `json:"file_name"`
	FileSize    int64        `json:"file_size"`
	MimeType    string       `json:"mime_type"`
	Status      DocStatus    `json:"verification_status"`
	Notes       string       `json:"verification_notes,omitempty"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	VerifiedAt  *time.Time   `json:"verified_at,omitempty"`
}

// AuditEntry is one append-only KYC audit log row. Compliance requires an
// entry for every external call and state change; request summaries carry
// masked identifiers only.
type AuditEntry struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	KYCRecordID     string          `json:"kyc_record_id,omitempty"`
	Action          string          `json:"action"`
	APICalled       string          `json:"api_called"`
	RequestSummary  json.RawMessage `json:"request_summary,omitempty"`
	ResponseSummary json.RawMessage `json:"response_summary,omitempty"`
	Status          string          `json:"status"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
