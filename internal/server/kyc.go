package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/kyc"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/storage"
)

func (s *Server) handleKYCInitiate(w http.ResponseWriter, r *http.Request) {
	var req kyc.InitiateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	outcome, err := s.deps.KYC.Initiate(r.Context(), req)
	if err != nil {
		if eris.Is(err, kyc.ErrInvalidPAN) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("kyc initiate failed", zap.String("user_id", req.UserID), zap.Error(err))
		respondError(w, http.StatusBadGateway, "verification is temporarily unavailable")
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleKYCStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	report, err := s.deps.KYC.Status(r.Context(), userID)
	if err != nil {
		zap.L().Error("kyc status failed", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not load kyc status")
		return
	}
	if report.Record == nil {
		respondError(w, http.StatusNotFound, "no kyc record for user")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleDocumentUpload accepts one multipart document: user_id and doc_type
// fields plus the file part. The blob lands in storage, the metadata in the
// document record.
func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	if s.deps.Blobs == nil {
		respondError(w, http.StatusServiceUnavailable, "document upload is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	userID := r.FormValue("user_id")
	docType := model.DocumentType(r.FormValue("doc_type"))
	if userID == "" || !validDocType(docType) {
		respondError(w, http.StatusBadRequest, "user_id and a valid doc_type are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	path, size, err := s.deps.Blobs.Save(userID, mimeType, file)
	if err != nil {
		switch {
		case eris.Is(err, storage.ErrTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "document exceeds the size limit")
		case eris.Is(err, storage.ErrUnsupportedType):
			respondError(w, http.StatusUnsupportedMediaType, "only JPEG, PNG and PDF documents are accepted")
		default:
			zap.L().Error("document store failed", zap.String("user_id", userID), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "could not store document")
		}
		return
	}

	doc, err := s.deps.KYC.SubmitDocument(r.Context(), &model.UserDocument{
		UserID:      userID,
		DocType:     docType,
		StoragePath: path,
		FileName:    header.Filename,
		FileSize:    size,
		MimeType:    mimeType,
	})
	if err != nil {
		// Roll back the orphaned blob; the record is the source of truth.
		if rmErr := s.deps.Blobs.Remove(path); rmErr != nil {
			zap.L().Warn("orphaned blob cleanup failed", zap.String("path", path), zap.Error(rmErr))
		}
		zap.L().Error("document submit failed", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not record document")
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

type reviewRequest struct {
	UserID   string `json:"user_id"`
	Approved bool   `json:"approved"`
	Notes    string `json:"notes,omitempty"`
}

func (s *Server) handleDocumentReview(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	rec, err := s.deps.KYC.ReviewDocument(r.Context(), req.UserID, docID, req.Approved, req.Notes)
	if err != nil {
		zap.L().Error("document review failed", zap.String("doc_id", docID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not review document")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func validDocType(t model.DocumentType) bool {
	switch t {
	case model.DocPAN, model.DocAadhaar, model.DocPassport, model.DocVoterID,
		model.DocDrivingLicense, model.DocAddressProof, model.DocPhoto, model.DocSignature:
		return true
	}
	return false
}
