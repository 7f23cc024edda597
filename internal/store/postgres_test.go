package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_GetUserProfile_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, user_id, full_name, email, phone, pan, created_at FROM profiles`).
		WithArgs("missing-user").
		WillReturnError(pgx.ErrNoRows)

	p, err := s.GetUserProfile(context.Background(), "missing-user")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetKYCRecord_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM kyc_records WHERE user_id = \$1`).
		WithArgs("missing-user").
		WillReturnError(pgx.ErrNoRows)

	rec, err := s.GetKYCRecord(context.Background(), "missing-user")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertKYCRecord(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO kyc_records .+ ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), "user-1", "ABCDE1234F", "XXXX-XXXX-9876", "KIN00000007",
			"CKYC", "VERIFIED", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT .+ FROM kyc_records WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "pan_number", "aadhaar_masked", "ckyc_kin", "kyc_source",
			"status", "kyc_data", "verified_at", "expires_at", "created_at", "updated_at",
		}).AddRow("rec-1", "user-1", "ABCDE1234F", ptr("XXXX-XXXX-9876"), ptr("KIN00000007"),
			model.SourceCKYC, model.KYCVerified, []byte(nil), &now, &now, now, now))

	rec, err := s.UpsertKYCRecord(context.Background(), &model.KYCRecord{
		UserID:        "user-1",
		PANNumber:     "ABCDE1234F",
		AadhaarMasked: "XXXX-XXXX-9876",
		CKYCKin:       "KIN00000007",
		Source:        model.SourceCKYC,
		Status:        model.KYCVerified,
		VerifiedAt:    &now,
		ExpiresAt:     &now,
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, model.KYCVerified, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendAuditEntry(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO kyc_audit_log`).
		WithArgs(pgxmock.AnyArg(), "user-1", "rec-1", "CKYC_LOOKUP", "CERSAI CKYC API",
			pgxmock.AnyArg(), pgxmock.AnyArg(), "SUCCESS", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.AppendAuditEntry(context.Background(), &model.AuditEntry{
		UserID:      "user-1",
		KYCRecordID: "rec-1",
		Action:      "CKYC_LOOKUP",
		APICalled:   "CERSAI CKYC API",
		Status:      "SUCCESS",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertFunnelEvents_Copy(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"funnel_events"},
		[]string{"id", "session_id", "event_type", "step_number", "step_name", "metadata", "device_type", "referrer", "created_at"}).
		WillReturnResult(2)

	n, err := s.InsertFunnelEvents(context.Background(), []model.FunnelEvent{
		{SessionID: "sess-1", Type: model.EventStepView, StepNumber: 1, StepName: "age"},
		{SessionID: "sess-1", Type: model.EventStepComplete, StepNumber: 1, StepName: "age"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertFunnelEvents_Empty(t *testing.T) {
	s, _ := newMockPostgresStore(t)

	n, err := s.InsertFunnelEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgresStore_UpdateDocumentStatus_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE user_documents SET verification_status`).
		WithArgs("REJECTED", "blurry", pgxmock.AnyArg(), "missing-doc").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := s.UpdateDocumentStatus(context.Background(), "missing-doc", model.DocStatusRejected, "blurry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr[T any](v T) *T { return &v }
