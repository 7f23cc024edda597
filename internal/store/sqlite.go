package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It backs local
// development and tests; production runs on Postgres.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL UNIQUE,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT,
	pan        TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS investor_profiles (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	profile_type TEXT NOT NULL,
	confidence   REAL NOT NULL,
	scores       TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS user_goals (
	id                    TEXT PRIMARY KEY,
	user_id               TEXT NOT NULL,
	goal_name             TEXT NOT NULL,
	goal_type             TEXT NOT NULL,
	target_amount         INTEGER NOT NULL,
	timeline_years        INTEGER NOT NULL,
	monthly_sip           INTEGER NOT NULL DEFAULT 0,
	is_primary            INTEGER NOT NULL DEFAULT 0,
	status                TEXT NOT NULL DEFAULT 'active',
	recommended_portfolio TEXT,
	created_at            DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS onboarding_answers (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	question_id TEXT NOT NULL,
	value       TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS kyc_records (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL UNIQUE,
	pan_number     TEXT NOT NULL,
	aadhaar_masked TEXT,
	ckyc_kin       TEXT,
	kyc_source     TEXT NOT NULL DEFAULT 'FRESH',
	status         TEXT NOT NULL DEFAULT 'PENDING',
	kyc_data       TEXT,
	verified_at    DATETIME,
	expires_at     DATETIME,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS user_documents (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL,
	doc_type            TEXT NOT NULL,
	doc_number          TEXT,
	storage_path        TEXT NOT NULL DEFAULT '',
	file_name           TEXT NOT NULL DEFAULT '',
	file_size           INTEGER NOT NULL DEFAULT 0,
	mime_type           TEXT NOT NULL DEFAULT '',
	verification_status TEXT NOT NULL DEFAULT 'PENDING',
	verification_notes  TEXT,
	uploaded_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	verified_at         DATETIME
);

CREATE TABLE IF NOT EXISTS kyc_audit_log (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	kyc_record_id    TEXT,
	action           TEXT NOT NULL,
	api_called       TEXT NOT NULL,
	request_summary  TEXT,
	response_summary TEXT,
	status           TEXT NOT NULL,
	error_message    TEXT,
	created_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS funnel_events (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	step_number INTEGER NOT NULL DEFAULT 0,
	step_name   TEXT NOT NULL DEFAULT '',
	metadata    TEXT,
	device_type TEXT NOT NULL DEFAULT '',
	referrer    TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS holdings (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	asset_class     TEXT NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT,
	invested_amount INTEGER NOT NULL DEFAULT 0,
	current_value   INTEGER NOT NULL DEFAULT 0,
	units           REAL NOT NULL DEFAULT 0,
	nav             REAL NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_investor_profiles_user ON investor_profiles(user_id);
CREATE INDEX IF NOT EXISTS idx_user_goals_user ON user_goals(user_id);
CREATE INDEX IF NOT EXISTS idx_onboarding_answers_user ON onboarding_answers(user_id);
CREATE INDEX IF NOT EXISTS idx_user_documents_user ON user_documents(user_id);
CREATE INDEX IF NOT EXISTS idx_kyc_audit_log_user ON kyc_audit_log(user_id);
CREATE INDEX IF NOT EXISTS idx_funnel_events_session ON funnel_events(session_id);
CREATE INDEX IF NOT EXISTS idx_funnel_events_type ON funnel_events(event_type);
CREATE INDEX IF NOT EXISTS idx_holdings_user ON holdings(user_id);
`

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertUserProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, full_name, email, phone, pan, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET full_name = excluded.full_name,
		   email = excluded.email, phone = excluded.phone, pan = excluded.pan`,
		p.ID, p.UserID, p.FullName, p.Email, p.Phone, p.PAN, p.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: upsert profile")
	}
	return s.GetUserProfile(ctx, p.UserID)
}

func (s *SQLiteStore) GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var p model.UserProfile
	var phone, pan sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, email, phone, pan, created_at FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.FullName, &p.Email, &phone, &pan, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get profile %s", userID)
	}
	p.Phone = phone.String
	p.PAN = pan.String
	return &p, nil
}

func (s *SQLiteStore) InsertInvestorProfile(ctx context.Context, p *model.InvestorProfile) (*model.InvestorProfile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	scoresJSON, err := json.Marshal(p.Scores)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal scores")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO investor_profiles (id, user_id, profile_type, confidence, scores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, string(p.ProfileType), p.Confidence, string(scoresJSON), p.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert investor profile")
	}
	return p, nil
}

func (s *SQLiteStore) GetInvestorProfile(ctx context.Context, userID string) (*model.InvestorProfile, error) {
	var p model.InvestorProfile
	var scoresJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, profile_type, confidence, scores, created_at FROM investor_profiles
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.ProfileType, &p.Confidence, &scoresJSON, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get investor profile %s", userID)
	}
	if err := json.Unmarshal([]byte(scoresJSON), &p.Scores); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal scores")
	}
	return &p, nil
}

func (s *SQLiteStore) AppendAnswers(ctx context.Context, userID string, answers []model.Answer) error {
	now := time.Now().UTC()
	for _, a := range answers {
		valueJSON, err := json.Marshal(a.Value)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal answer value")
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO onboarding_answers (id, user_id, question_id, value, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), userID, a.QuestionID, string(valueJSON), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert answer %s", a.QuestionID)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertGoal(ctx context.Context, g *model.GoalRecord) (*model.GoalRecord, error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Status == "" {
		g.Status = "active"
	}

	var portfolioJSON sql.NullString
	if g.RecommendedPortfolio != nil {
		b, err := json.Marshal(g.RecommendedPortfolio)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal portfolio")
		}
		portfolioJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_goals (id, user_id, goal_name, goal_type, target_amount, timeline_years, monthly_sip, is_primary, status, recommended_portfolio, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.GoalName, string(g.GoalType), g.TargetAmount, g.TimelineYears,
		g.MonthlySIP, g.IsPrimary, g.Status, portfolioJSON, g.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert goal")
	}
	return g, nil
}

func (s *SQLiteStore) ListGoals(ctx context.Context, userID string) ([]model.GoalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, goal_name, goal_type, target_amount, timeline_years, monthly_sip, is_primary, status, recommended_portfolio, created_at
		 FROM user_goals WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list goals")
	}
	defer rows.Close()

	var goals []model.GoalRecord
	for rows.Next() {
		var g model.GoalRecord
		var portfolioJSON sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalName, &g.GoalType, &g.TargetAmount,
			&g.TimelineYears, &g.MonthlySIP, &g.IsPrimary, &g.Status, &portfolioJSON, &g.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan goal")
		}
		if portfolioJSON.Valid {
			g.RecommendedPortfolio = &model.ModelPortfolio{}
			if err := json.Unmarshal([]byte(portfolioJSON.String), g.RecommendedPortfolio); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal portfolio")
			}
		}
		goals = append(goals, g)
	}
	return goals, eris.Wrap(rows.Err(), "sqlite: list goals iterate")
}

func (s *SQLiteStore) InsertHolding(ctx context.Context, h *model.Holding) (*model.Holding, error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holdings (id, user_id, asset_class, name, category, invested_amount, current_value, units, nav, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.AssetClass, h.Name, h.Category, h.InvestedAmount,
		h.CurrentValue, h.Units, h.NAV, h.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert holding")
	}
	return h, nil
}

func (s *SQLiteStore) ListHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, asset_class, name, category, invested_amount, current_value, units, nav, created_at
		 FROM holdings WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list holdings")
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		var category sql.NullString
		if err := rows.Scan(&h.ID, &h.UserID, &h.AssetClass, &h.Name, &category,
			&h.InvestedAmount, &h.CurrentValue, &h.Units, &h.NAV, &h.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan holding")
		}
		h.Category = category.String
		holdings = append(holdings, h)
	}
	return holdings, eris.Wrap(rows.Err(), "sqlite: list holdings iterate")
}

func (s *SQLiteStore) GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	profile, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	investor, err := s.GetInvestorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Dashboard{
		Profile:         profile,
		InvestorProfile: investor,
		Goals:           goals,
		Holdings:        holdings,
	}, nil
}

func (s *SQLiteStore) GetKYCRecord(ctx context.Context, userID string) (*model.KYCRecord, error) {
	var rec model.KYCRecord
	var aadhaar, kin, data sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, pan_number, aadhaar_masked, ckyc_kin, kyc_source, status, kyc_data, verified_at, expires_at, created_at, updated_at
		 FROM kyc_records WHERE user_id = ?`,
		userID,
	).Scan(&rec.ID, &rec.UserID, &rec.PANNumber, &aadhaar, &kin, &rec.Source, &rec.Status,
		&data, &rec.VerifiedAt, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get kyc record %s", userID)
	}
	rec.AadhaarMasked = aadhaar.String
	rec.CKYCKin = kin.String
	if data.Valid {
		rec.Data = []byte(data.String)
	}
	return &rec, nil
}

func (s *SQLiteStore) UpsertKYCRecord(ctx context.Context, rec *model.KYCRecord) (*model.KYCRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	var data sql.NullString
	if len(rec.Data) > 0 {
		data = sql.NullString{String: string(rec.Data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kyc_records (id, user_id, pan_number, aadhaar_masked, ckyc_kin, kyc_source, status, kyc_data, verified_at, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   pan_number = excluded.pan_number, aadhaar_masked = excluded.aadhaar_masked,
		   ckyc_kin = excluded.ckyc_kin, kyc_source = excluded.kyc_source,
		   status = excluded.status, kyc_data = excluded.kyc_data,
		   verified_at = excluded.verified_at, expires_at = excluded.expires_at,
		   updated_at = excluded.updated_at`,
		rec.ID, rec.UserID, rec.PANNumber, rec.AadhaarMasked, rec.CKYCKin, string(rec.Source),
		string(rec.Status), data, rec.VerifiedAt, rec.ExpiresAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: upsert kyc record")
	}
	return s.GetKYCRecord(ctx, rec.UserID)
}

func (s *SQLiteStore) AppendAuditEntry(ctx context.Context, entry *model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kyc_audit_log (id, user_id, kyc_record_id, action, api_called, request_summary, response_summary, status, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.KYCRecordID, entry.Action, entry.APICalled,
		string(entry.RequestSummary), string(entry.ResponseSummary), entry.Status,
		entry.ErrorMessage, entry.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: append audit entry")
}

func (s *SQLiteStore) ListAuditEntries(ctx context.Context, userID string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, kyc_record_id, action, api_called, request_summary, response_summary, status, error_message, created_at
		 FROM kyc_audit_log WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list audit entries")
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var recordID, reqJSON, respJSON, errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &recordID, &e.Action, &e.APICalled,
			&reqJSON, &respJSON, &e.Status, &errMsg, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan audit entry")
		}
		e.KYCRecordID = recordID.String
		e.ErrorMessage = errMsg.String
		if reqJSON.Valid {
			e.RequestSummary = []byte(reqJSON.String)
		}
		if respJSON.Valid {
			e.ResponseSummary = []byte(respJSON.String)
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: list audit entries iterate")
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, userID string) ([]model.UserDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at
		 FROM user_documents WHERE user_id = ? ORDER BY uploaded_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list documents")
	}
	defer rows.Close()

	var docs []model.UserDocument
	for rows.Next() {
		doc, err := scanSQLiteDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, eris.Wrap(rows.Err(), "sqlite: list documents iterate")
}

func (s *SQLiteStore) InsertDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	if doc.Status == "" {
		doc.Status = model.DocStatusPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_documents (id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.UserID, string(doc.DocType), doc.DocNumber, doc.StoragePath, doc.FileName,
		doc.FileSize, doc.MimeType, string(doc.Status), doc.Notes, doc.UploadedAt, doc.VerifiedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert document")
	}
	return doc, nil
}

func (s *SQLiteStore) UpdateDocumentStatus(ctx context.Context, docID string, status model.DocStatus, notes string) (*model.UserDocument, error) {
	var verifiedAt *time.Time
	if status == model.DocStatusVerified {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE user_documents SET verification_status = ?, verification_notes = ?, verified_at = ? WHERE id = ?`,
		string(status), notes, verifiedAt, docID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update document %s", docID)
	}
	if err := checkRowsAffected(res, "document", docID); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at
		 FROM user_documents WHERE id = ?`,
		docID,
	)
	return scanSQLiteDocument(row)
}

func (s *SQLiteStore) InsertFunnelEvents(ctx context.Context, events []model.FunnelEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO funnel_events (id, session_id, event_type, step_number, step_name, metadata, device_type, referrer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert event")
	}
	defer stmt.Close()

	for _, e := range events {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		var metadata sql.NullString
		if len(e.Metadata) > 0 {
			metadata = sql.NullString{String: string(e.Metadata), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			id, e.SessionID, string(e.Type), e.StepNumber, e.StepName,
			metadata, e.DeviceType, e.Referrer, createdAt,
		); err != nil {
			return 0, eris.Wrap(err, "sqlite: insert funnel event")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit events")
	}
	return int64(len(events)), nil
}

func (s *SQLiteStore) ListFunnelEvents(ctx context.Context, filter EventFilter) ([]model.FunnelEvent, error) {
	query := `SELECT id, session_id, event_type, step_number, step_name, metadata, device_type, referrer, created_at
	          FROM funnel_events WHERE created_at >= ?`
	args := []any{filter.Since}

	if filter.SessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, filter.SessionID)
	}
	query += ` ORDER BY created_at`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list funnel events")
	}
	defer rows.Close()

	var events []model.FunnelEvent
	for rows.Next() {
		var e model.FunnelEvent
		var metadata sql.NullString
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Type, &e.StepNumber, &e.StepName,
			&metadata, &e.DeviceType, &e.Referrer, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan funnel event")
		}
		if metadata.Valid {
			e.Metadata = []byte(metadata.String)
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: list funnel events iterate")
}

func (s *SQLiteStore) FunnelStats(ctx context.Context, since time.Time) (*FunnelStats, error) {
	stats := &FunnelStats{
		EventCounts:       make(map[model.EventType]int),
		DeviceBreakdown:   make(map[string]int),
		DropOffByLastStep: make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id),
		        COUNT(DISTINCT CASE WHEN event_type = 'form_complete' THEN session_id END)
		 FROM funnel_events WHERE created_at >= ?`,
		since,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel session counts")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT event_type, COUNT(*) FROM funnel_events WHERE created_at >= ? GROUP BY event_type`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel event counts")
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event count")
		}
		stats.EventCounts[model.EventType(t)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel event counts iterate")
	}

	stepRows, err := s.db.QueryContext(ctx,
		`SELECT step_number, step_name,
		        SUM(CASE WHEN event_type = 'step_view' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN event_type = 'step_complete' THEN 1 ELSE 0 END)
		 FROM funnel_events
		 WHERE created_at >= ? AND event_type IN ('step_view', 'step_complete')
		 GROUP BY step_number, step_name ORDER BY step_number`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel step counts")
	}
	defer stepRows.Close()
	for stepRows.Next() {
		var st StepStat
		if err := stepRows.Scan(&st.StepNumber, &st.StepName, &st.Views, &st.Completions); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan step count")
		}
		stats.Steps = append(stats.Steps, st)
	}
	if err := stepRows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel step counts iterate")
	}

	deviceRows, err := s.db.QueryContext(ctx,
		`SELECT device_type, COUNT(DISTINCT session_id) FROM funnel_events
		 WHERE created_at >= ? AND device_type <> '' GROUP BY device_type`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel device breakdown")
	}
	defer deviceRows.Close()
	for deviceRows.Next() {
		var device string
		var n int
		if err := deviceRows.Scan(&device, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan device count")
		}
		stats.DeviceBreakdown[device] = n
	}
	if err := deviceRows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel device breakdown iterate")
	}

	dropRows, err := s.db.QueryContext(ctx,
		`SELECT last_step, COUNT(*) FROM (
		   SELECT session_id, step_name AS last_step, MAX(created_at)
		   FROM funnel_events
		   WHERE created_at >= ? AND step_name <> ''
		     AND session_id NOT IN (
		       SELECT session_id FROM funnel_events
		       WHERE created_at >= ? AND event_type = 'form_complete'
		     )
		   GROUP BY session_id
		 ) GROUP BY last_step`,
		since, since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel drop-off")
	}
	defer dropRows.Close()
	for dropRows.Next() {
		var step string
		var n int
		if err := dropRows.Scan(&step, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan drop-off count")
		}
		stats.DropOffByLastStep[step] = n
	}
	if err := dropRows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: funnel drop-off iterate")
	}

	return stats, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSQLiteDocument(row scannable) (*model.UserDocument, error) {
	var doc model.UserDocument
	var docNumber, notes sql.NullString
	if err := row.Scan(&doc.ID, &doc.UserID, &doc.DocType, &docNumber, &doc.StoragePath,
		&doc.FileName, &doc.FileSize, &doc.MimeType, &doc.Status, &notes,
		&doc.UploadedAt, &doc.VerifiedAt); err != nil {
		return nil, eris.Wrap(err, "sqlite: scan document")
	}
	doc.DocNumber = docNumber.String
	doc.Notes = notes.String
	return &doc, nil
}
