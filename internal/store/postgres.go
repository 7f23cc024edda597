package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/ameya-wealth/wealth-api/internal/db"
	"github.com/ameya-wealth/wealth-api/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"get_profile":      `SELECT id, user_id, full_name, email, phone, pan, created_at FROM profiles WHERE user_id = $1`,
	"get_kyc_record":   `SELECT id, user_id, pan_number, aadhaar_masked, ckyc_kin, kyc_source, status, kyc_data, verified_at, expires_at, created_at, updated_at FROM kyc_records WHERE user_id = $1`,
	"insert_audit":     `INSERT INTO kyc_audit_log (id, user_id, kyc_record_id, action, api_called, request_summary, response_summary, status, error_message, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
	"list_documents":   `SELECT id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at FROM user_documents WHERE user_id = $1 ORDER BY uploaded_at`,
	"list_goals":       `SELECT id, user_id, goal_name, goal_type, target_amount, timeline_years, monthly_sip, is_primary, status, recommended_portfolio, created_at FROM user_goals WHERE user_id = $1 ORDER BY created_at`,
	"list_holdings":    `SELECT id, user_id, asset_class, name, category, invested_amount, current_value, units, nav, created_at FROM holdings WHERE user_id = $1 ORDER BY created_at`,
	"investor_profile": `SELECT id, user_id, profile_type, confidence, scores, created_at FROM investor_profiles WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id    TEXT NOT NULL UNIQUE,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT,
	pan        TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS investor_profiles (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id      TEXT NOT NULL,
	profile_type TEXT NOT NULL,
	confidence   DOUBLE PRECISION NOT NULL,
	scores       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_goals (
	id                    TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id               TEXT NOT NULL,
	goal_name             TEXT NOT NULL,
	goal_type             TEXT NOT NULL,
	target_amount         BIGINT NOT NULL,
	timeline_years        INTEGER NOT NULL,
	monthly_sip           BIGINT NOT NULL DEFAULT 0,
	is_primary            BOOLEAN NOT NULL DEFAULT false,
	status                TEXT NOT NULL DEFAULT 'active',
	recommended_portfolio JSONB,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS onboarding_answers (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id     TEXT NOT NULL,
	question_id TEXT NOT NULL,
	value       JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS kyc_records (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id        TEXT NOT NULL UNIQUE,
	pan_number     TEXT NOT NULL,
	aadhaar_masked TEXT,
	ckyc_kin       TEXT,
	kyc_source     TEXT NOT NULL DEFAULT 'FRESH',
	status         TEXT NOT NULL DEFAULT 'PENDING',
	kyc_data       JSONB,
	verified_at    TIMESTAMPTZ,
	expires_at     TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_documents (
	id                  TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id             TEXT NOT NULL,
	doc_type            TEXT NOT NULL,
	doc_number          TEXT,
	storage_path        TEXT NOT NULL DEFAULT '',
	file_name           TEXT NOT NULL DEFAULT '',
	file_size           BIGINT NOT NULL DEFAULT 0,
	mime_type           TEXT NOT NULL DEFAULT '',
	verification_status TEXT NOT NULL DEFAULT 'PENDING',
	verification_notes  TEXT,
	uploaded_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	verified_at         TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS kyc_audit_log (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id          TEXT NOT NULL,
	kyc_record_id    TEXT,
	action           TEXT NOT NULL,
	api_called       TEXT NOT NULL,
	request_summary  JSONB,
	response_summary JSONB,
	status           TEXT NOT NULL,
	error_message    TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS funnel_events (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	session_id  TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	step_number INTEGER NOT NULL DEFAULT 0,
	step_name   TEXT NOT NULL DEFAULT '',
	metadata    JSONB,
	device_type TEXT NOT NULL DEFAULT '',
	referrer    TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS holdings (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id         TEXT NOT NULL,
	asset_class     TEXT NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT,
	invested_amount BIGINT NOT NULL DEFAULT 0,
	current_value   BIGINT NOT NULL DEFAULT 0,
	units           DOUBLE PRECISION NOT NULL DEFAULT 0,
	nav             DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_investor_profiles_user ON investor_profiles(user_id);
CREATE INDEX IF NOT EXISTS idx_user_goals_user ON user_goals(user_id);
CREATE INDEX IF NOT EXISTS idx_onboarding_answers_user ON onboarding_answers(user_id);
CREATE INDEX IF NOT EXISTS idx_user_documents_user ON user_documents(user_id);
CREATE INDEX IF NOT EXISTS idx_kyc_audit_log_user ON kyc_audit_log(user_id);
CREATE INDEX IF NOT EXISTS idx_funnel_events_session ON funnel_events(session_id);
CREATE INDEX IF NOT EXISTS idx_funnel_events_type ON funnel_events(event_type);
CREATE INDEX IF NOT EXISTS idx_funnel_events_created ON funnel_events(created_at);
CREATE INDEX IF NOT EXISTS idx_holdings_user ON holdings(user_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) UpsertUserProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, email, phone, pan, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET full_name = $3, email = $4, phone = $5, pan = $6`,
		p.ID, p.UserID, p.FullName, p.Email, p.Phone, p.PAN, p.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: upsert profile")
	}
	return s.GetUserProfile(ctx, p.UserID)
}

func (s *PostgresStore) GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var p model.UserProfile
	var phone, pan *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, full_name, email, phone, pan, created_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.FullName, &p.Email, &phone, &pan, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get profile %s", userID)
	}
	if phone != nil {
		p.Phone = *phone
	}
	if pan != nil {
		p.PAN = *pan
	}
	return &p, nil
}

func (s *PostgresStore) InsertInvestorProfile(ctx context.Context, p *model.InvestorProfile) (*model.InvestorProfile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	scoresJSON, err := json.Marshal(p.Scores)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal scores")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO investor_profiles (id, user_id, profile_type, confidence, scores, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, string(p.ProfileType), p.Confidence, scoresJSON, p.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert investor profile")
	}
	return p, nil
}

func (s *PostgresStore) GetInvestorProfile(ctx context.Context, userID string) (*model.InvestorProfile, error) {
	var p model.InvestorProfile
	var scoresJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, profile_type, confidence, scores, created_at FROM investor_profiles
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.ProfileType, &p.Confidence, &scoresJSON, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get investor profile %s", userID)
	}
	if err := json.Unmarshal(scoresJSON, &p.Scores); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal scores")
	}
	return &p, nil
}

func (s *PostgresStore) AppendAnswers(ctx context.Context, userID string, answers []model.Answer) error {
	now := time.Now().UTC()
	for _, a := range answers {
		valueJSON, err := json.Marshal(a.Value)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal answer value")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO onboarding_answers (id, user_id, question_id, value, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), userID, a.QuestionID, valueJSON, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert answer %s", a.QuestionID)
		}
	}
	return nil
}

func (s *PostgresStore) InsertGoal(ctx context.Context, g *model.GoalRecord) (*model.GoalRecord, error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Status == "" {
		g.Status = "active"
	}

	var portfolioJSON []byte
	if g.RecommendedPortfolio != nil {
		var err error
		portfolioJSON, err = json.Marshal(g.RecommendedPortfolio)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal portfolio")
		}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_goals (id, user_id, goal_name, goal_type, target_amount, timeline_years, monthly_sip, is_primary, status, recommended_portfolio, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		g.ID, g.UserID, g.GoalName, string(g.GoalType), g.TargetAmount, g.TimelineYears,
		g.MonthlySIP, g.IsPrimary, g.Status, portfolioJSON, g.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert goal")
	}
	return g, nil
}

func (s *PostgresStore) ListGoals(ctx context.Context, userID string) ([]model.GoalRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, goal_name, goal_type, target_amount, timeline_years, monthly_sip, is_primary, status, recommended_portfolio, created_at
		 FROM user_goals WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list goals")
	}
	defer rows.Close()

	var goals []model.GoalRecord
	for rows.Next() {
		var g model.GoalRecord
		var portfolioJSON []byte
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalName, &g.GoalType, &g.TargetAmount,
			&g.TimelineYears, &g.MonthlySIP, &g.IsPrimary, &g.Status, &portfolioJSON, &g.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan goal")
		}
		if len(portfolioJSON) > 0 {
			g.RecommendedPortfolio = &model.ModelPortfolio{}
			if err := json.Unmarshal(portfolioJSON, g.RecommendedPortfolio); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal portfolio")
			}
		}
		goals = append(goals, g)
	}
	return goals, eris.Wrap(rows.Err(), "postgres: list goals iterate")
}

func (s *PostgresStore) InsertHolding(ctx context.Context, h *model.Holding) (*model.Holding, error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO holdings (id, user_id, asset_class, name, category, invested_amount, current_value, units, nav, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		h.ID, h.UserID, h.AssetClass, h.Name, h.Category, h.InvestedAmount,
		h.CurrentValue, h.Units, h.NAV, h.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert holding")
	}
	return h, nil
}

func (s *PostgresStore) ListHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, asset_class, name, category, invested_amount, current_value, units, nav, created_at
		 FROM holdings WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list holdings")
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		var category *string
		if err := rows.Scan(&h.ID, &h.UserID, &h.AssetClass, &h.Name, &category,
			&h.InvestedAmount, &h.CurrentValue, &h.Units, &h.NAV, &h.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan holding")
		}
		if category != nil {
			h.Category = *category
		}
		holdings = append(holdings, h)
	}
	return holdings, eris.Wrap(rows.Err(), "postgres: list holdings iterate")
}

// GetDashboard assembles the profile, investor profile, goals and holdings
// for one user. The four reads are independent, so they run on the pool
// concurrently.
func (s *PostgresStore) GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	var dash model.Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.Profile, err = s.GetUserProfile(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		dash.InvestorProfile, err = s.GetInvestorProfile(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		dash.Goals, err = s.ListGoals(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		dash.Holdings, err = s.ListHoldings(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (s *PostgresStore) GetKYCRecord(ctx context.Context, userID string) (*model.KYCRecord, error) {
	var rec model.KYCRecord
	var aadhaar, kin *string
	var data []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, pan_number, aadhaar_masked, ckyc_kin, kyc_source, status, kyc_data, verified_at, expires_at, created_at, updated_at
		 FROM kyc_records WHERE user_id = $1`,
		userID,
	).Scan(&rec.ID, &rec.UserID, &rec.PANNumber, &aadhaar, &kin, &rec.Source, &rec.Status,
		&data, &rec.VerifiedAt, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get kyc record %s", userID)
	}
	if aadhaar != nil {
		rec.AadhaarMasked = *aadhaar
	}
	if kin != nil {
		rec.CKYCKin = *kin
	}
	rec.Data = data
	return &rec, nil
}

func (s *PostgresStore) UpsertKYCRecord(ctx context.Context, rec *model.KYCRecord) (*model.KYCRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO kyc_records (id, user_id, pan_number, aadhaar_masked, ckyc_kin, kyc_source, status, kyc_data, verified_at, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id) DO UPDATE SET
		   pan_number = $3, aadhaar_masked = $4, ckyc_kin = $5, kyc_source = $6,
		   status = $7, kyc_data = $8, verified_at = $9, expires_at = $10, updated_at = $12`,
		rec.ID, rec.UserID, rec.PANNumber, rec.AadhaarMasked, rec.CKYCKin, string(rec.Source),
		string(rec.Status), []byte(rec.Data), rec.VerifiedAt, rec.ExpiresAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: upsert kyc record")
	}
	return s.GetKYCRecord(ctx, rec.UserID)
}

func (s *PostgresStore) AppendAuditEntry(ctx context.Context, entry *model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO kyc_audit_log (id, user_id, kyc_record_id, action, api_called, request_summary, response_summary, status, error_message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UserID, entry.KYCRecordID, entry.Action, entry.APICalled,
		[]byte(entry.RequestSummary), []byte(entry.ResponseSummary), entry.Status,
		entry.ErrorMessage, entry.CreatedAt,
	)
	return eris.Wrap(err, "postgres: append audit entry")
}

func (s *PostgresStore) ListAuditEntries(ctx context.Context, userID string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, kyc_record_id, action, api_called, request_summary, response_summary, status, error_message, created_at
		 FROM kyc_audit_log WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list audit entries")
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var recordID, errMsg *string
		var reqJSON, respJSON []byte
		if err := rows.Scan(&e.ID, &e.UserID, &recordID, &e.Action, &e.APICalled,
			&reqJSON, &respJSON, &e.Status, &errMsg, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan audit entry")
		}
		if recordID != nil {
			e.KYCRecordID = *recordID
		}
		if errMsg != nil {
			e.ErrorMessage = *errMsg
		}
		e.RequestSummary = reqJSON
		e.ResponseSummary = respJSON
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: list audit entries iterate")
}

func (s *PostgresStore) ListDocuments(ctx context.Context, userID string) ([]model.UserDocument, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at
		 FROM user_documents WHERE user_id = $1 ORDER BY uploaded_at`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list documents")
	}
	defer rows.Close()

	var docs []model.UserDocument
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, eris.Wrap(rows.Err(), "postgres: list documents iterate")
}

func (s *PostgresStore) InsertDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	if doc.Status == "" {
		doc.Status = model.DocStatusPending
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_documents (id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		doc.ID, doc.UserID, string(doc.DocType), doc.DocNumber, doc.StoragePath, doc.FileName,
		doc.FileSize, doc.MimeType, string(doc.Status), doc.Notes, doc.UploadedAt, doc.VerifiedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert document")
	}
	return doc, nil
}

func (s *PostgresStore) UpdateDocumentStatus(ctx context.Context, docID string, status model.DocStatus, notes string) (*model.UserDocument, error) {
	var verifiedAt *time.Time
	if status == model.DocStatusVerified {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE user_documents SET verification_status = $1, verification_notes = $2, verified_at = $3 WHERE id = $4`,
		string(status), notes, verifiedAt, docID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update document %s", docID)
	}
	if tag.RowsAffected() == 0 {
		return nil, eris.Errorf("document not found: %s", docID)
	}

	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, doc_type, doc_number, storage_path, file_name, file_size, mime_type, verification_status, verification_notes, uploaded_at, verified_at
		 FROM user_documents WHERE id = $1`,
		docID,
	)
	return scanDocumentRow(row)
}

func (s *PostgresStore) InsertFunnelEvents(ctx context.Context, events []model.FunnelEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	columns := []string{"id", "session_id", "event_type", "step_number", "step_name", "metadata", "device_type", "referrer", "created_at"}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		rows = append(rows, []any{
			id, e.SessionID, string(e.Type), e.StepNumber, e.StepName,
			[]byte(e.Metadata), e.DeviceType, e.Referrer, createdAt,
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "funnel_events", columns, rows)
	return n, eris.Wrap(err, "postgres: insert funnel events")
}

func (s *PostgresStore) ListFunnelEvents(ctx context.Context, filter EventFilter) ([]model.FunnelEvent, error) {
	query := `SELECT id, session_id, event_type, step_number, step_name, metadata, device_type, referrer, created_at
	          FROM funnel_events WHERE created_at >= $1`
	args := []any{filter.Since}

	if filter.SessionID != "" {
		query += ` AND session_id = $2`
		args = append(args, filter.SessionID)
	}
	query += ` ORDER BY created_at`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list funnel events")
	}
	defer rows.Close()

	var events []model.FunnelEvent
	for rows.Next() {
		var e model.FunnelEvent
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Type, &e.StepNumber, &e.StepName,
			&metadata, &e.DeviceType, &e.Referrer, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan funnel event")
		}
		e.Metadata = metadata
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "postgres: list funnel events iterate")
}

// FunnelStats runs the aggregation queries behind the funnel report.
func (s *PostgresStore) FunnelStats(ctx context.Context, since time.Time) (*FunnelStats, error) {
	stats := &FunnelStats{
		EventCounts:       make(map[model.EventType]int),
		DeviceBreakdown:   make(map[string]int),
		DropOffByLastStep: make(map[string]int),
	}

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT session_id),
		        COUNT(DISTINCT session_id) FILTER (WHERE event_type = 'form_complete')
		 FROM funnel_events WHERE created_at >= $1`,
		since,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: funnel session counts")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT event_type, COUNT(*) FROM funnel_events WHERE created_at >= $1 GROUP BY event_type`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: funnel event counts")
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan event count")
		}
		stats.EventCounts[model.EventType(t)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: funnel event counts iterate")
	}

	stepRows, err := s.pool.Query(ctx,
		`SELECT step_number, step_name,
		        COUNT(*) FILTER (WHERE event_type = 'step_view'),
		        COUNT(*) FILTER (WHERE event_type = 'step_complete')
		 FROM funnel_events
		 WHERE created_at >= $1 AND event_type IN ('step_view', 'step_complete')
		 GROUP BY step_number, step_name ORDER BY step_number`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: funnel step counts")
	}
	defer stepRows.Close()
	for stepRows.Next() {
		var st StepStat
		if err := stepRows.Scan(&st.StepNumber, &st.StepName, &st.Views, &st.Completions); err != nil {
			return nil, eris.Wrap(err, "postgres: scan step count")
		}
		stats.Steps = append(stats.Steps, st)
	}
	if err := stepRows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: funnel step counts iterate")
	}

	deviceRows, err := s.pool.Query(ctx,
		`SELECT device_type, COUNT(DISTINCT session_id) FROM funnel_events
		 WHERE created_at >= $1 AND device_type <> '' GROUP BY device_type`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: funnel device breakdown")
	}
	defer deviceRows.Close()
	for deviceRows.Next() {
		var device string
		var n int
		if err := deviceRows.Scan(&device, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan device count")
		}
		stats.DeviceBreakdown[device] = n
	}
	if err := deviceRows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: funnel device breakdown iterate")
	}

	// Last seen step for sessions that never reached form_complete.
	dropRows, err := s.pool.Query(ctx,
		`SELECT last_step, COUNT(*) FROM (
		   SELECT DISTINCT ON (session_id) session_id, step_name AS last_step
		   FROM funnel_events
		   WHERE created_at >= $1 AND step_name <> ''
		     AND session_id NOT IN (
		       SELECT session_id FROM funnel_events
		       WHERE created_at >= $1 AND event_type = 'form_complete'
		     )
		   ORDER BY session_id, created_at DESC
		 ) t GROUP BY last_step`,
		since,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: funnel drop-off")
	}
	defer dropRows.Close()
	for dropRows.Next() {
		var step string
		var n int
		if err := dropRows.Scan(&step, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan drop-off count")
		}
		stats.DropOffByLastStep[step] = n
	}
	if err := dropRows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: funnel drop-off iterate")
	}

	return stats, nil
}

type documentScanner interface {
	Scan(dest ...any) error
}

func scanDocumentRow(row documentScanner) (*model.UserDocument, error) {
	var doc model.UserDocument
	var docNumber, notes *string
	if err := row.Scan(&doc.ID, &doc.UserID, &doc.DocType, &docNumber, &doc.StoragePath,
		&doc.FileName, &doc.FileSize, &doc.MimeType, &doc.Status, &notes,
		&doc.UploadedAt, &doc.VerifiedAt); err != nil {
		return nil, eris.Wrap(err, "postgres: scan document")
	}
	if docNumber != nil {
		doc.DocNumber = *docNumber
	}
	if notes != nil {
		doc.Notes = *notes
	}
	return &doc, nil
}
