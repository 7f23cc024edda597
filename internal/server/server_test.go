package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/advisor"
	"github.com/ameya-wealth/wealth-api/internal/kyc"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/onboarding"
	"github.com/ameya-wealth/wealth-api/internal/store"
	"github.com/ameya-wealth/wealth-api/pkg/anthropic"
)

// fakeStore is an in-memory Store with per-call error injection.
type fakeStore struct {
	mu        sync.Mutex
	profiles  map[string]*model.UserProfile
	investors map[string]*model.InvestorProfile
	answers   map[string][]model.Answer
	goals     map[string][]model.GoalRecord
	holdings  map[string][]model.Holding
	kycRecs   map[string]*model.KYCRecord
	documents map[string]*model.UserDocument
	events    []model.FunnelEvent

	stats    *store.FunnelStats
	statsErr error
	pingErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:  map[string]*model.UserProfile{},
		investors: map[string]*model.InvestorProfile{},
		answers:   map[string][]model.Answer{},
		goals:     map[string][]model.GoalRecord{},
		holdings:  map[string][]model.Holding{},
		kycRecs:   map[string]*model.KYCRecord{},
		documents: map[string]*model.UserDocument{},
	}
}

func (f *fakeStore) UpsertUserProfile(_ context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	cp.CreatedAt = time.Now().UTC()
	f.profiles[cp.UserID] = &cp
	return &cp, nil
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeStore) InsertInvestorProfile(_ context.Context, p *model.InvestorProfile) (*model.InvestorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.ID = uuid.NewString()
	f.investors[cp.UserID] = &cp
	return &cp, nil
}

func (f *fakeStore) GetInvestorProfile(_ context.Context, userID string) (*model.InvestorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.investors[userID], nil
}

func (f *fakeStore) AppendAnswers(_ context.Context, userID string, answers []model.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[userID] = append(f.answers[userID], answers...)
	return nil
}

func (f *fakeStore) InsertGoal(_ context.Context, g *model.GoalRecord) (*model.GoalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *g
	cp.ID = uuid.NewString()
	f.goals[cp.UserID] = append(f.goals[cp.UserID], cp)
	return &cp, nil
}

func (f *fakeStore) ListGoals(_ context.Context, userID string) ([]model.GoalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.goals[userID], nil
}

func (f *fakeStore) InsertHolding(_ context.Context, h *model.Holding) (*model.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *h
	cp.ID = uuid.NewString()
	f.holdings[cp.UserID] = append(f.holdings[cp.UserID], cp)
	return &cp, nil
}

func (f *fakeStore) ListHoldings(_ context.Context, userID string) ([]model.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holdings[userID], nil
}

func (f *fakeStore) GetDashboard(_ context.Context, userID string) (*model.Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profiles[userID]
	if p == nil {
		return nil, nil
	}
	return &model.Dashboard{
		Profile:         p,
		InvestorProfile: f.investors[userID],
		Goals:           f.goals[userID],
		Holdings:        f.holdings[userID],
	}, nil
}

func (f *fakeStore) GetKYCRecord(_ context.Context, userID string) (*model.KYCRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kycRecs[userID], nil
}

func (f *fakeStore) UpsertKYCRecord(_ context.Context, rec *model.KYCRecord) (*model.KYCRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	f.kycRecs[cp.UserID] = &cp
	return &cp, nil
}

func (f *fakeStore) AppendAuditEntry(context.Context, *model.AuditEntry) error { return nil }

func (f *fakeStore) ListAuditEntries(context.Context, string, int) ([]model.AuditEntry, error) {
	return nil, nil
}

func (f *fakeStore) ListDocuments(_ context.Context, userID string) ([]model.UserDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []model.UserDocument
	for _, d := range f.documents {
		if d.UserID == userID {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}

func (f *fakeStore) InsertDocument(_ context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *doc
	cp.ID = uuid.NewString()
	f.documents[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeStore) UpdateDocumentStatus(_ context.Context, docID string, status model.DocStatus, notes string) (*model.UserDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.documents[docID]
	if !ok {
		return nil, eris.New("store: document not found")
	}
	d.Status = status
	d.Notes = notes
	return d, nil
}

func (f *fakeStore) InsertFunnelEvents(_ context.Context, events []model.FunnelEvent) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return int64(len(events)), nil
}

func (f *fakeStore) ListFunnelEvents(context.Context, store.EventFilter) ([]model.FunnelEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events, nil
}

func (f *fakeStore) FunnelStats(context.Context, time.Time) (*store.FunnelStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats != nil {
		return f.stats, nil
	}
	return &store.FunnelStats{
		EventCounts:       map[model.EventType]int{},
		DeviceBreakdown:   map[string]int{},
		DropOffByLastStep: map[string]int{},
	}, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Migrate(context.Context) error {
	return nil
}
func (f *fakeStore) Close() error { return nil }

type fakeKYC struct {
	initiateOut *kyc.Outcome
	initiateErr error
	statusOut   *kyc.StatusReport
	statusErr   error
	submitted   *model.UserDocument
	submitErr   error
	reviewed    *model.KYCRecord
	reviewErr   error

	lastReview struct {
		userID, docID, notes string
		approved             bool
	}
}

func (f *fakeKYC) Initiate(_ context.Context, req kyc.InitiateRequest) (*kyc.Outcome, error) {
	return f.initiateOut, f.initiateErr
}

func (f *fakeKYC) Status(context.Context, string) (*kyc.StatusReport, error) {
	return f.statusOut, f.statusErr
}

func (f *fakeKYC) SubmitDocument(_ context.Context, doc *model.UserDocument) (*model.UserDocument, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = doc
	cp := *doc
	cp.ID = "doc-1"
	cp.Status = model.DocStatusPending
	return &cp, nil
}

func (f *fakeKYC) ReviewDocument(_ context.Context, userID, docID string, approved bool, notes string) (*model.KYCRecord, error) {
	f.lastReview.userID = userID
	f.lastReview.docID = docID
	f.lastReview.approved = approved
	f.lastReview.notes = notes
	return f.reviewed, f.reviewErr
}

type fakeChat struct {
	deltas  []string
	err     error
	lastReq advisor.ChatRequest
}

func (f *fakeChat) Chat(_ context.Context, req advisor.ChatRequest, onDelta func(string) error) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.deltas {
		if err := onDelta(d); err != nil {
			return nil, err
		}
	}
	return &anthropic.MessageResponse{}, nil
}

type fakeCRM struct {
	mu     sync.Mutex
	pushes int
}

func (f *fakeCRM) PushLeadAsync(*model.UserProfile, *model.InvestorProfile, *model.GoalRecord) {
	f.mu.Lock()
	f.pushes++
	f.mu.Unlock()
}

type fakeBlobs struct {
	saveErr  error
	savePath string
	saved    []byte
	removed  []string
}

func (f *fakeBlobs) Save(userID, mimeType string, r io.Reader) (string, int64, error) {
	if f.saveErr != nil {
		return "", 0, f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	f.saved = data
	if f.savePath == "" {
		f.savePath = userID + "/blob"
	}
	return f.savePath, int64(len(data)), nil
}

func (f *fakeBlobs) Open(string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.saved)), nil
}

func (f *fakeBlobs) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

type capturingEmitter struct {
	mu     sync.Mutex
	events []model.FunnelEvent
}

func (c *capturingEmitter) Emit(ev model.FunnelEvent) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *capturingEmitter) byType(t model.EventType) []model.FunnelEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.FunnelEvent
	for _, ev := range c.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type testEnv struct {
	server   *Server
	store    *fakeStore
	sessions *onboarding.MemoryStore
	emitter  *capturingEmitter
	kyc      *fakeKYC
	chat     *fakeChat
	crm      *fakeCRM
	blobs    *fakeBlobs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    newFakeStore(),
		sessions: onboarding.NewMemoryStore(time.Hour),
		emitter:  &capturingEmitter{},
		kyc:      &fakeKYC{},
		chat:     &fakeChat{},
		crm:      &fakeCRM{},
		blobs:    &fakeBlobs{},
	}
	env.server = New(Deps{
		Store:    env.store,
		Sessions: env.sessions,
		Emitter:  env.emitter,
		KYC:      env.kyc,
		Advisor:  env.chat,
		CRM:      env.crm,
		Blobs:    env.blobs,
	}, Options{})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// completedSession seeds a finished questionnaire session and returns it.
func (e *testEnv) completedSession(t *testing.T) *onboarding.Session {
	t.Helper()
	sess := onboarding.NewSession("mobile", "")
	sess.Answers = []model.Answer{
		model.SingleAnswer("age", "26-35"),
		model.SingleAnswer("income", "10l-25l"),
		model.SingleAnswer("primaryGoal", "wealth-creation"),
		model.SingleAnswer("goalAmount", "1cr-3cr"),
		model.SingleAnswer("riskTolerance", "high"),
		model.SingleAnswer("timeHorizon", "more-10-years"),
	}
	sess.Completed = true
	require.NoError(t, e.sessions.Put(context.Background(), sess))
	return sess
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env.store.pingErr = eris.New("down")
	w = env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "go_goroutines") ||
		strings.Contains(w.Body.String(), "wealth_http"))
}

func TestServeWaitsForInflightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		finished.Store(true)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			resp.Body.Close()
		}
	}()

	<-entered
	cancel()

	// The handler is still blocked; serve must not have returned yet.
	select {
	case <-served:
		t.Fatal("serve returned with a request still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the drain finished")
	}
	require.True(t, finished.Load())
}
