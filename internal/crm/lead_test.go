package crm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/resilience"
	"github.com/ameya-wealth/wealth-api/pkg/salesforce"
)

type fakeSF struct {
	mu sync.Mutex

	leads      []salesforce.Lead
	insertID   string
	inserted   map[string]any
	updatedID  string
	updated    map[string]any
	queryErrs  []error // consumed one per call, then nil
	queryCalls int
	insertErr  error
}

func (f *fakeSF) Query(_ context.Context, _ string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		return err
	}
	result := out.(*salesforce.QueryResult[salesforce.Lead])
	result.Records = f.leads
	return nil
}

func (f *fakeSF) InsertOne(_ context.Context, _ string, record map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = record
	return f.insertID, nil
}

func (f *fakeSF) UpdateOne(_ context.Context, _ string, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedID = id
	f.updated = fields
	return nil
}

func sampleProfile() *model.UserProfile {
	return &model.UserProfile{
		UserID:   "user-1",
		FullName: "Priya Kumari Sharma",
		Email:    "priya@example.com",
		Phone:    "+919876543210",
	}
}

func TestPushLeadCreatesWhenNew(t *testing.T) {
	sf := &fakeSF{insertID: "00Q1"}
	p := NewPusher(sf)

	investor := &model.InvestorProfile{ProfileType: model.ArchetypeWealthBuilder}
	goal := &model.GoalRecord{GoalType: model.GoalRetirement, TargetAmount: 50_000_000, MonthlySIP: 50_000}

	id, err := p.PushLead(context.Background(), sampleProfile(), investor, goal)
	require.NoError(t, err)
	assert.Equal(t, "00Q1", id)

	assert.Equal(t, "Priya Kumari", sf.inserted["FirstName"])
	assert.Equal(t, "Sharma", sf.inserted["LastName"])
	assert.Equal(t, "Individual", sf.inserted["Company"])
	assert.Equal(t, "Onboarding", sf.inserted["LeadSource"])
	assert.Equal(t, "wealth-builder", sf.inserted["Investor_Profile__c"])
	assert.Equal(t, "retirement", sf.inserted["Goal_Type__c"])
	assert.Equal(t, int64(50_000), sf.inserted["Monthly_SIP__c"])
}

func TestPushLeadUpdatesExisting(t *testing.T) {
	sf := &fakeSF{leads: []salesforce.Lead{{ID: "00Q9", Email: "priya@example.com"}}}
	p := NewPusher(sf)

	id, err := p.PushLead(context.Background(), sampleProfile(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "00Q9", id)
	assert.Equal(t, "00Q9", sf.updatedID)
	assert.Nil(t, sf.inserted)
}

func TestPushLeadRequiresEmail(t *testing.T) {
	p := NewPusher(&fakeSF{})

	_, err := p.PushLead(context.Background(), &model.UserProfile{FullName: "X"}, nil, nil)
	assert.Error(t, err)

	_, err = p.PushLead(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestPushLeadRetriesTransientErrors(t *testing.T) {
	sf := &fakeSF{insertID: "00Q1"}
	sf.queryErrs = []error{
		resilience.NewTransientError(eris.New("throttled"), 503),
	}
	p := NewPusher(sf)
	p.retry.MaxAttempts = 3
	p.retry.InitialBackoff = time.Millisecond
	p.retry.MaxBackoff = time.Millisecond

	id, err := p.PushLead(context.Background(), sampleProfile(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "00Q1", id)
	assert.Equal(t, 2, sf.queryCalls)
}

func TestPushLeadDoesNotRetryPermanentErrors(t *testing.T) {
	sf := &fakeSF{}
	sf.queryErrs = []error{
		eris.New("bad credentials"),
		eris.New("bad credentials"),
	}
	p := NewPusher(sf)
	p.retry.MaxAttempts = 3
	p.retry.InitialBackoff = time.Millisecond
	p.retry.MaxBackoff = time.Millisecond

	_, err := p.PushLead(context.Background(), sampleProfile(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, sf.queryCalls)
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		full, first, last string
	}{
		{"Priya Sharma", "Priya", "Sharma"},
		{"Priya Kumari Sharma", "Priya Kumari", "Sharma"},
		{"Madonna", "", "Madonna"},
		{"", "", "Unknown"},
	}
	for _, tc := range cases {
		first, last := splitName(tc.full)
		assert.Equal(t, tc.first, first, tc.full)
		assert.Equal(t, tc.last, last, tc.full)
	}
}
