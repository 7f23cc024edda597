package salesforce

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient records calls and returns canned results.
type mockClient struct {
	lastSOQL   string
	lastObject string
	lastRecord map[string]any
	lastID     string

	queryRecords []Lead
	insertID     string
	queryErr     error
	insertErr    error
	updateErr    error
}

func (m *mockClient) Query(_ context.Context, soql string, out any) error {
	m.lastSOQL = soql
	if m.queryErr != nil {
		return m.queryErr
	}
	result := out.(*QueryResult[Lead])
	result.Records = m.queryRecords
	return nil
}

func (m *mockClient) InsertOne(_ context.Context, sObjectName string, record map[string]any) (string, error) {
	m.lastObject = sObjectName
	m.lastRecord = record
	return m.insertID, m.insertErr
}

func (m *mockClient) UpdateOne(_ context.Context, sObjectName string, id string, fields map[string]any) error {
	m.lastObject = sObjectName
	m.lastID = id
	m.lastRecord = fields
	return m.updateErr
}

func TestCreateLead(t *testing.T) {
	mc := &mockClient{insertID: "00Q000000000001"}

	id, err := CreateLead(context.Background(), mc, map[string]any{
		"LastName": "Sharma",
		"Company":  "Individual",
		"Email":    "priya@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "00Q000000000001", id)
	assert.Equal(t, "Lead", mc.lastObject)
	assert.Equal(t, "priya@example.com", mc.lastRecord["Email"])
}

func TestCreateLead_RequiredFields(t *testing.T) {
	mc := &mockClient{}

	_, err := CreateLead(context.Background(), mc, map[string]any{"Company": "Individual"})
	assert.ErrorContains(t, err, "LastName is required")

	_, err = CreateLead(context.Background(), mc, map[string]any{"LastName": "Sharma"})
	assert.ErrorContains(t, err, "Company is required")
}

func TestCreateLead_InsertError(t *testing.T) {
	mc := &mockClient{insertErr: eris.New("boom")}

	_, err := CreateLead(context.Background(), mc, map[string]any{
		"LastName": "Sharma", "Company": "Individual",
	})
	assert.ErrorContains(t, err, "sf: create lead")
}

func TestUpdateLead(t *testing.T) {
	mc := &mockClient{}

	err := UpdateLead(context.Background(), mc, "00Q1", map[string]any{"Status": "Working"})
	require.NoError(t, err)
	assert.Equal(t, "Lead", mc.lastObject)
	assert.Equal(t, "00Q1", mc.lastID)
}

func TestUpdateLead_Validation(t *testing.T) {
	mc := &mockClient{}

	assert.ErrorContains(t, UpdateLead(context.Background(), mc, "", map[string]any{"a": 1}), "lead id is required")
	assert.ErrorContains(t, UpdateLead(context.Background(), mc, "00Q1", nil), "no fields to update")
}

func TestFindLeadByEmail(t *testing.T) {
	mc := &mockClient{queryRecords: []Lead{{ID: "00Q1", Email: "priya@example.com"}}}

	lead, err := FindLeadByEmail(context.Background(), mc, "priya@example.com")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "00Q1", lead.ID)
	assert.Contains(t, mc.lastSOQL, "FROM Lead WHERE Email = 'priya@example.com'")
}

func TestFindLeadByEmail_NotFound(t *testing.T) {
	mc := &mockClient{}

	lead, err := FindLeadByEmail(context.Background(), mc, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestFindLeadByEmail_EscapesQuotes(t *testing.T) {
	mc := &mockClient{}

	_, err := FindLeadByEmail(context.Background(), mc, "o'brien@example.com")
	require.NoError(t, err)
	assert.Contains(t, mc.lastSOQL, `o\'brien@example.com`)
}

func TestFindLeadByEmail_EmptyEmail(t *testing.T) {
	_, err := FindLeadByEmail(context.Background(), &mockClient{}, "")
	assert.Error(t, err)
}
