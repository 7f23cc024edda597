package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/onboarding"
)

func TestCreateAccount(t *testing.T) {
	env := newTestEnv(t)
	sess := env.completedSession(t)

	w := env.do(t, http.MethodPost, "/v1/accounts", map[string]string{
		"session_id": sess.ID,
		"full_name":  "Priya Kumari",
		"email":      "priya@example.com",
		"phone":      "+919876543210",
		"pan":        "abcde1234f",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody[struct {
		UserID   string                 `json:"user_id"`
		Profile  *model.UserProfile     `json:"profile"`
		Investor *model.InvestorProfile `json:"investor_profile"`
		Goal     *model.GoalRecord      `json:"goal"`
	}](t, w)
	require.NotEmpty(t, body.UserID)
	assert.Equal(t, "Priya Kumari", body.Profile.FullName)
	assert.Equal(t, "ABCDE1234F", body.Profile.PAN)
	assert.NotEmpty(t, body.Investor.ProfileType)
	require.NotNil(t, body.Goal)
	assert.True(t, body.Goal.IsPrimary)
	assert.Positive(t, body.Goal.MonthlySIP)

	// Answers landed against the new user.
	env.store.mu.Lock()
	stored := env.store.answers[body.UserID]
	env.store.mu.Unlock()
	assert.Len(t, stored, len(sess.Answers))

	// The session is spent.
	_, err := env.sessions.Get(context.Background(), sess.ID)
	assert.Error(t, err)

	// CRM push is async; give it a beat.
	assert.Eventually(t, func() bool {
		env.crm.mu.Lock()
		defer env.crm.mu.Unlock()
		return env.crm.pushes == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCreateAccountValidation(t *testing.T) {
	env := newTestEnv(t)
	sess := env.completedSession(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing name", map[string]string{"session_id": sess.ID, "email": "a@b.c"}, http.StatusBadRequest},
		{"missing email", map[string]string{"session_id": sess.ID, "full_name": "A"}, http.StatusBadRequest},
		{"unknown session", map[string]string{"session_id": "nope", "full_name": "A", "email": "a@b.c"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/v1/accounts", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCreateAccountRejectsIncompleteSession(t *testing.T) {
	env := newTestEnv(t)

	sess := onboarding.NewSession("", "")
	require.NoError(t, env.sessions.Put(context.Background(), sess))

	w := env.do(t, http.MethodPost, "/v1/accounts", map[string]string{
		"session_id": sess.ID,
		"full_name":  "Priya Kumari",
		"email":      "priya@example.com",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/dashboard/unknown-user", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	profile, err := env.store.UpsertUserProfile(context.Background(), &model.UserProfile{
		UserID:   "u-1",
		FullName: "Rahul Verma",
		Email:    "rahul@example.com",
	})
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/v1/dashboard/u-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decodeBody[model.Dashboard](t, w)
	require.NotNil(t, dash.Profile)
	assert.Equal(t, profile.FullName, dash.Profile.FullName)
}

func TestAddHolding(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.UpsertUserProfile(context.Background(), &model.UserProfile{
		UserID:   "u-1",
		FullName: "Rahul Verma",
		Email:    "rahul@example.com",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/v1/dashboard/u-1/holdings", map[string]any{
		"asset_class":     "equity",
		"name":            "Nifty 50 Index Fund",
		"category":        "index",
		"invested_amount": 150000,
		"current_value":   182000,
		"units":           512.4,
		"nav":             355.2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	holding := decodeBody[model.Holding](t, w)
	assert.NotEmpty(t, holding.ID)
	assert.Equal(t, "u-1", holding.UserID)
	assert.Equal(t, int64(32000), holding.Returns())

	// The dashboard now renders the position.
	w = env.do(t, http.MethodGet, "/v1/dashboard/u-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decodeBody[model.Dashboard](t, w)
	require.Len(t, dash.Holdings, 1)
	assert.Equal(t, "Nifty 50 Index Fund", dash.Holdings[0].Name)
}

func TestAddHoldingValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.UpsertUserProfile(context.Background(), &model.UserProfile{
		UserID: "u-1", FullName: "Rahul Verma", Email: "rahul@example.com",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing name", map[string]any{"asset_class": "equity"}, http.StatusBadRequest},
		{"missing asset class", map[string]any{"name": "Fund"}, http.StatusBadRequest},
		{"negative amount", map[string]any{
			"asset_class": "equity", "name": "Fund", "invested_amount": -1,
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/v1/dashboard/u-1/holdings", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAddHoldingUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/dashboard/nobody/holdings", map[string]any{
		"asset_class": "equity", "name": "Fund", "invested_amount": 1000, "current_value": 1000,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
