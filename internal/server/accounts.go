package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

type createAccountRequest struct {
	SessionID string `json:"session_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	PAN       string `json:"pan,omitempty"`
}

// handleCreateAccount is the one-time write at the end of onboarding: the
// profile, the scored investor profile, the raw answers, and the primary
// goal with its recommended plan all land in one request. The CRM push is
// fire and forget.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "full_name and email are required")
		return
	}

	sess, err := s.deps.Sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if !sess.Completed {
		respondError(w, http.StatusConflict, "questionnaire not completed")
		return
	}

	result, rec, err := s.machine.Result(sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not compute result")
		return
	}

	userID := uuid.NewString()
	ctx := r.Context()

	profile, err := s.deps.Store.UpsertUserProfile(ctx, &model.UserProfile{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		PAN:      strings.ToUpper(strings.TrimSpace(req.PAN)),
	})
	if err != nil {
		zap.L().Error("profile write failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	investor, err := s.deps.Store.InsertInvestorProfile(ctx, &model.InvestorProfile{
		UserID:      userID,
		ProfileType: result.Archetype,
		Confidence:  result.Confidence,
		Scores:      result.Scores,
	})
	if err != nil {
		zap.L().Error("investor profile write failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	if err := s.deps.Store.AppendAnswers(ctx, userID, sess.Answers); err != nil {
		zap.L().Error("answers write failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	goal, err := s.deps.Store.InsertGoal(ctx, &model.GoalRecord{
		UserID:               userID,
		GoalName:             rec.GoalName,
		GoalType:             rec.GoalType,
		TargetAmount:         rec.TargetAmount,
		TimelineYears:        rec.TimelineYears,
		MonthlySIP:           rec.MonthlySIP,
		IsPrimary:            true,
		RecommendedPortfolio: &rec.Portfolio,
	})
	if err != nil {
		zap.L().Error("goal write failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	if s.deps.CRM != nil {
		s.deps.CRM.PushLeadAsync(profile, investor, goal)
	}

	// The session has served its purpose; expiry would clean it up anyway.
	if err := s.deps.Sessions.Delete(ctx, sess.ID); err != nil {
		zap.L().Debug("session cleanup failed", zap.String("id", sess.ID), zap.Error(err))
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user_id":          userID,
		"profile":          profile,
		"investor_profile": investor,
		"goal":             goal,
	})
}

type addHoldingRequest struct {
	AssetClass     string  `json:"asset_class"`
	Name           string  `json:"name"`
	Category       string  `json:"category,omitempty"`
	InvestedAmount int64   `json:"invested_amount"`
	CurrentValue   int64   `json:"current_value"`
	Units          float64 `json:"units,omitempty"`
	NAV            float64 `json:"nav,omitempty"`
}

// handleAddHolding records an investment against a user so the dashboard
// and the advisor's portfolio context have positions to show. Execution
// happens at the fund house; this is bookkeeping only.
func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req addHoldingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AssetClass) == "" {
		respondError(w, http.StatusBadRequest, "name and asset_class are required")
		return
	}
	if req.InvestedAmount < 0 || req.CurrentValue < 0 || req.Units < 0 || req.NAV < 0 {
		respondError(w, http.StatusBadRequest, "amounts must not be negative")
		return
	}

	prof, err := s.deps.Store.GetUserProfile(r.Context(), userID)
	if err != nil {
		zap.L().Error("profile read failed", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not record holding")
		return
	}
	if prof == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	holding, err := s.deps.Store.InsertHolding(r.Context(), &model.Holding{
		UserID:         userID,
		AssetClass:     req.AssetClass,
		Name:           req.Name,
		Category:       req.Category,
		InvestedAmount: req.InvestedAmount,
		CurrentValue:   req.CurrentValue,
		Units:          req.Units,
		NAV:            req.NAV,
	})
	if err != nil {
		zap.L().Error("holding write failed", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not record holding")
		return
	}
	respondJSON(w, http.StatusCreated, holding)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	dash, err := s.deps.Store.GetDashboard(r.Context(), userID)
	if err != nil {
		zap.L().Error("dashboard read failed", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	if dash == nil || dash.Profile == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, dash)
}
