package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/onboarding"
)

// sessionState is the wire view of a session: the current question plus
// progress, so the client never re-derives branching.
type sessionState struct {
	ID        string          `json:"id"`
	Question  *model.Question `json:"question,omitempty"`
	Step      int             `json:"step"`
	Total     int             `json:"total"`
	Completed bool            `json:"completed"`
	Answers   []model.Answer  `json:"answers"`
}

func stateOf(s *onboarding.Session) sessionState {
	step, total := s.Progress()
	state := sessionState{
		ID:        s.ID,
		Step:      step,
		Total:     total,
		Completed: s.Completed,
		Answers:   s.Answers,
	}
	if q, ok := s.Current(); ok {
		state.Question = &q
	}
	return state
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceType string `json:"device_type"`
		Referrer   string `json:"referrer"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sess := onboarding.NewSession(req.DeviceType, req.Referrer)
	s.machine.Start(sess)

	if err := s.deps.Sessions.Put(r.Context(), sess); err != nil {
		zap.L().Error("session save failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	respondJSON(w, http.StatusCreated, stateOf(sess))
}

// loadSession fetches the session or writes the 404 itself.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*onboarding.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		if eris.Is(err, onboarding.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
		} else {
			zap.L().Error("session load failed", zap.String("id", id), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "could not load session")
		}
		return nil, false
	}
	return sess, true
}

// saveAndRespond persists the mutated session and returns its state.
func (s *Server) saveAndRespond(w http.ResponseWriter, r *http.Request, sess *onboarding.Session) {
	if err := s.deps.Sessions.Put(r.Context(), sess); err != nil {
		zap.L().Error("session save failed", zap.String("id", sess.ID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not save session")
		return
	}
	respondJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var a model.Answer
	if err := decodeJSON(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.machine.Select(sess, a); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveAndRespond(w, r, sess)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.machine.Advance(sess); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveAndRespond(w, r, sess)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.machine.Back(sess); err != nil {
		if eris.Is(err, onboarding.ErrAtStart) {
			respondError(w, http.StatusConflict, "already at the first question")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveAndRespond(w, r, sess)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.machine.Restart(sess)
	s.saveAndRespond(w, r, sess)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if !sess.Completed {
		respondError(w, http.StatusConflict, "questionnaire not completed")
		return
	}

	result, rec, err := s.machine.Result(sess)
	if err != nil {
		zap.L().Error("result computation failed", zap.String("id", sess.ID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not compute result")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"profile":        result,
		"recommendation": rec,
	})
}
