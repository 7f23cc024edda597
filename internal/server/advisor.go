package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/advisor"
)

type deltaEvent struct {
	Delta string `json:"delta"`
}

// handleAdvisorChat streams the advisor reply as server-sent events, one
// data frame per text delta, terminated by a [DONE] frame.
func (s *Server) handleAdvisorChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Advisor == nil {
		respondError(w, http.StatusServiceUnavailable, "advisor is not configured")
		return
	}

	var req advisor.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	started := false
	_, err := s.deps.Advisor.Chat(r.Context(), req, func(text string) error {
		payload, err := json.Marshal(deltaEvent{Delta: text})
		if err != nil {
			return eris.Wrap(err, "server: encode delta")
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return eris.Wrap(err, "server: write delta")
		}
		started = true
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Once bytes are on the wire the status line is gone; log and close.
		if started {
			zap.L().Warn("advisor stream aborted", zap.String("user_id", req.UserID), zap.Error(err))
			return
		}
		if eris.Is(err, advisor.ErrInvalidRequest) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("advisor chat failed", zap.String("user_id", req.UserID), zap.Error(err))
		respondError(w, http.StatusBadGateway, "advisor is temporarily unavailable")
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
