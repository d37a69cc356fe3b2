package adapthttp

import (
	"net/http"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	today := domain.LocalDay(time.Now())
	total, err := s.svc.Water.GetTodayTotal(r.Context(), userFromContext(r).ID, today)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "totalLiters": total})
}

func (s *Server) handleWaterEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeltaLiters decimal.Decimal `json:"deltaLiters"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.svc.Water.RecordEvent(r.Context(), userFromContext(r).ID, body.DeltaLiters)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleWaterRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 20)
	items, err := s.svc.Water.ListRecent(r.Context(), userFromContext(r).ID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWaterUndoLast(w http.ResponseWriter, r *http.Request) {
	undone, id, err := s.svc.Water.UndoLast(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "id": id})
}
