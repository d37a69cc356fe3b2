package adapthttp

import (
	"net/http"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	today := domain.LocalDay(time.Now())
	entry, err := s.svc.Weight.GetTodayWeight(r.Context(), userFromContext(r).ID, today)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})
}

func (s *Server) handleWeightPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value decimal.Decimal `json:"value"`
		Unit  string          `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, today, err := s.svc.Weight.RecordWeight(r.Context(), userFromContext(r).ID, body.Value, body.Unit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 14)
	items, err := s.svc.Weight.ListRecent(r.Context(), userFromContext(r).ID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	deleted, entry, today, err := s.svc.Weight.UndoLast(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted, "today": today, "entry": entry})
}
