package adapthttp

import (
	"net/http"
	"time"

	"dietlog/internal/domain"
)

func (s *Server) handleProgressToday(w http.ResponseWriter, r *http.Request) {
	s.writeDayProgress(w, r, domain.LocalDay(time.Now()))
}

func (s *Server) handleProgressDay(w http.ResponseWriter, r *http.Request) {
	s.writeDayProgress(w, r, dayQuery(r))
}

func (s *Server) writeDayProgress(w http.ResponseWriter, r *http.Request, day string) {
	snap, err := s.svc.Progress.Day(r.Context(), userFromContext(r).ID, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": day, "snapshot": snap})
}

func (s *Server) handleProgressDaily(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 30)
	points, err := s.svc.Progress.Daily(r.Context(), userFromContext(r).ID, days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": len(points), "items": points})
}

func (s *Server) handleProgressBody(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 90)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}
	points, err := s.svc.Progress.Body(r.Context(), userFromContext(r).ID, days, unit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":  len(points),
		"unit":  unit,
		"today": domain.LocalDay(time.Now()),
		"items": points,
	})
}
