package adapthttp

import (
	"net/http"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

type logRequest struct {
	ProductID int64           `json:"productId"`
	DishID    int64           `json:"dishId"`
	Grams     decimal.Decimal `json:"grams"`
	Meal      domain.Meal     `json:"meal"`
	LoggedAt  time.Time       `json:"loggedAt"`
}

func (s *Server) handleDiaryDay(w http.ResponseWriter, r *http.Request) {
	day := dayQuery(r)
	items, err := s.svc.Diary.ListDay(r.Context(), userFromContext(r).ID, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": day, "items": items})
}

func (s *Server) handleDiaryLogProduct(w http.ResponseWriter, r *http.Request) {
	var body logRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e, err := s.svc.Diary.LogProduct(r.Context(), userFromContext(r).ID, body.ProductID, body.Grams, body.Meal, body.LoggedAt)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": e})
}

func (s *Server) handleDiaryLogDish(w http.ResponseWriter, r *http.Request) {
	var body logRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e, err := s.svc.Diary.LogDish(r.Context(), userFromContext(r).ID, body.DishID, body.Grams, body.Meal, body.LoggedAt)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": e})
}

func (s *Server) handleDiaryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Diary.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
