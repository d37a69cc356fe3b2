package adapthttp

import (
	"net/http"
	"strconv"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// handlePlanList lists plans for ?client=, defaulting to the caller.
func (s *Server) handlePlanList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	clientID := user.ID
	if v := r.URL.Query().Get("client"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, domain.ErrValidation)
			return
		}
		clientID = id
	}
	items, err := s.svc.Plans.ListForClient(r.Context(), user, clientID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientID int64  `json:"clientId"`
		Name     string `json:"name"`
		Day      string `json:"day"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.svc.Plans.Create(r.Context(), userFromContext(r), body.ClientID, body.Name, body.Day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"plan": p})
}

func (s *Server) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.svc.Plans.Get(r.Context(), userFromContext(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePlanAddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		ProductID int64           `json:"productId"`
		Grams     decimal.Decimal `json:"grams"`
		Meal      domain.Meal     `json:"meal"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.svc.Plans.AddItem(r.Context(), userFromContext(r), id, body.ProductID, body.Grams, body.Meal)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePlanRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.svc.Plans.RemoveItem(r.Context(), userFromContext(r), id, itemID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
