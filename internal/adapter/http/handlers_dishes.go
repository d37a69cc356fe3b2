package adapthttp

import (
	"net/http"

	"github.com/shopspring/decimal"
)

func (s *Server) handleDishList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Dishes.List(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleDishCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.svc.Dishes.Create(r.Context(), userFromContext(r).ID, body.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"dish": d})
}

func (s *Server) handleDishGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.svc.Dishes.Get(r.Context(), userFromContext(r).ID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dish": d, "per100g": d.Per100()})
}

func (s *Server) handleDishDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Dishes.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDishAddIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		ProductID int64           `json:"productId"`
		Grams     decimal.Decimal `json:"grams"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.svc.Dishes.AddIngredient(r.Context(), userFromContext(r).ID, id, body.ProductID, body.Grams)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dish": d})
}

func (s *Server) handleDishRemoveIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ingredientID, err := pathID(r, "ingredientID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.svc.Dishes.RemoveIngredient(r.Context(), userFromContext(r).ID, id, ingredientID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dish": d})
}
