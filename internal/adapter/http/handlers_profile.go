package adapthttp

import (
	"net/http"

	"dietlog/internal/app"
)

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	p, err := s.svc.Profiles.Get(r.Context(), user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	var in app.ProfileInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r)
	p, err := s.svc.Profiles.Save(r.Context(), user.ID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleTargetsPreview(w http.ResponseWriter, r *http.Request) {
	var in app.ProfileInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	targets, err := s.svc.Profiles.Preview(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"targets": targets})
}
