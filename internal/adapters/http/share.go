package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type shareRequest struct {
	RecipientID   string               `json:"recipient_id"`
	RecipientType domain.RecipientType `json:"recipient_type"`
}

func (rt *Router) listRecipients(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	recipients, err := rt.shares.Recipients(r.Context(), user, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if recipients == nil {
		recipients = []domain.Recipient{}
	}
	writeJSON(w, http.StatusOK, recipients)
}

func (rt *Router) shareUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input", "invalid json body")
		return
	}
	if req.RecipientID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input", "recipient_id is required")
		return
	}

	grant, err := rt.shares.Share(r.Context(), user, id, req.RecipientID, req.RecipientType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

func (rt *Router) unshareUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input", "invalid json body")
		return
	}
	if req.RecipientID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input", "recipient_id is required")
		return
	}

	if err := rt.shares.Unshare(r.Context(), user, id, req.RecipientID, req.RecipientType); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
