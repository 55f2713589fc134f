package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

func (rt *Router) listUploads(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	uploads, err := rt.uploads.List(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if uploads == nil {
		uploads = []domain.Upload{}
	}
	writeJSON(w, http.StatusOK, uploads)
}

func (rt *Router) createUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	upload, err := rt.uploads.Create(
		r.Context(),
		user,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.UploadCreated()
	}
	writeJSON(w, http.StatusCreated, upload)
}

func (rt *Router) getUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := rt.uploads.Get(r.Context(), user, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (rt *Router) deleteUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := rt.uploads.Delete(r.Context(), user, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func uploadIDFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.WrapError(domain.ErrInvalidInput, "parse upload id",
			fmt.Errorf("%q is not a valid upload id", raw))
	}
	return id, nil
}
