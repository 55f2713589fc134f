package httpadapter

import (
	"net/http"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type checkResponse struct {
	Results []domain.CheckResult `json:"results"`
}

func (rt *Router) checkSentiment(w http.ResponseWriter, r *http.Request) {
	texts := r.URL.Query()["text"]

	results, err := rt.checks.Check(r.Context(), texts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.CheckServed()
	}
	writeJSON(w, http.StatusOK, checkResponse{Results: results})
}
