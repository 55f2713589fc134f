package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/sweetykitty777/sentiment-analyzer/internal/config"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/usecase"
	"github.com/sweetykitty777/sentiment-analyzer/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	verifier TokenVerifier
	identity *usecase.IdentityUseCase
	uploads  *usecase.UploadUseCase
	shares   *usecase.ShareUseCase
	checks   *usecase.CheckUseCase
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	verifier TokenVerifier,
	identity *usecase.IdentityUseCase,
	uploads *usecase.UploadUseCase,
	shares *usecase.ShareUseCase,
	checks *usecase.CheckUseCase,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		verifier: verifier,
		identity: identity,
		uploads:  uploads,
		shares:   shares,
		checks:   checks,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	// /check is public: no token required, nothing persisted.
	mux.HandleFunc("GET /api/v1/check", rt.checkSentiment)

	mux.Handle("GET /api/v1/users/me", rt.authenticated(rt.currentUser))

	mux.Handle("GET /api/v1/uploads", rt.authenticated(rt.listUploads))
	mux.Handle("POST /api/v1/uploads", rt.authenticated(rt.createUpload))
	mux.Handle("GET /api/v1/uploads/{id}", rt.authenticated(rt.getUpload))
	mux.Handle("DELETE /api/v1/uploads/{id}", rt.authenticated(rt.deleteUpload))
	mux.Handle("GET /api/v1/uploads/{id}/download", rt.authenticated(rt.downloadUpload))

	mux.Handle("GET /api/v1/uploads/{id}/share", rt.authenticated(rt.listRecipients))
	mux.Handle("POST /api/v1/uploads/{id}/share", rt.authenticated(rt.shareUpload))
	mux.Handle("DELETE /api/v1/uploads/{id}/share", rt.authenticated(rt.unshareUpload))

	var handler http.Handler = mux
	handler = rt.metricsMiddleware(handler)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 0)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
