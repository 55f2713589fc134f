package bootstrap

import (
	"context"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/config"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/usecase"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/identity/oidc"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/model/remote"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/parser"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/queue/nats"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/repository/postgres"
	"github.com/sweetykitty777/sentiment-analyzer/internal/infrastructure/resilience"
	"github.com/sweetykitty777/sentiment-analyzer/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Verifier *oidc.Verifier

	IdentityUC *usecase.IdentityUseCase
	UploadUC   *usecase.UploadUseCase
	ShareUC    *usecase.ShareUseCase
	CheckUC    *usecase.CheckUseCase
	ProcessUC  *usecase.ProcessUploadUseCase

	WorkerMetrics *metrics.WorkerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	users := postgres.NewUserRepository(db)
	uploads := postgres.NewUploadRepository(db)
	access := postgres.NewAccessRepository(db)

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	verifier, err := oidc.NewVerifier(oidc.Config{
		BaseURL: cfg.OIDCBaseURL,
		Issuer:  cfg.OIDCIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("init token verifier: %w", err)
	}

	classifier := remote.New(cfg.ModelURL, remote.WithResilienceExecutor(executor))
	contentParser := parser.New()
	workerMetrics := metrics.NewWorkerMetrics("worker")

	evaluator := usecase.NewAccessEvaluator(access)

	return &App{
		Config:   cfg,
		Queue:    queue,
		Verifier: verifier,

		IdentityUC: usecase.NewIdentityUseCase(users),
		UploadUC:   usecase.NewUploadUseCase(uploads, contentParser, queue, evaluator),
		ShareUC:    usecase.NewShareUseCase(uploads, users, access, evaluator),
		CheckUC:    usecase.NewCheckUseCase(classifier),
		ProcessUC:  usecase.NewProcessUploadUseCase(uploads, classifier, workerMetrics),

		WorkerMetrics: workerMetrics,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
