package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/llm"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/migration"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/api"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/scheduler"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/account"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/advising"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
	"github.com/vfg2006/campaign-advisor-api/pkg/secret"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Formato e nível de log conforme APP_ENV e LOG_LEVEL
	logLevel := log.Setup(cfg.App.Env, cfg.App.LogLevel)
	logrus.WithFields(logrus.Fields{
		"env":   cfg.App.Env,
		"level": logLevel.String(),
	}).Info("Logger configurado")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := migration.Migrate(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := metrics.RegisterDBStats(pgConn.DB, "advisor"); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar métricas do pool de conexões")
	}

	box, err := secret.NewBox(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Chave de cifragem inválida")
	}

	connectionRepo := repository.NewConnectionRepository(pgConn, box)
	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	recommendationRepo := repository.NewRecommendationRepository(pgConn)
	auditRepo := repository.NewAuditRepository(pgConn)

	tokenManager := adsclient.NewTokenManager(cfg)
	adsIntegrator := googleads.New(adsclient.NewClient(cfg, tokenManager))

	orchestrator := syncing.NewOrchestrator(
		connectionRepo,
		accountRepo,
		campaignRepo,
		auditRepo,
		syncing.NewAccountResolver(adsIntegrator),
		adsIntegrator,
		syncing.OrchestratorConfig{
			LookbackDays:      cfg.CampaignSync.LookbackDays,
			MaxConcurrentJobs: cfg.CampaignSync.MaxConcurrentJobs,
		},
	)

	registry := providerRegistry(ctx, cfg)

	defaultProvider, err := domain.ParseProviderName(cfg.Consensus.DefaultProvider)
	if err != nil {
		logrus.WithField("provider", cfg.Consensus.DefaultProvider).Warn("Provedor padrão inválido, usando openai")
		defaultProvider = domain.ProviderOpenAI
	}

	adviceService := advising.NewService(
		advising.NewConsensusEngine(registry, defaultProvider, cfg.Consensus.JoinTimeout),
		registry,
		recommendationRepo,
		campaignRepo,
		auditRepo,
		cfg.Recommendation.BurnInDays,
	)

	accountService := account.NewService(connectionRepo, accountRepo, campaignRepo, orchestrator)
	authenticator := authenticating.NewService(cfg)

	campaignSyncService := scheduler.NewCampaignSyncService(orchestrator, adviceService, cfg)
	if err := campaignSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de campanhas")
	} else {
		logrus.Info("Agendador de sincronização de campanhas iniciado com sucesso")
	}
	defer campaignSyncService.Stop()

	server, err := api.New(cfg, authenticator, accountService, adviceService, campaignSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// providerRegistry registra apenas os provedores de IA com credencial configurada
func providerRegistry(ctx context.Context, cfg *config.Config) *advising.Registry {
	var generators []llm.Generator

	if cfg.OpenAI.APIKey != "" {
		generators = append(generators, llm.NewOpenAIClient(cfg.OpenAI))
	}

	if cfg.Anthropic.APIKey != "" {
		generators = append(generators, llm.NewAnthropicClient(cfg.Anthropic))
	}

	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			logrus.WithError(err).Error("Erro ao criar cliente Gemini, provedor desabilitado")
		} else {
			generators = append(generators, gemini)
		}
	}

	registry := advising.NewRegistry(cfg.Consensus.ProviderTimeout, generators...)

	logrus.WithFields(logrus.Fields{
		"providers": registry.Len(),
	}).Info("Provedores de IA registrados")

	return registry
}
