package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

var (
	ErrSchedulerAlreadyStarted = errors.New("scheduler already started")
	ErrSyncAlreadyRunning      = errors.New("sync already running")
	ErrSyncPanic               = errors.New("sync pass panicked")
)

const (
	triggerScheduled = "scheduled"
	triggerManual    = "manual"
)

// RecommendationPruner aplica a política de retenção das recomendações
type RecommendationPruner interface {
	PruneOlderThan(ctx context.Context, days int) (int64, error)
}

// CampaignSyncConfig representa a configuração do agendador de sincronização de campanhas
type CampaignSyncConfig struct {
	At            string
	SyncEnabled   bool
	RetentionDays int
}

// CampaignSyncService arma a sincronização diária de campanhas e aceita disparos manuais.
// Uma passada por vez: uma segunda passada enquanto outra roda é rejeitada.
type CampaignSyncService struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	config    CampaignSyncConfig
	syncer    syncing.Syncer
	pruner    RecommendationPruner
	now       func() time.Time

	mu                  sync.Mutex
	started             bool
	state               domain.SchedulerState
	status              string
	baseCtx             context.Context
	lastSyncStartedAt   *time.Time
	lastSyncCompletedAt *time.Time
}

func NewCampaignSyncService(
	syncer syncing.Syncer,
	pruner RecommendationPruner,
	appConfig *config.Config,
) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		At:            appConfig.CampaignSync.At,
		SyncEnabled:   appConfig.CampaignSync.Enabled,
		RetentionDays: appConfig.Recommendation.RetentionDays,
	}

	logrus.WithFields(logrus.Fields{
		"sync_at":             syncConfig.At,
		"sync_enabled":        syncConfig.SyncEnabled,
		"retention_days":      syncConfig.RetentionDays,
		"lookback_days":       appConfig.CampaignSync.LookbackDays,
		"max_concurrent_jobs": appConfig.CampaignSync.MaxConcurrentJobs,
	}).Info("Configuração do agendador de campanhas carregada")

	return newCampaignSyncService(syncer, pruner, syncConfig)
}

func newCampaignSyncService(syncer syncing.Syncer, pruner RecommendationPruner, syncConfig CampaignSyncConfig) *CampaignSyncService {
	return &CampaignSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		syncer:    syncer,
		pruner:    pruner,
		now:       time.Now,
		state:     domain.SchedulerIdle,
		status:    domain.SyncStatusScheduled,
		baseCtx:   context.Background(),
	}
}

// Start arma o job diário. Chamar duas vezes retorna ErrSchedulerAlreadyStarted.
func (s *CampaignSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de campanhas desabilitada por configuração")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrSchedulerAlreadyStarted
	}

	logrus.WithField("at", s.config.At).Info("Iniciando agendador de sincronização de campanhas")

	job, err := s.scheduler.Every(1).Day().At(s.config.At).Do(s.runScheduled)
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de campanhas: %w", err)
	}

	s.job = job
	s.baseCtx = ctx
	s.started = true
	s.state = domain.SchedulerWaiting

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de campanhas")
		s.Stop()
	}()

	return nil
}

// Stop desarma o job; uma passada em andamento termina normalmente
func (s *CampaignSyncService) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}

	s.started = false
	s.job = nil
	if s.state == domain.SchedulerWaiting {
		s.state = domain.SchedulerIdle
	}
	s.mu.Unlock()

	s.scheduler.Stop()
	s.scheduler.Clear()
}

func (s *CampaignSyncService) State() domain.SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TriggerManualSync executa uma passada de forma síncrona, sem alterar o horário armado.
// A passada não é cancelada junto com o ctx de quem a disparou; os valores do ctx
// (correlation_id, user_id) seguem nos logs.
func (s *CampaignSyncService) TriggerManualSync(ctx context.Context) domain.ManualSyncResult {
	ctx = context.WithoutCancel(ctx)
	log.ForContext(ctx).Info("Iniciando sincronização manual de campanhas")

	report, err := s.runPass(ctx, triggerManual)
	if err != nil {
		if errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.Info("Sincronização de campanhas já em andamento, ignorando solicitação manual")
			return domain.ManualSyncResult{Success: false, Message: ErrSyncAlreadyRunning.Error()}
		}

		return domain.ManualSyncResult{Success: false, Message: fmt.Sprintf("sync failed: %s", err.Error())}
	}

	accounts := report.SyncedAccounts
	campaigns := report.SyncedCampaigns

	return domain.ManualSyncResult{
		Success:         true,
		Message:         "sync completed",
		SyncedUsers:     report.SyncedIdentities,
		SyncedAccounts:  &accounts,
		SyncedCampaigns: &campaigns,
	}
}

// GetStatus retorna o status atual do agendador
func (s *CampaignSyncService) GetStatus() domain.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := domain.SyncStatus{
		LastSync: s.lastSyncCompletedAt,
		Status:   s.status,
		State:    s.state,
	}

	if s.started {
		var next time.Time
		if s.job != nil {
			next = s.job.NextRun()
		}
		if next.IsZero() {
			if fire, err := nextFireTime(s.now(), s.config.At); err == nil {
				next = fire
			}
		}
		status.NextSync = &next
	}

	return status
}

// runScheduled é o corpo do job diário; a retenção roda após cada passada bem-sucedida
func (s *CampaignSyncService) runScheduled() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if _, err := s.runPass(ctx, triggerScheduled); err != nil {
		if errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.Info("Sincronização de campanhas já em andamento, ignorando disparo agendado")
		}
		return
	}

	s.pruneRecommendations(ctx)
}

// runPass garante uma passada por vez e converte panic em erro, mantendo o job armado
func (s *CampaignSyncService) runPass(ctx context.Context, trigger string) (report *domain.SyncReport, err error) {
	s.mu.Lock()
	if s.state == domain.SchedulerRunning {
		s.mu.Unlock()
		metrics.SyncPassesTotal.WithLabelValues(trigger, "rejected").Inc()
		return nil, ErrSyncAlreadyRunning
	}
	startedAt := s.now()
	s.state = domain.SchedulerRunning
	s.lastSyncStartedAt = &startedAt
	s.mu.Unlock()

	ctx, passID := log.WithCorrelationID(ctx, "")
	ctx = log.WithFields(ctx, log.Fields{"trigger": trigger, "sync_pass_id": passID})
	logger := log.ForContext(ctx)

	logger.Info("Iniciando passada de sincronização de campanhas")

	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("%w: %v", ErrSyncPanic, r)
		}

		finishedAt := s.now()
		outcome := "success"

		s.mu.Lock()
		if err != nil {
			outcome = "error"
			s.status = domain.SyncStatusError
		} else {
			s.status = domain.SyncStatusScheduled
			s.lastSyncCompletedAt = &finishedAt
		}

		if s.started {
			s.state = domain.SchedulerWaiting
		} else {
			s.state = domain.SchedulerIdle
		}
		s.mu.Unlock()

		metrics.SyncPassesTotal.WithLabelValues(trigger, outcome).Inc()
		metrics.SyncPassDuration.Observe(finishedAt.Sub(startedAt).Seconds())

		if err != nil {
			logger.WithField("error", err.Error()).Error("Erro na passada de sincronização de campanhas")
			return
		}

		logger.WithFields(log.Fields{
			"duration":         finishedAt.Sub(startedAt).String(),
			"synced_accounts":  report.SyncedAccounts,
			"synced_campaigns": report.SyncedCampaigns,
		}).Info("Passada de sincronização de campanhas concluída")
	}()

	report, err = s.syncer.Run(ctx)
	if err == nil && report == nil {
		report = &domain.SyncReport{}
	}

	return report, err
}

func (s *CampaignSyncService) pruneRecommendations(ctx context.Context) {
	if s.pruner == nil || s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.pruner.PruneOlderThan(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao aplicar política de retenção de recomendações")
		return
	}

	logrus.WithFields(logrus.Fields{
		"retention_days": s.config.RetentionDays,
		"removed":        removed,
	}).Info("Política de retenção de recomendações aplicada")
}

// nextFireTime calcula o próximo HH:MM a partir de now, no fuso de now
func nextFireTime(now time.Time, at string) (time.Time, error) {
	clock, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, err
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, nil
}
