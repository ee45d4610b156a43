package syncing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

type OrchestratorConfig struct {
	LookbackDays      int
	MaxConcurrentJobs int
}

// Orchestrator concilia, para cada administrador conectado, as contas e campanhas
// da plataforma de anúncios com o banco local
type Orchestrator struct {
	connections repository.ConnectionRepository
	accounts    repository.AccountRepository
	campaigns   repository.CampaignRepository
	audit       repository.AuditRepository
	resolver    Resolver
	platform    AdsPlatform
	config      OrchestratorConfig
	now         func() time.Time
}

func NewOrchestrator(
	connections repository.ConnectionRepository,
	accounts repository.AccountRepository,
	campaigns repository.CampaignRepository,
	audit repository.AuditRepository,
	resolver Resolver,
	platform AdsPlatform,
	config OrchestratorConfig,
) *Orchestrator {
	if config.LookbackDays <= 0 {
		config.LookbackDays = 7
	}
	if config.MaxConcurrentJobs <= 0 {
		config.MaxConcurrentJobs = 1
	}

	return &Orchestrator{
		connections: connections,
		accounts:    accounts,
		campaigns:   campaigns,
		audit:       audit,
		resolver:    resolver,
		platform:    platform,
		config:      config,
		now:         time.Now,
	}
}

// Run executa um ciclo completo. Só retorna erro quando a lista de conexões
// não pode ser carregada; falhas de identidade ou conta ficam no relatório.
func (o *Orchestrator) Run(ctx context.Context) (*domain.SyncReport, error) {
	report := &domain.SyncReport{StartedAt: o.now()}

	connections, err := o.connections.ListActive(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar conexões ativas")
		return nil, NewSyncError(ErrListConnections, apiErrors.ErrDatabaseOperation, 0, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"identities":          len(connections),
		"max_concurrent_jobs": o.config.MaxConcurrentJobs,
	}).Info("Iniciando ciclo de sincronização de campanhas")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, o.config.MaxConcurrentJobs)
	)

	for _, conn := range connections {
		wg.Add(1)
		go func(conn *domain.AdsConnection) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			identityReport := o.runIdentity(ctx, conn)

			mu.Lock()
			report.Merge(identityReport)
			mu.Unlock()
		}(conn)
	}

	wg.Wait()

	report.FinishedAt = o.now()
	o.recordAudit(ctx, &domain.AuditEntry{
		Action: domain.AuditSyncCompleted,
		Details: map[string]any{
			"identities":         report.Identities,
			"synced_identities":  report.SyncedIdentities,
			"skipped_identities": report.SkippedIdentities,
			"failed_identities":  report.FailedIdentities,
			"synced_accounts":    report.SyncedAccounts,
			"failed_accounts":    report.FailedAccounts,
			"synced_campaigns":   report.SyncedCampaigns,
			"duration_seconds":   report.FinishedAt.Sub(report.StartedAt).Seconds(),
		},
		Timestamp: report.FinishedAt,
	})

	log.ForContext(ctx).WithFields(log.Fields{
		"identities":         report.Identities,
		"skipped_identities": report.SkippedIdentities,
		"failed_identities":  report.FailedIdentities,
		"synced_accounts":    report.SyncedAccounts,
		"failed_accounts":    report.FailedAccounts,
		"synced_campaigns":   report.SyncedCampaigns,
		"duration":           report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("Ciclo de sincronização de campanhas concluído")

	return report, nil
}

// runIdentity isola uma identidade do ciclo: erro ou panic viram falha da identidade
func (o *Orchestrator) runIdentity(ctx context.Context, conn *domain.AdsConnection) (report *domain.SyncReport) {
	defer func() {
		if r := recover(); r != nil {
			report = &domain.SyncReport{Identities: 1, FailedIdentities: 1}
			o.recordIdentityFailure(ctx, conn.UserID, fmt.Errorf("%w: panic: %v", ErrIdentitySync, r))
		}
	}()

	report, err := o.syncIdentity(ctx, conn, false)
	if err != nil {
		o.recordIdentityFailure(ctx, conn.UserID, err)
	}

	return report
}

// SyncUser sincroniza apenas o administrador informado. Diferente do ciclo, sempre
// descobre as contas, mesmo sem seleção, para que o dono tenha o que selecionar.
func (o *Orchestrator) SyncUser(ctx context.Context, userID int) (*domain.SyncReport, error) {
	conn, err := o.activeConnection(ctx, userID)
	if err != nil {
		return nil, err
	}

	report, err := o.syncIdentity(ctx, conn, true)
	if err != nil {
		o.recordIdentityFailure(ctx, userID, err)
		return report, err
	}

	return report, nil
}

// Refresh apaga as campanhas do usuário e sincroniza de novo
func (o *Orchestrator) Refresh(ctx context.Context, userID int) (*domain.SyncReport, error) {
	if _, err := o.activeConnection(ctx, userID); err != nil {
		return nil, err
	}

	removed, err := o.campaigns.DeleteByOwner(ctx, userID)
	if err != nil {
		return nil, NewSyncError(ErrClearCampaigns, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":           userID,
		"removed_campaigns": removed,
	}).Info("Campanhas removidas para nova sincronização")

	return o.SyncUser(ctx, userID)
}

// Disconnect desativa a conexão e remove contas e campanhas do usuário
func (o *Orchestrator) Disconnect(ctx context.Context, userID int) error {
	removedCampaigns, err := o.campaigns.DeleteByOwner(ctx, userID)
	if err != nil {
		return NewSyncError(ErrClearCampaigns, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	removedAccounts, err := o.accounts.DeleteByOwner(ctx, userID)
	if err != nil {
		return NewSyncError(ErrClearAccounts, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	if err := o.connections.Deactivate(ctx, userID); err != nil {
		return NewSyncError(ErrDeactivate, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	o.recordAudit(ctx, &domain.AuditEntry{
		UserID: &userID,
		Action: domain.AuditDisconnect,
		Details: map[string]any{
			"removed_campaigns": removedCampaigns,
			"removed_accounts":  removedAccounts,
		},
		Timestamp: o.now(),
	})

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":           userID,
		"removed_campaigns": removedCampaigns,
		"removed_accounts":  removedAccounts,
	}).Info("Conexão com a plataforma de anúncios encerrada")

	return nil
}

// SelectAccounts grava a seleção; só aceita contas cliente já conhecidas do usuário
func (o *Orchestrator) SelectAccounts(ctx context.Context, userID int, accountIDs []string) error {
	known, err := o.accounts.ListByOwner(ctx, userID)
	if err != nil {
		return NewSyncError(ErrSaveSelection, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	selectable := make(map[string]struct{}, len(known))
	for _, acc := range known {
		if !acc.IsManager {
			selectable[acc.AccountID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(accountIDs))
	seen := make(map[string]struct{}, len(accountIDs))
	for _, raw := range accountIDs {
		id := normalizeAccountID(raw)
		if _, ok := selectable[id]; !ok {
			return NewAccountSyncError(ErrAccountNotFound, apiErrors.ErrAccountNotFound, userID, id, "conta não pertence ao usuário")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := o.accounts.SetSelection(ctx, userID, ids); err != nil {
		return NewSyncError(ErrSaveSelection, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	return nil
}

func (o *Orchestrator) activeConnection(ctx context.Context, userID int) (*domain.AdsConnection, error) {
	conn, err := o.connections.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewSyncError(ErrLoadConnection, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	if conn == nil || !conn.Active {
		return nil, NewSyncError(ErrNoActiveConnection, apiErrors.ErrNoAdsConnection, userID, "")
	}

	return conn, nil
}

// syncIdentity processa uma identidade: seleção, resolução, busca e gravação por conta.
// As contas de uma identidade são processadas em sequência. Sem discover, uma identidade
// sem contas selecionadas é ignorada sem consultar a plataforma.
func (o *Orchestrator) syncIdentity(ctx context.Context, conn *domain.AdsConnection, discover bool) (*domain.SyncReport, error) {
	report := &domain.SyncReport{Identities: 1}
	ctx = log.WithFields(ctx, log.Fields{"user_id": conn.UserID})
	logger := log.ForContext(ctx)

	selected, err := o.accounts.ListSelectedAccountIDs(ctx, conn.UserID)
	if err != nil {
		report.FailedIdentities = 1
		return report, NewSyncError(ErrIdentitySync, apiErrors.ErrDatabaseOperation, conn.UserID, err.Error())
	}

	if len(selected) == 0 && !discover {
		logger.Debug("Nenhuma conta selecionada, identidade ignorada no ciclo")
		report.SkippedIdentities = 1
		return report, nil
	}

	resolution, err := o.resolver.Resolve(ctx, conn)
	if err != nil {
		report.FailedIdentities = 1
		return report, err
	}

	if err := o.storeResolution(ctx, conn, resolution); err != nil {
		report.FailedIdentities = 1
		return report, NewSyncError(ErrIdentitySync, apiErrors.ErrDatabaseOperation, conn.UserID, err.Error())
	}

	if len(selected) == 0 {
		logger.Debug("Nenhuma conta selecionada, pulando sincronização de campanhas")
		report.SyncedIdentities = 1
		return report, nil
	}

	sort.Strings(selected)
	window := domain.TrailingDays(o.now(), o.config.LookbackDays)

	for _, accountID := range selected {
		if ctx.Err() != nil {
			report.FailedIdentities = 1
			return report, NewSyncError(ErrIdentitySync, apiErrors.ErrInternalServer, conn.UserID, ctx.Err().Error())
		}

		if !resolution.Contains(accountID) {
			logger.WithField("account_id", accountID).
				Info("Conta selecionada não apareceu na hierarquia, sincronizando mesmo assim")
		}

		count, err := o.syncAccount(ctx, conn, accountID, window)
		if err != nil {
			report.FailedAccounts++
			o.recordAccountFailure(ctx, conn.UserID, accountID, err)
			continue
		}

		report.SyncedAccounts++
		report.SyncedCampaigns += count
	}

	report.SyncedIdentities = 1
	return report, nil
}

func (o *Orchestrator) syncAccount(ctx context.Context, conn *domain.AdsConnection, accountID string, window domain.DateWindow) (int, error) {
	rows, err := o.platform.QueryCampaigns(ctx, conn, accountID, window)
	if err != nil {
		return 0, NewAccountSyncError(ErrAccountFetch, apiErrors.ErrExternalService, conn.UserID, accountID, err.Error())
	}

	syncedAt := o.now()
	campaigns := make([]*domain.Campaign, 0, len(rows))
	for _, row := range rows {
		campaigns = append(campaigns, NormalizeCampaign(row, accountID, conn.UserID, syncedAt))
	}

	if err := o.campaigns.UpsertAccountCampaigns(ctx, conn.UserID, accountID, campaigns); err != nil {
		return 0, NewAccountSyncError(ErrAccountUpsert, apiErrors.ErrDatabaseOperation, conn.UserID, accountID, err.Error())
	}

	metrics.CampaignsUpsertedTotal.Add(float64(len(campaigns)))

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"campaigns":  len(campaigns),
	}).Debug("Campanhas da conta sincronizadas")

	return len(campaigns), nil
}

// storeResolution grava as contas resolvidas. Uma resolução degradada só é gravada
// quando o usuário ainda não tem contas: não pode rebaixar uma raiz gerenciadora conhecida.
func (o *Orchestrator) storeResolution(ctx context.Context, conn *domain.AdsConnection, resolution *domain.AccountResolution) error {
	if resolution.Degraded {
		known, err := o.accounts.ListByOwner(ctx, conn.UserID)
		if err != nil {
			return err
		}
		if len(known) > 0 {
			log.ForContext(ctx).WithField("known_accounts", len(known)).
				Warn("Hierarquia indisponível, mantendo as contas já conhecidas")
			return nil
		}
	}

	return o.accounts.UpsertAccounts(ctx, o.accountsToStore(conn, resolution))
}

// accountsToStore inclui a conta raiz como gerenciadora quando há filhas
func (o *Orchestrator) accountsToStore(conn *domain.AdsConnection, resolution *domain.AccountResolution) []*domain.ExternalAccount {
	accounts := make([]*domain.ExternalAccount, 0, len(resolution.LeafAccounts)+1)

	if resolution.IsManager {
		rootID := normalizeAccountID(conn.RootAccountID)
		accounts = append(accounts, &domain.ExternalAccount{
			AccountID:   rootID,
			OwnerUserID: conn.UserID,
			DisplayName: rootID,
			IsManager:   true,
			IsPrimary:   true,
		})
	}

	return append(accounts, resolution.LeafAccounts...)
}

func (o *Orchestrator) recordIdentityFailure(ctx context.Context, userID int, err error) {
	metrics.SyncFailuresTotal.WithLabelValues("identity").Inc()

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id": userID,
		"error":   err.Error(),
	}).Error("Erro ao sincronizar identidade")

	details := map[string]any{"error": err.Error()}
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		details["code"] = syncErr.Code
	}

	o.recordAudit(ctx, &domain.AuditEntry{
		UserID:    &userID,
		Action:    domain.AuditSyncError,
		Details:   details,
		Timestamp: o.now(),
	})
}

func (o *Orchestrator) recordAccountFailure(ctx context.Context, userID int, accountID string, err error) {
	metrics.SyncFailuresTotal.WithLabelValues("account").Inc()

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"error":      err.Error(),
	}).Error("Erro ao sincronizar conta")

	o.recordAudit(ctx, &domain.AuditEntry{
		UserID: &userID,
		Action: domain.AuditSyncAccountError,
		Details: map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		},
		Timestamp: o.now(),
	})
}

// recordAudit nunca interrompe a sincronização; falhas de auditoria só são logadas
func (o *Orchestrator) recordAudit(ctx context.Context, entry *domain.AuditEntry) {
	if err := o.audit.Record(ctx, entry); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"action": entry.Action,
			"error":  err.Error(),
		}).Warn("Erro ao gravar registro de auditoria")
	}
}
