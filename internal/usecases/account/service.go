package account

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

type AccountService interface {
	Connect(ctx context.Context, userID int, request *domain.ConnectRequest) (*domain.ConnectResponse, error)
	GetConnection(ctx context.Context, userID int) (*domain.AdsConnection, error)
	Disconnect(ctx context.Context, userID int) error
	Refresh(ctx context.Context, userID int) (*domain.SyncReport, error)
	ListAccounts(ctx context.Context, userID int) ([]*domain.ExternalAccount, error)
	SelectAccounts(ctx context.Context, userID int, request *domain.UpdateAccountSelectionRequest) ([]*domain.ExternalAccount, error)
	ListCampaigns(ctx context.Context, userID int, filters domain.CampaignFilters) ([]*domain.Campaign, error)
	UpdateCampaignGoals(ctx context.Context, userID int, campaignID string, request *domain.UpdateCampaignGoalsRequest) (*domain.Campaign, error)
}

type Service struct {
	connections repository.ConnectionRepository
	accounts    repository.AccountRepository
	campaigns   repository.CampaignRepository
	syncer      syncing.Syncer
	now         func() time.Time
}

func NewService(
	connections repository.ConnectionRepository,
	accounts repository.AccountRepository,
	campaigns repository.CampaignRepository,
	syncer syncing.Syncer,
) AccountService {
	return &Service{
		connections: connections,
		accounts:    accounts,
		campaigns:   campaigns,
		syncer:      syncer,
		now:         time.Now,
	}
}

// Connect grava a credencial e já resolve as contas do usuário; uma falha na
// primeira sincronização não desfaz a conexão
func (s *Service) Connect(ctx context.Context, userID int, request *domain.ConnectRequest) (*domain.ConnectResponse, error) {
	request.RootAccountID = strings.ReplaceAll(strings.TrimSpace(request.RootAccountID), "-", "")
	request.RefreshToken = strings.TrimSpace(request.RefreshToken)

	if _, err := utils.Validate(request); err != nil {
		return nil, NewAccountError(ErrInvalidConnection, apiErrors.ErrInvalidRequest, err.Error())
	}

	conn := &domain.AdsConnection{
		UserID:        userID,
		RootAccountID: request.RootAccountID,
		RefreshToken:  request.RefreshToken,
		Active:        true,
		ConnectedAt:   s.now(),
	}

	if err := s.connections.Save(ctx, conn); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao salvar conexão com a plataforma de anúncios")
		return nil, NewAccountError(ErrSaveConnection, apiErrors.ErrDatabaseOperation, "Falha ao salvar conexão")
	}

	response := &domain.ConnectResponse{Connection: conn}

	report, err := s.syncer.SyncUser(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Conexão salva, mas a primeira sincronização falhou")
		response.SyncError = err.Error()
	}
	response.Report = report

	return response, nil
}

func (s *Service) GetConnection(ctx context.Context, userID int) (*domain.AdsConnection, error) {
	conn, err := s.connections.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar conexão")
	}

	if conn == nil || !conn.Active {
		return nil, NewAccountError(ErrNoConnection, apiErrors.ErrNoAdsConnection, "Usuário sem conexão ativa")
	}

	return conn, nil
}

func (s *Service) Disconnect(ctx context.Context, userID int) error {
	return s.syncer.Disconnect(ctx, userID)
}

func (s *Service) Refresh(ctx context.Context, userID int) (*domain.SyncReport, error) {
	return s.syncer.Refresh(ctx, userID)
}

func (s *Service) ListAccounts(ctx context.Context, userID int) ([]*domain.ExternalAccount, error) {
	accounts, err := s.accounts.ListByOwner(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao listar contas do usuário")
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return accounts, nil
}

// SelectAccounts grava a seleção e devolve as contas já com a marcação atualizada
func (s *Service) SelectAccounts(ctx context.Context, userID int, request *domain.UpdateAccountSelectionRequest) ([]*domain.ExternalAccount, error) {
	if request.AccountIDs == nil {
		return nil, NewAccountError(ErrInvalidConnection, apiErrors.ErrMissingRequiredData, "accountIds é obrigatório")
	}

	if err := s.syncer.SelectAccounts(ctx, userID, request.AccountIDs); err != nil {
		return nil, err
	}

	return s.ListAccounts(ctx, userID)
}

func (s *Service) ListCampaigns(ctx context.Context, userID int, filters domain.CampaignFilters) ([]*domain.Campaign, error) {
	campaigns, err := s.campaigns.ListByOwner(ctx, userID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao listar campanhas do usuário")
		return nil, NewAccountError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas no banco de dados")
	}

	return campaigns, nil
}

// UpdateCampaignGoals grava as metas definidas pelo dono; a sincronização nunca as sobrescreve
func (s *Service) UpdateCampaignGoals(ctx context.Context, userID int, campaignID string, request *domain.UpdateCampaignGoalsRequest) (*domain.Campaign, error) {
	if campaignID == "" {
		return nil, NewAccountError(ErrCampaignNotFound, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório")
	}

	if _, err := utils.Validate(request); err != nil {
		return nil, NewAccountErrorWithID(ErrInvalidGoals, apiErrors.ErrInvalidRequest, campaignID, err.Error())
	}

	if (request.TargetCPA.Valid && request.TargetCPA.Decimal.IsNegative()) ||
		(request.TargetROAS.Valid && request.TargetROAS.Decimal.IsNegative()) {
		return nil, NewAccountErrorWithID(ErrInvalidGoals, apiErrors.ErrInvalidFormat, campaignID, "metas não podem ser negativas")
	}

	err := s.campaigns.UpdateGoals(ctx, userID, campaignID, request)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewAccountErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("Erro ao atualizar metas da campanha")
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao atualizar metas")
	}

	campaign, err := s.campaigns.GetByID(ctx, userID, campaignID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao consultar campanha")
	}

	if campaign == nil {
		return nil, NewAccountErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
	}

	return campaign, nil
}
