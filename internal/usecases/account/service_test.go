package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type accountMocks struct {
	connections *repomocks.MockConnectionRepository
	accounts    *repomocks.MockAccountRepository
	campaigns   *repomocks.MockCampaignRepository
	syncer      *syncmocks.MockSyncer
}

func newTestService(ctrl *gomock.Controller) (*Service, accountMocks) {
	m := accountMocks{
		connections: repomocks.NewMockConnectionRepository(ctrl),
		accounts:    repomocks.NewMockAccountRepository(ctrl),
		campaigns:   repomocks.NewMockCampaignRepository(ctrl),
		syncer:      syncmocks.NewMockSyncer(ctrl),
	}

	svc := NewService(m.connections, m.accounts, m.campaigns, m.syncer).(*Service)
	svc.now = func() time.Time { return fixedNow }

	return svc, m
}

func TestService_Connect(t *testing.T) {
	tests := []struct {
		name         string
		request      *domain.ConnectRequest
		setup        func(m accountMocks)
		expectedCode string
		validate     func(t *testing.T, resp *domain.ConnectResponse)
	}{
		{
			name:    "Conexão gravada com id normalizado e primeira sincronização",
			request: &domain.ConnectRequest{RootAccountID: " 123-456-7890 ", RefreshToken: "refresh"},
			setup: func(m accountMocks) {
				m.connections.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, conn *domain.AdsConnection) error {
						assert.Equal(t, "1234567890", conn.RootAccountID)
						assert.Equal(t, "refresh", conn.RefreshToken)
						assert.True(t, conn.Active)
						assert.Equal(t, fixedNow, conn.ConnectedAt)
						return nil
					})
				m.syncer.EXPECT().SyncUser(gomock.Any(), 5).Return(&domain.SyncReport{SyncedAccounts: 2}, nil)
			},
			validate: func(t *testing.T, resp *domain.ConnectResponse) {
				require.NotNil(t, resp.Report)
				assert.Equal(t, 2, resp.Report.SyncedAccounts)
				assert.Empty(t, resp.SyncError)
			},
		},
		{
			name:    "Falha na primeira sincronização não desfaz a conexão",
			request: &domain.ConnectRequest{RootAccountID: "1234567890", RefreshToken: "refresh"},
			setup: func(m accountMocks) {
				m.connections.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.syncer.EXPECT().SyncUser(gomock.Any(), 5).Return(nil, syncing.ErrAccountHierarchy)
			},
			validate: func(t *testing.T, resp *domain.ConnectResponse) {
				assert.NotNil(t, resp.Connection)
				assert.Contains(t, resp.SyncError, "child accounts")
			},
		},
		{
			name:         "Conta raiz não numérica",
			request:      &domain.ConnectRequest{RootAccountID: "abc", RefreshToken: "refresh"},
			setup:        func(m accountMocks) {},
			expectedCode: apiErrors.ErrInvalidRequest,
		},
		{
			name:         "Refresh token ausente",
			request:      &domain.ConnectRequest{RootAccountID: "1234567890", RefreshToken: "  "},
			setup:        func(m accountMocks) {},
			expectedCode: apiErrors.ErrInvalidRequest,
		},
		{
			name:    "Erro ao gravar",
			request: &domain.ConnectRequest{RootAccountID: "1234567890", RefreshToken: "refresh"},
			setup: func(m accountMocks) {
				m.connections.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestService(ctrl)
			tt.setup(m)

			resp, err := svc.Connect(context.Background(), 5, tt.request)

			if tt.expectedCode != "" {
				require.Error(t, err)
				var accountErr *AccountError
				require.True(t, errors.As(err, &accountErr))
				assert.Equal(t, tt.expectedCode, accountErr.Code)
				return
			}

			require.NoError(t, err)
			tt.validate(t, resp)
		})
	}
}

func TestService_GetConnection(t *testing.T) {
	tests := []struct {
		name        string
		conn        *domain.AdsConnection
		repoErr     error
		expectedErr error
	}{
		{
			name: "Conexão ativa",
			conn: &domain.AdsConnection{UserID: 5, RootAccountID: "1", Active: true},
		},
		{
			name:        "Sem conexão",
			conn:        nil,
			expectedErr: ErrNoConnection,
		},
		{
			name:        "Conexão desativada",
			conn:        &domain.AdsConnection{UserID: 5, Active: false},
			expectedErr: ErrNoConnection,
		},
		{
			name:        "Erro de banco",
			repoErr:     errors.New("db down"),
			expectedErr: ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestService(ctrl)
			m.connections.EXPECT().GetByUserID(gomock.Any(), 5).Return(tt.conn, tt.repoErr)

			conn, err := svc.GetConnection(context.Background(), 5)

			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.conn, conn)
		})
	}
}

func TestService_SelectAccounts(t *testing.T) {
	t.Run("Seleção gravada devolve as contas atualizadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestService(ctrl)
		m.syncer.EXPECT().SelectAccounts(gomock.Any(), 5, []string{"111"}).Return(nil)
		m.accounts.EXPECT().ListByOwner(gomock.Any(), 5).Return([]*domain.ExternalAccount{
			{AccountID: "111", IsSelected: true},
			{AccountID: "222"},
		}, nil)

		accounts, err := svc.SelectAccounts(context.Background(), 5, &domain.UpdateAccountSelectionRequest{AccountIDs: []string{"111"}})

		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.True(t, accounts[0].IsSelected)
	})

	t.Run("Conta desconhecida repassa o erro da sincronização", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestService(ctrl)
		syncErr := syncing.NewAccountSyncError(syncing.ErrAccountNotFound, apiErrors.ErrAccountNotFound, 5, "999", "conta não pertence ao usuário")
		m.syncer.EXPECT().SelectAccounts(gomock.Any(), 5, []string{"999"}).Return(syncErr)

		_, err := svc.SelectAccounts(context.Background(), 5, &domain.UpdateAccountSelectionRequest{AccountIDs: []string{"999"}})

		assert.True(t, errors.Is(err, syncing.ErrAccountNotFound))
	})

	t.Run("Lista ausente é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestService(ctrl)

		_, err := svc.SelectAccounts(context.Background(), 5, &domain.UpdateAccountSelectionRequest{})

		var accountErr *AccountError
		require.True(t, errors.As(err, &accountErr))
		assert.Equal(t, apiErrors.ErrMissingRequiredData, accountErr.Code)
	})
}

func TestService_UpdateCampaignGoals(t *testing.T) {
	goals := func(cpa int64) *domain.UpdateCampaignGoalsRequest {
		return &domain.UpdateCampaignGoalsRequest{
			TargetCPA: decimal.NewNullDecimal(decimal.NewFromInt(cpa)),
		}
	}

	tests := []struct {
		name         string
		request      *domain.UpdateCampaignGoalsRequest
		setup        func(m accountMocks)
		expectedCode string
	}{
		{
			name:    "Metas gravadas",
			request: goals(25),
			setup: func(m accountMocks) {
				m.campaigns.EXPECT().UpdateGoals(gomock.Any(), 5, "camp-1", gomock.Any()).Return(nil)
				m.campaigns.EXPECT().GetByID(gomock.Any(), 5, "camp-1").Return(&domain.Campaign{
					ID:        "camp-1",
					TargetCPA: decimal.NewNullDecimal(decimal.NewFromInt(25)),
				}, nil)
			},
		},
		{
			name:         "Meta negativa",
			request:      goals(-1),
			setup:        func(m accountMocks) {},
			expectedCode: apiErrors.ErrInvalidFormat,
		},
		{
			name:    "Campanha de outro usuário",
			request: goals(25),
			setup: func(m accountMocks) {
				m.campaigns.EXPECT().UpdateGoals(gomock.Any(), 5, "camp-1", gomock.Any()).Return(sql.ErrNoRows)
			},
			expectedCode: apiErrors.ErrCampaignNotFound,
		},
		{
			name:    "Erro de banco",
			request: goals(25),
			setup: func(m accountMocks) {
				m.campaigns.EXPECT().UpdateGoals(gomock.Any(), 5, "camp-1", gomock.Any()).Return(errors.New("db down"))
			},
			expectedCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestService(ctrl)
			tt.setup(m)

			campaign, err := svc.UpdateCampaignGoals(context.Background(), 5, "camp-1", tt.request)

			if tt.expectedCode != "" {
				var accountErr *AccountError
				require.True(t, errors.As(err, &accountErr))
				assert.Equal(t, tt.expectedCode, accountErr.Code)
				assert.Equal(t, "camp-1", accountErr.AccountID)
				return
			}

			require.NoError(t, err)
			assert.True(t, campaign.TargetCPA.Decimal.Equal(decimal.NewFromInt(25)))
		})
	}
}

func TestService_Delegation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	m.syncer.EXPECT().Disconnect(gomock.Any(), 5).Return(nil)
	m.syncer.EXPECT().Refresh(gomock.Any(), 5).Return(&domain.SyncReport{SyncedCampaigns: 4}, nil)

	require.NoError(t, svc.Disconnect(context.Background(), 5))

	report, err := svc.Refresh(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4, report.SyncedCampaigns)
}
