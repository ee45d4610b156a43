package syncing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func child(id int64, name string) adsdomain.CustomerClient {
	return adsdomain.CustomerClient{
		ClientCustomer:  "customers/" + name,
		ID:              adsdomain.NewInt64(id),
		DescriptiveName: name,
		Level:           adsdomain.NewInt64(1),
		Status:          adsdomain.EnumLabel("ENABLED"),
	}
}

func TestAccountResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPlatform := mocks.NewMockAdsPlatform(ctrl)
	resolver := NewAccountResolver(mockPlatform)

	conn := &domain.AdsConnection{
		UserID:        10,
		RootAccountID: "123-456-7890",
		RefreshToken:  "refresh",
		Active:        true,
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, res *domain.AccountResolution)
	}{
		{
			name: "Raiz sem filhas é conta isolada primária",
			setup: func() {
				mockPlatform.EXPECT().ListChildAccounts(gomock.Any(), conn).Return(nil, nil)
			},
			validate: func(t *testing.T, res *domain.AccountResolution) {
				assert.False(t, res.IsManager)
				assert.False(t, res.Degraded)
				require.Len(t, res.LeafAccounts, 1)
				assert.Equal(t, "1234567890", res.LeafAccounts[0].AccountID)
				assert.True(t, res.LeafAccounts[0].IsPrimary)
				assert.Nil(t, res.LeafAccounts[0].ParentAccountID)
				assert.Equal(t, 10, res.LeafAccounts[0].OwnerUserID)
			},
		},
		{
			name: "Raiz gerenciadora lista filhas com a raiz como pai",
			setup: func() {
				mockPlatform.EXPECT().ListChildAccounts(gomock.Any(), conn).Return([]adsdomain.CustomerClient{
					child(111, "Loja A"),
					child(222, "Loja B"),
					child(333, ""),
				}, nil)
			},
			validate: func(t *testing.T, res *domain.AccountResolution) {
				assert.True(t, res.IsManager)
				require.Len(t, res.LeafAccounts, 3)
				for _, acc := range res.LeafAccounts {
					require.NotNil(t, acc.ParentAccountID)
					assert.Equal(t, "1234567890", *acc.ParentAccountID)
					assert.False(t, acc.IsPrimary)
					assert.False(t, acc.IsManager)
				}
				assert.Equal(t, "Loja A", res.LeafAccounts[0].DisplayName)
				assert.Equal(t, "333", res.LeafAccounts[2].DisplayName)
				assert.True(t, res.Contains("222"))
			},
		},
		{
			name: "Filhas duplicadas e a própria raiz são ignoradas",
			setup: func() {
				mockPlatform.EXPECT().ListChildAccounts(gomock.Any(), conn).Return([]adsdomain.CustomerClient{
					child(111, "Loja A"),
					child(111, "Loja A"),
					child(1234567890, "Raiz"),
				}, nil)
			},
			validate: func(t *testing.T, res *domain.AccountResolution) {
				assert.True(t, res.IsManager)
				require.Len(t, res.LeafAccounts, 1)
				assert.Equal(t, "111", res.LeafAccounts[0].AccountID)
			},
		},
		{
			name: "Erro da plataforma cai para conta isolada",
			setup: func() {
				mockPlatform.EXPECT().ListChildAccounts(gomock.Any(), conn).Return(nil, errors.New("PERMISSION_DENIED"))
			},
			validate: func(t *testing.T, res *domain.AccountResolution) {
				assert.False(t, res.IsManager)
				assert.True(t, res.Degraded)
				require.Len(t, res.LeafAccounts, 1)
				assert.True(t, res.LeafAccounts[0].IsPrimary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			res, err := resolver.Resolve(context.Background(), conn)

			require.NoError(t, err)
			tt.validate(t, res)
		})
	}
}

func TestAccountResolver_Resolve_CredencialInutilizavel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewAccountResolver(mocks.NewMockAdsPlatform(ctrl))

	tests := []struct {
		name string
		conn *domain.AdsConnection
	}{
		{"Sem refresh token", &domain.AdsConnection{UserID: 1, RootAccountID: "1", Active: true}},
		{"Sem conta raiz", &domain.AdsConnection{UserID: 1, RefreshToken: "x", Active: true}},
		{"Conexão nula", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolver.Resolve(context.Background(), tt.conn)

			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnusableCredential)

			var syncErr *SyncError
			require.ErrorAs(t, err, &syncErr)
			assert.Equal(t, apiErrors.ErrInvalidAdsCredential, syncErr.Code)
		})
	}
}
