package syncing

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

// AdsPlatform é o cliente da plataforma de anúncios; devolve linhas cruas, sem normalização
type AdsPlatform interface {
	ListChildAccounts(ctx context.Context, conn *domain.AdsConnection) ([]adsdomain.CustomerClient, error)
	QueryCampaigns(ctx context.Context, conn *domain.AdsConnection, accountID string, window domain.DateWindow) ([]adsdomain.CampaignRow, error)
}

// Resolver descobre as contas folha controladas pela conta raiz de uma conexão
type Resolver interface {
	Resolve(ctx context.Context, conn *domain.AdsConnection) (*domain.AccountResolution, error)
}

// Syncer executa ciclos de sincronização e as operações do usuário sobre a própria conexão
type Syncer interface {
	Run(ctx context.Context) (*domain.SyncReport, error)
	SyncUser(ctx context.Context, userID int) (*domain.SyncReport, error)
	Refresh(ctx context.Context, userID int) (*domain.SyncReport, error)
	Disconnect(ctx context.Context, userID int) error
	SelectAccounts(ctx context.Context, userID int, accountIDs []string) error
}
