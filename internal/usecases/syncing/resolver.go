package syncing

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
)

type AccountResolver struct {
	platform AdsPlatform
}

func NewAccountResolver(platform AdsPlatform) *AccountResolver {
	return &AccountResolver{platform: platform}
}

// Resolve descobre as contas cliente sob a conta raiz. Sem filhas, a raiz é uma conta
// isolada. Falhas da plataforma ao listar filhas nunca são propagadas: a resolução cai
// para a conta isolada e a sincronização segue.
func (r *AccountResolver) Resolve(ctx context.Context, conn *domain.AdsConnection) (*domain.AccountResolution, error) {
	if !conn.Usable() {
		userID := 0
		if conn != nil {
			userID = conn.UserID
		}
		return nil, NewSyncError(ErrUnusableCredential, apiErrors.ErrInvalidAdsCredential, userID, "conta raiz ou refresh token ausente")
	}

	rootID := normalizeAccountID(conn.RootAccountID)

	children, err := r.platform.ListChildAccounts(ctx, conn)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":         conn.UserID,
			"root_account_id": rootID,
			"error":           NewAccountSyncError(ErrAccountHierarchy, apiErrors.ErrExternalService, conn.UserID, rootID, err.Error()).Error(),
		}).Warn("Falha ao listar contas filhas, tratando a raiz como conta isolada")

		res := standalone(conn, rootID)
		res.Degraded = true
		return res, nil
	}

	leaves := make([]*domain.ExternalAccount, 0, len(children))
	seen := make(map[string]struct{}, len(children))

	for _, child := range children {
		id := childAccountID(child)
		if id == "" || id == rootID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		parent := rootID
		name := child.DescriptiveName
		if name == "" {
			name = id
		}

		leaves = append(leaves, &domain.ExternalAccount{
			AccountID:       id,
			OwnerUserID:     conn.UserID,
			DisplayName:     name,
			IsManager:       false,
			ParentAccountID: &parent,
			IsPrimary:       false,
		})
	}

	if len(leaves) == 0 {
		return standalone(conn, rootID), nil
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         conn.UserID,
		"root_account_id": rootID,
		"leaf_accounts":   len(leaves),
	}).Debug("Conta raiz é gerenciadora")

	return &domain.AccountResolution{IsManager: true, LeafAccounts: leaves}, nil
}

func standalone(conn *domain.AdsConnection, rootID string) *domain.AccountResolution {
	return &domain.AccountResolution{
		IsManager: false,
		LeafAccounts: []*domain.ExternalAccount{
			{
				AccountID:   rootID,
				OwnerUserID: conn.UserID,
				DisplayName: rootID,
				IsManager:   false,
				IsPrimary:   true,
			},
		},
	}
}

// childAccountID prefere o id numérico e cai para o resource name "customers/123"
func childAccountID(c adsdomain.CustomerClient) string {
	if c.ID.Valid && c.ID.Value > 0 {
		return strconv.FormatInt(c.ID.Value, 10)
	}

	if idx := strings.LastIndex(c.ClientCustomer, "/"); idx >= 0 {
		return c.ClientCustomer[idx+1:]
	}

	return normalizeAccountID(c.ClientCustomer)
}

func normalizeAccountID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}
