package googleads

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const childAccountsQuery = `SELECT
	customer_client.client_customer,
	customer_client.id,
	customer_client.descriptive_name,
	customer_client.level,
	customer_client.manager,
	customer_client.test_account,
	customer_client.status
FROM customer_client
WHERE customer_client.level >= 1
	AND customer_client.status = 'ENABLED'
	AND customer_client.manager = false`

const campaignPerformanceQuery = `SELECT
	campaign.id,
	campaign.name,
	campaign.status,
	campaign.advertising_channel_type,
	campaign.target_cpa.target_cpa_micros,
	campaign.target_roas.target_roas,
	campaign_budget.amount_micros,
	metrics.impressions,
	metrics.clicks,
	metrics.conversions,
	metrics.conversions_value,
	metrics.cost_micros
FROM campaign
WHERE segments.date BETWEEN '%s' AND '%s'
	AND campaign.status = 'ENABLED'`

type GoogleAdsIntegrator struct {
	Client adsclient.Client
}

func New(client adsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		Client: client,
	}
}

func credentialFor(conn *domain.AdsConnection) adsclient.Credential {
	return adsclient.Credential{
		LoginCustomerID: normalizeCustomerID(conn.RootAccountID),
		RefreshToken:    conn.RefreshToken,
	}
}

// ListChildAccounts lista as contas cliente ativas (não MCC, não teste) sob a conta raiz
func (s *GoogleAdsIntegrator) ListChildAccounts(ctx context.Context, conn *domain.AdsConnection) ([]adsdomain.CustomerClient, error) {
	rootID := normalizeCustomerID(conn.RootAccountID)

	raw, err := s.Client.Search(ctx, credentialFor(conn), rootID, childAccountsQuery)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"root_account_id": rootID,
			"error":           err.Error(),
		}).Error("accounts: failed to list child accounts from API")
		return nil, err
	}

	children := make([]adsdomain.CustomerClient, 0, len(raw))
	for _, item := range raw {
		var row adsdomain.CustomerClientRow
		if err := json.Unmarshal(item, &row); err != nil {
			return nil, fmt.Errorf("erro ao decodificar customer_client: %w", err)
		}

		// A API pode ignorar o filtro de test_account, então filtramos aqui também
		if !row.CustomerClient.IsEnabledLeaf() {
			continue
		}
		children = append(children, row.CustomerClient)
	}

	logrus.WithFields(logrus.Fields{
		"root_account_id": rootID,
		"children":        len(children),
	}).Debug("accounts: child accounts retrieved")

	return children, nil
}

// QueryCampaigns busca o desempenho das campanhas ativas de uma conta na janela informada
func (s *GoogleAdsIntegrator) QueryCampaigns(
	ctx context.Context,
	conn *domain.AdsConnection,
	accountID string,
	window domain.DateWindow,
) ([]adsdomain.CampaignRow, error) {
	query := fmt.Sprintf(campaignPerformanceQuery, window.Start.Format(time.DateOnly), window.End.Format(time.DateOnly))

	raw, err := s.Client.Search(ctx, credentialFor(conn), normalizeCustomerID(accountID), query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("campaigns: failed to query campaign performance from API")
		return nil, err
	}

	rows := make([]adsdomain.CampaignRow, 0, len(raw))
	for _, item := range raw {
		var row adsdomain.CampaignRow
		if err := json.Unmarshal(item, &row); err != nil {
			return nil, fmt.Errorf("erro ao decodificar campanha: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// normalizeCustomerID remove os hífens do formato 123-456-7890
func normalizeCustomerID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}
