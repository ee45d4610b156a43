package googleads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/adsclient/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func rawRows(rows ...string) []jsoniter.RawMessage {
	out := make([]jsoniter.RawMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, jsoniter.RawMessage(r))
	}
	return out
}

func TestGoogleAdsIntegrator_ListChildAccounts(t *testing.T) {
	conn := &domain.AdsConnection{UserID: 1, RootAccountID: "123-456-7890", RefreshToken: "rt", Active: true}
	expectedCred := adsclient.Credential{LoginCustomerID: "1234567890", RefreshToken: "rt"}

	tests := []struct {
		name        string
		rows        []jsoniter.RawMessage
		searchErr   error
		expectedIDs []int64
		expectErr   bool
	}{
		{
			name: "Filtra MCC, contas de teste e desativadas",
			rows: rawRows(
				`{"customerClient":{"id":"111","descriptiveName":"Loja A","level":"1","manager":false,"testAccount":false,"status":"ENABLED"}}`,
				`{"customerClient":{"id":"222","level":"1","manager":true,"status":"ENABLED"}}`,
				`{"customerClient":{"id":"333","level":"2","testAccount":true,"status":"ENABLED"}}`,
				`{"customerClient":{"id":"444","level":"1","status":"CANCELED"}}`,
				`{"customerClient":{"id":"555","level":"2","status":2}}`,
			),
			expectedIDs: []int64{111, 555},
		},
		{
			name:        "Nenhuma conta filha",
			rows:        rawRows(),
			expectedIDs: []int64{},
		},
		{
			name:      "Erro da API",
			searchErr: errors.New("boom"),
			expectErr: true,
		},
		{
			name:      "Linha malformada",
			rows:      rawRows(`{"customerClient":{"id":{}}}`),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)

			client.EXPECT().
				Search(gomock.Any(), expectedCred, "1234567890", childAccountsQuery).
				Return(tt.rows, tt.searchErr)

			children, err := New(client).ListChildAccounts(context.Background(), conn)

			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			ids := make([]int64, 0, len(children))
			for _, c := range children {
				ids = append(ids, c.ID.Value)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestGoogleAdsIntegrator_QueryCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	conn := &domain.AdsConnection{UserID: 1, RootAccountID: "9990001111", RefreshToken: "rt", Active: true}
	window := domain.DateWindow{
		Start: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	client.EXPECT().
		Search(gomock.Any(), adsclient.Credential{LoginCustomerID: "9990001111", RefreshToken: "rt"}, "1112223333", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ adsclient.Credential, _ string, query string) ([]jsoniter.RawMessage, error) {
			assert.True(t, strings.Contains(query, "BETWEEN '2025-03-03' AND '2025-03-09'"))
			return rawRows(
				`{"campaign":{"id":"42","name":"Search BR","status":"ENABLED","targetCpa":{"targetCpaMicros":"5000000"}},`+
					`"campaignBudget":{"amountMicros":"20000000"},`+
					`"metrics":{"impressions":"1000","clicks":"50","conversions":2.5,"conversionsValue":"300.5","costMicros":"12500000"}}`,
				`{"campaign":{"id":"43","name":"Display","status":3},"metrics":{}}`,
			), nil
		})

	rows, err := New(client).QueryCampaigns(context.Background(), conn, "111-222-3333", window)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, int64(42), first.Campaign.ID.Value)
	assert.Equal(t, "ENABLED", first.Campaign.Status.String())
	require.NotNil(t, first.Campaign.TargetCPA)
	assert.Equal(t, int64(5_000_000), first.Campaign.TargetCPA.TargetCPAMicros.Value)
	assert.Equal(t, int64(20_000_000), first.CampaignBudget.AmountMicros.Value)
	assert.Equal(t, int64(1000), first.Metrics.Impressions.Value)
	assert.Equal(t, "2.5", first.Metrics.Conversions.Value)
	assert.Equal(t, "300.5", first.Metrics.ConversionsValue.Value)
	assert.Equal(t, int64(12_500_000), first.Metrics.CostMicros.Value)

	second := rows[1]
	assert.Equal(t, 3, second.Campaign.Status.Code)
	assert.Nil(t, second.Campaign.TargetCPA)
	assert.False(t, second.Metrics.Clicks.Valid)
	assert.False(t, second.Metrics.CostMicros.Valid)
}
