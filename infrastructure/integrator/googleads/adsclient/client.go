package adsclient

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages protege contra paginação infinita caso a API repita o nextPageToken
const maxPages = 200

// Credential identifica quem faz a chamada: a conta raiz (login-customer-id) e o refresh token
type Credential struct {
	LoginCustomerID string
	RefreshToken    string
}

type Client interface {
	Search(ctx context.Context, cred Credential, customerID, query string) ([]jsoniter.RawMessage, error)
}

type GoogleAdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	baseHTTP     *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) *GoogleAdsClient {
	return &GoogleAdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		baseHTTP:     &http.Client{Timeout: cfg.GoogleAds.RequestTimeout},
	}
}

type searchResponse struct {
	Results       []jsoniter.RawMessage `json:"results"`
	NextPageToken string                `json:"nextPageToken"`
}

// Search executa uma consulta GAQL e percorre todas as páginas
func (c *GoogleAdsClient) Search(ctx context.Context, cred Credential, customerID, query string) ([]jsoniter.RawMessage, error) {
	httpClient := c.TokenManager.HTTPClient(ctx, cred.RefreshToken, c.baseHTTP)
	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.GoogleAds.URL, customerID)

	results := make([]jsoniter.RawMessage, 0)
	pageToken := ""

	for page := 0; page < maxPages; page++ {
		resp, err := c.searchPage(ctx, httpClient, endpoint, cred, adsdomain.SearchRequest{
			Query:     query,
			PageToken: pageToken,
			PageSize:  c.Cfg.GoogleAds.PageSize,
		})
		if err != nil {
			return nil, err
		}

		results = append(results, resp.Results...)

		if resp.NextPageToken == "" || resp.NextPageToken == pageToken {
			return results, nil
		}
		pageToken = resp.NextPageToken
	}

	logrus.WithField("customer_id", customerID).Warn("google ads: limite de páginas atingido")
	return results, nil
}

func (c *GoogleAdsClient) searchPage(
	ctx context.Context,
	httpClient *http.Client,
	endpoint string,
	cred Credential,
	body adsdomain.SearchRequest,
) (*searchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "google ads: erro ao serializar consulta")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "google ads: erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	if cred.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", cred.LoginCustomerID)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		metrics.AdsRequestsTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "google ads: erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	metrics.AdsRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "google ads: erro ao ler resposta")
	}

	logrus.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("google ads: resposta recebida")

	if resp.StatusCode != http.StatusOK {
		var apiErr adsdomain.ErrorResponse
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Response: apiErr}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Response: adsdomain.ErrorResponse{
			Error: adsdomain.ErrorDetails{Code: resp.StatusCode, Message: string(data)},
		}}
	}

	var out searchResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "google ads: erro ao decodificar JSON")
	}

	return &out, nil
}

// APIError é uma resposta não-200 da API
type APIError struct {
	StatusCode int
	Response   adsdomain.ErrorResponse
}

func (e *APIError) Error() string {
	return e.Response.String()
}
