package providerservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Client клиент для работы с ProviderService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProviderService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProvider получает провайдера по ID
func (c *Client) GetProvider(ctx context.Context, providerID uuid.UUID) (*Provider, error) {
	url := fmt.Sprintf("%s/internal/providers/%s", c.baseURL, providerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrProviderNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var provider Provider
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &provider, nil
}

// GetProviderWithGracefulDegradation получает провайдера с graceful degradation
// ErrProviderNotFound пробрасывается как есть, любые другие ошибки превращаются
// в ErrServiceDegraded, чтобы создание окна продолжилось без обогащения
func (c *Client) GetProviderWithGracefulDegradation(ctx context.Context, providerID uuid.UUID) (*Provider, error) {
	provider, err := c.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			c.log.Warn("Provider id=%s not found in ProviderService", providerID)
			return nil, err
		}

		c.log.Error("ProviderService unavailable, applying graceful degradation for provider_id=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: provider_id=%s, error=%v", ErrServiceDegraded, providerID, err)
	}

	c.log.Info("Fetched provider id=%s, name=%s", providerID, provider.Name)
	return provider, nil
}
