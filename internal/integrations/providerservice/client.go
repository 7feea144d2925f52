package providerservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
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
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProvider получает провайдера по ID
// Неодобренные провайдеры для бронирования не существуют - сервис отвечает 404
func (c *Client) GetProvider(ctx context.Context, providerID int64) (*Provider, error) {
	url := fmt.Sprintf("%s/internal/providers/%d", c.baseURL, providerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты - транзиентные, наружу уходит ErrUnavailable
		if isTimeout(err) {
			c.log.Error("ProviderService request timed out for provider_id=%d: %v", providerID, err)
			return nil, fmt.Errorf("%w: timeout: %v", ErrUnavailable, err)
		}
		c.log.Error("ProviderService request failed for provider_id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid provider ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrProviderNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var provider Provider
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &provider, nil
}

// isTimeout распознает таймаут сетевого запроса
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
