// Package userdata реализует клиент REST-поставщика данных пользователей.
package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/config"
	"retireplan/internal/gateway/ports/provider"
	"retireplan/pkg/logger"
)

// Константы для логирования.
const (
	LogFetchUser        = "fetching user record"
	LogFetchUserDone    = "user record fetched"
	LogProviderStatus   = "user data provider returned non-success status"
	LogProviderDecode   = "failed to decode user record"
	LogProviderTransfer = "user data provider request failed"
)

// maxBodySize ограничивает размер читаемого ответа поставщика.
const maxBodySize = 1 << 20

// Client получает записи пользователей по HTTP: GET {BaseURL}/{id}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ provider.UserDataProvider = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задает собственный http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient создает клиента поставщика.
func NewClient(cfg config.ProviderConfig, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid provider base url %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchUser запрашивает запись пользователя.
func (c *Client) FetchUser(ctx context.Context, userID int64) (*dto.UserRecord, error) {
	endpoint := c.baseURL + "/" + strconv.FormatInt(userID, 10)
	log := logger.Log(ctx).With(zap.Int64("user_id", userID), zap.String("url", endpoint))
	log.Debug(ctx, LogFetchUser)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, LogProviderTransfer, zap.Error(err))
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id %d", provider.ErrUserNotFound, userID)
	case resp.StatusCode != http.StatusOK:
		log.Warn(ctx, LogProviderStatus, zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %d", provider.ErrUnexpectedStatus, resp.StatusCode)
	}

	var record dto.UserRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&record); err != nil {
		log.Warn(ctx, LogProviderDecode, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", provider.ErrMalformedResponse, err)
	}

	log.Debug(ctx, LogFetchUserDone)
	return &record, nil
}
