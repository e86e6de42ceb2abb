// Package api implements the HTTP client for the remote sync collaborator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс удалённого sync endpoint
type ClientAPI interface {
	// Send applies one queued mutation on the server.
	// A conflict is reported via SyncOpResponse.Status, not via error.
	Send(ctx context.Context, req api.SyncOpRequest) (*api.SyncOpResponse, error)

	// FetchSnapshot returns the current server snapshot of an entity.
	// Returns (nil, nil) when the server has no such entity.
	FetchSnapshot(ctx context.Context, entityType, entityID string) (models.Snapshot, error)

	// Ping probes server reachability; used as the connectivity check
	Ping(ctx context.Context) error
}

// ServerError represents a non-2xx response from the sync endpoint
type ServerError struct {
	Message    string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Transient reports whether the failure is worth retrying on a later drain.
// 4xx кроме 408/429 — постоянные ошибки валидации или авторизации.
func (e *ServerError) Transient() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode >= 500
}

// IsTransient reports whether err is a failure subject to retry.
// Сетевые ошибки транспорта (err не *ServerError) считаются транзиентными.
func IsTransient(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Transient()
	}
	return err != nil
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Send applies one queued mutation on the server
func (c *Client) Send(ctx context.Context, req api.SyncOpRequest) (*api.SyncOpResponse, error) {
	url := c.baseURL + "/api/v1/sync"

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// 409 — это не ошибка, а сигнал конфликта с серверным снимком
	if resp.StatusCode == http.StatusConflict {
		var opResp api.SyncOpResponse
		if err := json.Unmarshal(respBody, &opResp); err != nil {
			return nil, fmt.Errorf("failed to decode conflict response: %w", err)
		}
		opResp.Status = api.StatusConflict
		return &opResp, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.serverError(resp.StatusCode, respBody)
	}

	var opResp api.SyncOpResponse
	if err := json.Unmarshal(respBody, &opResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if opResp.Status == "" {
		opResp.Status = api.StatusOK
	}

	return &opResp, nil
}

// FetchSnapshot returns the current server snapshot of an entity.
// Чтение идемпотентно, поэтому обёрнуто в fibonacci backoff.
func (c *Client) FetchSnapshot(ctx context.Context, entityType, entityID string) (models.Snapshot, error) {
	url := fmt.Sprintf("%s/api/v1/entities/%s/%s", c.baseURL, entityType, entityID)

	var snapshot models.Snapshot

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("snapshot request failed: %w", err))
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response body: %w", err))
		}

		// Сервер не знает такой сущности — конфликта быть не может
		if resp.StatusCode == http.StatusNotFound {
			snapshot = nil
			return nil
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			serverErr := c.serverError(resp.StatusCode, respBody)
			if IsTransient(serverErr) {
				return retry.RetryableError(serverErr)
			}
			return serverErr
		}

		snapshot = models.Snapshot{}
		if err := json.Unmarshal(respBody, &snapshot); err != nil {
			return fmt.Errorf("failed to decode snapshot: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Ping probes server reachability
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{StatusCode: resp.StatusCode, Message: "health check failed"}
	}

	return nil
}

// serverError строит ServerError из тела ответа
func (c *Client) serverError(statusCode int, respBody []byte) error {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
		return &ServerError{StatusCode: statusCode, Message: errResp.Error}
	}
	return &ServerError{StatusCode: statusCode, Message: string(respBody)}
}
