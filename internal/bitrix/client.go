package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"b24relay/internal/credentials"
	"b24relay/internal/logger"
)

const callTimeout = 15 * time.Second

// CallResult - нормализованный ответ REST-вызова.
type CallResult struct {
	StatusCode int
	Body       map[string]any
}

// IsError - ответ относится к классу ошибок: HTTP-статус >= 400 либо
// тело несет маркер error.
func (r *CallResult) IsError() bool {
	if r.StatusCode >= 400 {
		return true
	}
	_, hasError := r.Body["error"]
	return hasError
}

// Result возвращает содержимое поля result успешного ответа.
func (r *CallResult) Result() any {
	return r.Body["result"]
}

// Client выполняет авторизованные REST-вызовы к порталу Битрикс24.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: callTimeout}}
}

// Call отправляет метод REST API, подставляя access_token из учетных данных.
// Транспортная ошибка возвращается как error (единственная попытка,
// ретраев нет); ответ с ошибочным телом - как CallResult с IsError()=true.
func (c *Client) Call(ctx context.Context, cred *credentials.Credential, method string, params map[string]any) (*CallResult, error) {
	apiURL := cred.ClientEndpoint + method

	if params == nil {
		params = make(map[string]any)
	}
	params["auth"] = cred.AccessToken

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("bitrix: marshal params for %s: %w", method, err)
	}

	logger.FromContext(ctx).Info("REST call", "method", method, "url", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("bitrix: build request for %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitrix: call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("bitrix: read response of %s: %w", method, err)
	}

	body := make(map[string]any)
	if err := json.Unmarshal(raw, &body); err != nil {
		if len(raw) > 2000 {
			raw = raw[:2000]
		}
		body = map[string]any{"non_json": string(raw)}
	}

	result := &CallResult{StatusCode: resp.StatusCode, Body: body}
	if result.IsError() {
		logger.FromContext(ctx).Error("REST call failed",
			"method", method, "status", resp.StatusCode, "body", Redact(body))
	} else {
		logger.FromContext(ctx).Info("REST call ok", "method", method, "status", resp.StatusCode)
	}
	return result, nil
}
