package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// APIError - ошибка, которую сервер вернул осознанно (4xx/5xx с телом)
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// RegisterPayload - тело запроса регистрации
type RegisterPayload struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Area      string   `json:"area"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RegisterResult - ответ сервера на регистрацию
type RegisterResult struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id"`
	DebugOTP string `json:"debug_otp"`
}

// VerifyResult - ответ сервера на подтверждение кода
type VerifyResult struct {
	Verified bool `json:"verified"`
}

// AlertRecord - оповещение из истории района
type AlertRecord struct {
	ID              string    `json:"id"`
	AlertType       string    `json:"alert_type"`
	Area            string    `json:"area"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
	RecipientsCount int       `json:"recipients_count"`
	TriggeredBy     string    `json:"triggered_by"`
	IsDemo          bool      `json:"-"`
}

type historyResult struct {
	Success bool           `json:"success"`
	Alerts  []*AlertRecord `json:"alerts"`
}

// Client - HTTP-клиент бэкенда. Адрес сервера всегда задается явно,
// значения по умолчанию нет.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Register отправляет форму регистрации на бэкенд
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.postJSON(ctx, "/register", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify отправляет код подтверждения на бэкенд
func (c *Client) Verify(ctx context.Context, phone, code string) (*VerifyResult, error) {
	payload := map[string]string{
		"phone": phone,
		"otp":   code,
	}
	var result VerifyResult
	if err := c.postJSON(ctx, "/verify", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AlertHistory запрашивает историю оповещений района
func (c *Client) AlertHistory(ctx context.Context, area string, limit int) ([]*AlertRecord, error) {
	query := url.Values{}
	query.Set("area", area)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/alerts/history?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("client: could not build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var result historyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("client: could not decode response: %w", err)
	}
	return result.Alerts, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: could not marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("client: could not decode response: %w", err)
	}
	return nil
}

// apiError вытаскивает сообщение об ошибке из тела ответа сервера
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
	}
	return apiErr
}
