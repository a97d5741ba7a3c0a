package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
	"github.com/dmitrijs2005/bankaccounts/internal/common"
)

// HTTPClient talks to the bankaccounts HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the API at baseURL. Each call is bounded
// by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bad server URL %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do sends one request. A nil in is sent without a body; a nil out discards
// the response body.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &eb); err != nil || eb.Error == "" {
		eb.Error = strings.TrimSpace(string(data))
		if eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: eb.Error, Fields: eb.Fields}
	switch {
	case resp.StatusCode == http.StatusUnauthorized && eb.Error == common.ErrorUnauthorized.Error():
		apiErr.kind = ErrAuthenticationFailed
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		apiErr.kind = ErrConflict
	case resp.StatusCode == http.StatusBadRequest:
		apiErr.kind = ErrInvalidInput
	default:
		apiErr.kind = ErrServer
	}
	return apiErr
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, identifier, secret string) error {
	return c.do(ctx, http.MethodPost, "/api/register", "", credentials{identifier, secret}, nil)
}

type credentials struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func (c *HTTPClient) Login(ctx context.Context, identifier, secret string) (*models.LoginResult, error) {
	var res models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", "", credentials{identifier, secret}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListAccounts(ctx context.Context, token string) ([]models.Account, error) {
	var res []models.Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts", token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func accountPath(number string) string {
	return "/api/accounts/" + url.PathEscape(number)
}

func (c *HTTPClient) GetAccount(ctx context.Context, token, number string) (*models.Account, error) {
	var res models.Account
	if err := c.do(ctx, http.MethodGet, accountPath(number), token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, token string, in models.AccountInput) (*models.Account, error) {
	var res models.Account
	if err := c.do(ctx, http.MethodPost, "/api/accounts", token, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateAccount(ctx context.Context, token, number string, in models.AccountUpdate) (*models.Account, error) {
	var res models.Account
	if err := c.do(ctx, http.MethodPut, accountPath(number), token, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, token, number string) error {
	return c.do(ctx, http.MethodDelete, accountPath(number), token, nil, nil)
}
