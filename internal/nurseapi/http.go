package nurseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nurse-directory/config"
	"nurse-directory/internal/model"
)

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 512

// HTTPClient talks to the nurse backend over HTTP+JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPClient creates a client for cfg.BaseURL. An invalid proxy URL is
// logged and ignored.
func NewHTTPClient(cfg *config.ClientConfig, logger zerolog.Logger) *HTTPClient {
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.HTTPProxy).Msg("invalid proxy URL, not using a proxy")
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		log: logger,
	}
}

// ListAll fetches the full roster.
func (c *HTTPClient) ListAll(ctx context.Context) ([]model.Nurse, error) {
	var nurses []model.Nurse
	if _, err := c.do(ctx, "list", http.MethodGet, "/nurse/index", nil, &nurses); err != nil {
		return nil, err
	}
	if nurses == nil {
		nurses = []model.Nurse{}
	}
	return nurses, nil
}

// Login posts the credentials. A 2xx with an empty body counts as accepted;
// otherwise the body must be a JSON boolean, and null is a rejection.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (bool, error) {
	var ok *bool
	body := LoginRequest{Username: username, Password: password}
	n, err := c.do(ctx, "login", http.MethodPost, "/nurse/login", body, &ok)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return true, nil
	}
	return ok != nil && *ok, nil
}

// Create registers n. The backend may answer with the created record or with
// an empty body; in the latter case the submitted record is returned.
func (c *HTTPClient) Create(ctx context.Context, n model.Nurse) (model.Nurse, error) {
	n.ID = 0
	var created model.Nurse
	size, err := c.do(ctx, "create", http.MethodPost, "/nurse/new", n, &created)
	if err != nil {
		return model.Nurse{}, err
	}
	if size == 0 {
		return n, nil
	}
	return created, nil
}

func (c *HTTPClient) GetByID(ctx context.Context, id int64) (model.Nurse, error) {
	return c.getOne(ctx, "get", "/nurse/"+strconv.FormatInt(id, 10))
}

func (c *HTTPClient) SearchByName(ctx context.Context, name string) (model.Nurse, error) {
	return c.getOne(ctx, "search name", "/nurse/name/"+url.PathEscape(name))
}

func (c *HTTPClient) SearchByUsername(ctx context.Context, username string) (model.Nurse, error) {
	return c.getOne(ctx, "search user", "/nurse/user/"+url.PathEscape(username))
}

// Update replaces the mutable fields of nurse id. The id in n is ignored.
func (c *HTTPClient) Update(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error) {
	n.ID = id
	var updated model.Nurse
	size, err := c.do(ctx, "update", http.MethodPut, "/nurse/"+strconv.FormatInt(id, 10), n, &updated)
	if err != nil {
		return model.Nurse{}, err
	}
	if size == 0 {
		return n, nil
	}
	updated.ID = id
	return updated, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, "/nurse/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

func (c *HTTPClient) getOne(ctx context.Context, op, path string) (model.Nurse, error) {
	var n model.Nurse
	size, err := c.do(ctx, op, http.MethodGet, path, nil, &n)
	if err != nil {
		return model.Nurse{}, err
	}
	if size == 0 {
		return model.Nurse{}, &TransportError{Op: op, Err: io.ErrUnexpectedEOF}
	}
	return n, nil
}

// do performs one request. It returns the size of the response body so
// callers can tell an empty 2xx from a decoded one.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, in, out any) (int, error) {
	var reqBody io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to marshal request payload: %w", err)}
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Str("method", method).Str("path", path).Msg("request failed")
		return 0, &TransportError{Op: op, Err: fmt.Errorf("http request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		se := &ServerError{StatusCode: resp.StatusCode, Body: string(snippet)}
		if resp.StatusCode == http.StatusConflict {
			se.Reason = conflictReason(body)
		}
		return len(body), se
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return 0, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return len(body), &TransportError{Op: op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return len(body), nil
}
