// Package upstream is the HTTP client for the remote FirstResponse API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"firstresponse/models"
	"firstresponse/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoint paths relative to the API base URL.
const (
	PathLogin     = "/api/token"
	PathVerifyOTP = "/api/verify_otp"
	PathHealth    = "/health"
	PathFirstAid  = "/first_aid"
	PathRation    = "/ration_all_explained"
	PathSafeRoute = "/safe_route"
	PathScan      = "/misinformation"
)

const maxResponseBytes = 4 << 20

// ErrUnavailable is shown when the API cannot be reached and demo data is off.
var ErrUnavailable = errors.New("An error occurred while connecting to the backend.")

// Client issues requests to the API base URL and normalizes the outcome.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP lets callers supply their own transport.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Response is any answer the server gave, successful or not.
type Response struct {
	Status int
	Body   []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// TransportError means no HTTP response was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a response outside 2xx.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
}

// Check returns a *StatusError unless the response is 2xx.
func (r *Response) Check(endpoint string) error {
	if r.IsSuccess() {
		return nil
	}
	return &StatusError{Endpoint: endpoint, Status: r.Status}
}

// IsTransport reports whether err came from a failed round trip.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := utils.GetLogger().With(zap.String("endpoint", path), zap.String("method", method))
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("upstream request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn("failed to read upstream response", zap.Error(err))
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	logger.Debug("upstream response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload any) (*Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, token, bytes.NewReader(b), "application/json")
}

// Login posts credentials; no bearer token is sent.
func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (*Response, error) {
	return c.postJSON(ctx, PathLogin, "", creds)
}

// VerifyOTP posts the code with the preliminary token in the body.
func (c *Client) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*Response, error) {
	return c.postJSON(ctx, PathVerifyOTP, "", req)
}

func (c *Client) Health(ctx context.Context, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, PathHealth, token, nil, "")
}

// Reachable calls the health endpoint without a bearer token. The gateway
// holds no user token of its own, so 401 and 403 still count as reachable;
// only a failed round trip or a 5xx is reported.
func (c *Client) Reachable(ctx context.Context) error {
	resp, err := c.Health(ctx, "")
	if err != nil {
		return err
	}
	if resp.Status >= http.StatusInternalServerError {
		return &StatusError{Endpoint: PathHealth, Status: resp.Status}
	}
	return nil
}

func (c *Client) FirstAid(ctx context.Context, token, question, lang string) (*Response, error) {
	q := url.Values{}
	q.Set("question", question)
	q.Set("lang", lang)
	return c.do(ctx, http.MethodGet, PathFirstAid+"?"+q.Encode(), token, nil, "")
}

func (c *Client) Ration(ctx context.Context, token string, req models.RationingRequest) (*Response, error) {
	return c.postJSON(ctx, PathRation, token, req)
}

func (c *Client) SafeRoute(ctx context.Context, token string, req models.SafeRouteRequest) (*Response, error) {
	return c.postJSON(ctx, PathSafeRoute, token, req)
}

// ScanFlyer uploads an image as the multipart field "file".
func (c *Client) ScanFlyer(ctx context.Context, token, filename, contentType string, image io.Reader) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	return c.do(ctx, http.MethodPost, PathScan, token, &buf, mw.FormDataContentType())
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
