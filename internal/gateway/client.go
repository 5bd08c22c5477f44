package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/yagoutpay/gateway/internal"
)

// Client performs the outbound HTTP calls to the gateway. It owns no
// cryptographic state: callers hand it already-encrypted payloads and
// decrypt responses themselves.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	Timeout time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// APIRequestBody is the JSON body posted to the apiIntegration endpoint.
// Hash is omitted when the deployment does not require one.
type APIRequestBody struct {
	MerchantID      string `json:"merchantId"`
	MerchantRequest string `json:"merchantRequest"`
	Hash            string `json:"hash,omitempty"`
}

// APIResponse is the envelope the apiIntegration endpoint returns. Response,
// when present, is an encrypted base64 string.
type APIResponse struct {
	MerchantID    string `json:"merchantId"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
	Response      string `json:"response,omitempty"`
}

// SendAPI posts a direct API payment request and decodes the response
// envelope. Non-2xx statuses become transport errors carrying the raw body.
func (c *Client) SendAPI(ctx context.Context, endpoint string, body APIRequestBody) (*APIResponse, error) {
	raw, err := c.postJSON(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	var resp APIResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.NewTransportError("unrecognized gateway response", http.StatusOK, string(raw)).WithCause(err)
	}

	c.logger.Info("gateway api response",
		"merchant_id", resp.MerchantID,
		"status", resp.Status,
		"status_message", resp.StatusMessage)

	return &resp, nil
}

// linkRequestBody wraps the encrypted payment-link JSON under the single
// "request" key the link endpoints expect.
type linkRequestBody struct {
	Request string `json:"request"`
}

// LinkResponse keeps both the raw body and, when the body was a JSON
// object, its decoded form. Link endpoints respond with plain JSON, plain
// text, or JSON holding one further encrypted field.
type LinkResponse struct {
	Raw    string
	Fields map[string]interface{}
}

// encryptedFieldKeys are the key names under which link endpoints have been
// observed to nest a further encrypted payload.
var encryptedFieldKeys = []string{"response", "data", "payload", "responseData"}

// EncryptedField returns the nested encrypted value if the response carries
// one under any of the known key names.
func (r *LinkResponse) EncryptedField() (string, bool) {
	for _, key := range encryptedFieldKeys {
		if v, ok := r.Fields[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// SendLink posts an encrypted payment-link body. The merchant id travels in
// a header rather than the body on these endpoints.
func (c *Client) SendLink(ctx context.Context, endpoint, merchantID, encryptedRequest string) (*LinkResponse, error) {
	payload, err := json.Marshal(linkRequestBody{Request: encryptedRequest})
	if err != nil {
		return nil, errors.NewInternalError("marshal link request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewInternalError("create link request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("me_id", merchantID)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	resp := &LinkResponse{Raw: string(raw)}
	var fields map[string]interface{}
	if jsonErr := json.Unmarshal(raw, &fields); jsonErr == nil {
		resp.Fields = fields
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewInternalError("marshal gateway request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewInternalError("create gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, errors.NewTransportError("gateway request timed out or cancelled", 0, "").WithCause(req.Context().Err())
		}
		return nil, errors.NewTransportError("gateway unreachable", 0, "").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError("read gateway response", resp.StatusCode, "").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewTransportError(
			fmt.Sprintf("gateway returned status %d", resp.StatusCode),
			resp.StatusCode, string(body))
	}

	return body, nil
}
