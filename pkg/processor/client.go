package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Behyna/paylink-reconciler/pkg/httpclient"
	"github.com/google/uuid"
)

const (
	TokenEndpoint  = "/security/v1/Token/Generate"
	SearchEndpoint = "/paymentlink/api/v1/process/search"

	defaultLanguage = "ESP"
)

// Client queries the state of hosted payment links.
type Client interface {
	GenerateToken(ctx context.Context, requestID string) (string, error)
	SearchPaymentLink(ctx context.Context, paymentLinkID string) (PaymentLink, error)
}

type client struct {
	http      httpclient.HTTPClient
	config    Config
	requestID func() string
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{config: cfg, http: httpClient, requestID: newRequestID}
}

// NewClientWithRequestID fixes the per-call request id, for deterministic callers.
func NewClientWithRequestID(cfg Config, httpClient httpclient.HTTPClient, requestID func() string) Client {
	c := NewClient(cfg, httpClient).(*client)
	c.requestID = requestID
	return c
}

func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

func (c *client) GenerateToken(ctx context.Context, requestID string) (string, error) {
	if !c.config.configured() {
		return "", ErrUnconfigured
	}

	request := TokenRequest{
		RequestSource: requestSourceEcommerce,
		MerchantCode:  c.config.MerchantCode,
		OrderNumber:   requestID,
		PublicKey:     c.config.PublicKey,
		Amount:        "0.00",
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"transactionId": requestID,
	}

	var response TokenResponse
	if err := c.post(ctx, TokenEndpoint, request, headers, &response); err != nil {
		return "", err
	}

	if response.Code != CodeSuccess {
		return "", rejected("token", response.Code, response.Message)
	}

	if response.Response.Token == "" {
		return "", ErrEmptyToken
	}

	return response.Response.Token, nil
}

func (c *client) SearchPaymentLink(ctx context.Context, paymentLinkID string) (PaymentLink, error) {
	requestID := c.requestID()

	token, err := c.GenerateToken(ctx, requestID)
	if err != nil {
		return PaymentLink{}, err
	}

	request := SearchRequest{
		PaymentLinkID: paymentLinkID,
		MerchantCode:  c.config.MerchantCode,
		LanguageUsed:  c.config.Language,
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + token,
		"transactionId": requestID,
	}

	var response SearchResponse
	if err := c.post(ctx, SearchEndpoint, request, headers, &response); err != nil {
		return PaymentLink{}, err
	}

	if response.Code != CodeSuccess {
		return PaymentLink{}, rejected("search", response.Code, response.Message)
	}

	link := response.Response
	if link.PaymentLinkID == "" {
		link.PaymentLinkID = paymentLinkID
	}

	return link, nil
}

func (c *client) post(ctx context.Context, endpoint string, request any, headers map[string]string, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	resp, err := c.http.Post(ctx, c.config.BaseURL+endpoint, &buf, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}

		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return MapStatusToError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding error: %w", err)
	}

	return nil
}
