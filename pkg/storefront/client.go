package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Behyna/paylink-reconciler/pkg/httpclient"
	"github.com/Behyna/paylink-reconciler/pkg/tagset"
)

const (
	orderGIDPrefix  = "gid://shopify/Order/"
	accessTokenHead = "X-Shopify-Access-Token"
)

type Client interface {
	GetOrder(ctx context.Context, orderID string) (Order, error)
	UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error
	MarkAsPaid(ctx context.Context, orderID string) (MarkAsPaidResult, error)
}

type client struct {
	http   httpclient.HTTPClient
	config Config
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	cfg.StoreURL = normalizeStoreURL(cfg.StoreURL)
	return &client{config: cfg, http: httpClient}
}

// OrderGID derives the platform global identifier from a numeric order id.
func OrderGID(orderID string) string {
	if strings.HasPrefix(orderID, orderGIDPrefix) {
		return orderID
	}
	return orderGIDPrefix + strings.TrimSpace(orderID)
}

func parseOrderID(orderID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(orderID), orderGIDPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOrderID, orderID)
	}
	return id, nil
}

func normalizeStoreURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

func (c *client) orderURL(id int64) string {
	return fmt.Sprintf("%s/admin/api/%s/orders/%d.json", c.config.StoreURL, c.config.APIVersion, id)
}

func (c *client) graphQLURL() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.config.StoreURL, c.config.APIVersion)
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		accessTokenHead: c.config.AccessToken,
	}
}

func (c *client) GetOrder(ctx context.Context, orderID string) (Order, error) {
	if !c.config.configured() {
		return Order{}, ErrUnconfigured
	}

	id, err := parseOrderID(orderID)
	if err != nil {
		return Order{}, err
	}

	resp, err := c.http.Get(ctx, c.orderURL(id), c.headers())
	if err != nil {
		return Order{}, transportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return Order{}, MapStatusToError(resp.StatusCode)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Order{}, fmt.Errorf("decoding error: %w", err)
	}

	order := Order{
		ID:              strconv.FormatInt(envelope.Order.ID, 10),
		Name:            envelope.Order.Name,
		Tags:            tagset.Parse(envelope.Order.Tags),
		FinancialStatus: envelope.Order.FinancialStatus,
	}
	if envelope.Order.Note != nil {
		order.Note = *envelope.Order.Note
	}

	return order, nil
}

func (c *client) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error {
	if !c.config.configured() {
		return ErrUnconfigured
	}

	id, err := parseOrderID(orderID)
	if err != nil {
		return err
	}

	request := orderUpdateRequest{Order: orderUpdateBody{ID: id, Tags: update.Tags, Note: update.Note}}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	resp, err := c.http.Put(ctx, c.orderURL(id), &buf, c.headers())
	if err != nil {
		return transportError(err)
	}

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == StatusOK || resp.StatusCode == StatusCreated {
		return nil
	}

	return MapStatusToError(resp.StatusCode)
}

func (c *client) MarkAsPaid(ctx context.Context, orderID string) (MarkAsPaidResult, error) {
	if !c.config.configured() {
		return MarkAsPaidResult{}, ErrUnconfigured
	}

	if _, err := parseOrderID(orderID); err != nil {
		return MarkAsPaidResult{}, err
	}

	gid := OrderGID(orderID)
	request := graphQLRequest{
		Query:     markAsPaidMutation,
		Variables: map[string]any{"input": map[string]any{"id": gid}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return MarkAsPaidResult{}, fmt.Errorf("encoding error: %w", err)
	}

	resp, err := c.http.Post(ctx, c.graphQLURL(), &buf, c.headers())
	if err != nil {
		return MarkAsPaidResult{}, transportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return MarkAsPaidResult{}, MapStatusToError(resp.StatusCode)
	}

	var response markAsPaidResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return MarkAsPaidResult{}, fmt.Errorf("decoding error: %w", err)
	}

	if len(response.Errors) > 0 {
		return MarkAsPaidResult{}, fmt.Errorf("%w: %s", ErrGraphQL, response.Errors[0].Message)
	}

	payload := response.Data.OrderMarkAsPaid
	if payload == nil {
		return MarkAsPaidResult{}, fmt.Errorf("%w: empty orderMarkAsPaid payload", ErrGraphQL)
	}

	if len(payload.UserErrors) > 0 {
		return MarkAsPaidResult{}, UserErrorsError{Errors: payload.UserErrors}
	}

	result := MarkAsPaidResult{OrderGID: gid}
	if payload.Order != nil {
		result.OrderGID = payload.Order.ID
		result.Name = payload.Order.Name
		result.DisplayFinancialStatus = payload.Order.DisplayFinancialStatus
	}

	return result, nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return ErrTimeout
	}

	return err
}
