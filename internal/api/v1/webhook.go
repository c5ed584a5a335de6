package v1

import (
	"bytes"
	"encoding/json"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Webhook receives a processor state report as JSON or form data.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	req, payload, err := parseWebhook(c)
	if err != nil {
		h.logger.Warn("Failed to parse webhook body",
			zap.Error(err),
			zap.String("contentType", c.Get(fiber.HeaderContentType)),
			zap.ByteString("body", c.Body()))
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	resp, err := h.webhook.Handle(c.UserContext(), service.WebhookNotification{
		TransactionID:        req.transactionID(),
		State:                req.state(),
		PaymentLinkReference: req.paymentLinkID(),
		Payload:              payload,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// parseWebhook decodes the body and returns it as JSON for the journal.
func parseWebhook(c *fiber.Ctx) (WebhookRequest, []byte, error) {
	var req WebhookRequest

	body := bytes.TrimSpace(c.Body())
	if c.Is("json") || (len(body) > 0 && body[0] == '{') {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, nil, err
		}
		return req, body, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return req, nil, err
	}

	fields := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields[string(key)] = string(value)
	})
	if len(fields) == 0 {
		fields["transactionId"] = req.transactionID()
		fields["state"] = req.state()
		fields["paymentLinkId"] = req.paymentLinkID()
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return req, nil, err
	}

	return req, payload, nil
}
