package v1

import (
	"time"

	"github.com/Behyna/paylink-reconciler/internal/api/contract"
	"github.com/Behyna/paylink-reconciler/internal/api/validator"
	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultListLimit   = 50
	defaultPollLimit   = 100
	defaultWindowHours = 24
)

type Handler struct {
	logger        *zap.Logger
	webhook       service.WebhookService
	ledger        service.LedgerService
	poller        service.PollerService
	notifications service.NotificationService
	XValidator    validator.IXValidator
}

func NewHandler(logger *zap.Logger, webhook service.WebhookService, ledger service.LedgerService,
	poller service.PollerService, notifications service.NotificationService, xValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:        logger,
		webhook:       webhook,
		ledger:        ledger,
		poller:        poller,
		notifications: notifications,
		XValidator:    xValidator,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	var req ListTransactionsRequest
	if responseError := h.XValidator.QueryValidator(&req, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid list transactions request", zap.String("error", responseError.Message))
		return contract.Reject(c, responseError)
	}

	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	resp, err := h.ledger.List(c.UserContext(), service.ListTransactionsQuery{
		State:   req.State,
		OrderID: req.OrderID,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return err
	}

	result := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(resp.Transactions)),
		Total:        resp.Total,
	}
	for i := range resp.Transactions {
		result.Transactions = append(result.Transactions, newTransactionResponse(&resp.Transactions[i]))
	}

	return contract.Success(c, fiber.StatusOK, "", result)
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("id")

	tx, err := h.ledger.FindByTransactionID(c.UserContext(), transactionID)
	if err != nil {
		return err
	}

	return contract.Success(c, fiber.StatusOK, "", newTransactionResponse(tx))
}

func (h *Handler) GetOrderTransaction(c *fiber.Ctx) error {
	orderID := c.Params("orderID")

	tx, err := h.ledger.FindByOrderID(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return contract.Success(c, fiber.StatusOK, "", newTransactionResponse(tx))
}

func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if responseError := h.XValidator.Validator(&req, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid create transaction request", zap.String("error", responseError.Message))
		return contract.Reject(c, responseError)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.NewServiceError(constants.ErrCodeInvalidTransaction, err)
	}

	tx, err := h.ledger.Create(c.UserContext(), service.CreateTransactionCommand{
		OrderID:              req.OrderID,
		Amount:               amount,
		Currency:             req.Currency,
		CustomerEmail:        req.CustomerEmail,
		CustomerName:         req.CustomerName,
		PaymentLinkReference: req.PaymentLinkReference,
		PaymentLinkAddress:   req.PaymentLinkAddress,
	})
	if err != nil {
		h.logger.Error("Failed to create transaction",
			zap.Error(err),
			zap.String("orderID", req.OrderID),
			zap.String("amount", req.Amount))
		return err
	}

	h.logger.Info("Transaction created",
		zap.String("transactionID", tx.TransactionID),
		zap.String("orderID", req.OrderID))

	return contract.Success(c, fiber.StatusCreated, "transaction created", newTransactionResponse(tx))
}

func (h *Handler) AttachPaymentLink(c *fiber.Ctx) error {
	transactionID := c.Params("id")

	var req AttachPaymentLinkRequest
	if responseError := h.XValidator.Validator(&req, constants.MessageErrorFormat, c); responseError.Code != "" {
		return contract.Reject(c, responseError)
	}

	tx, err := h.ledger.AttachPaymentLink(c.UserContext(), transactionID, req.Reference, req.Address)
	if err != nil {
		return err
	}

	return contract.Success(c, fiber.StatusOK, "payment link attached", newTransactionResponse(tx))
}

func (h *Handler) PollTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("id")

	result, err := h.poller.PollByTransactionID(c.UserContext(), transactionID)
	if err != nil {
		h.logger.Warn("Failed to poll transaction", zap.String("transactionID", transactionID), zap.Error(err))
		return err
	}

	return contract.Success(c, fiber.StatusOK, "", result)
}

func (h *Handler) Poll(c *fiber.Ctx) error {
	var req PollRequest
	if responseError := h.XValidator.Validator(&req, constants.MessageErrorFormat, c); responseError.Code != "" {
		return contract.Reject(c, responseError)
	}

	if req.Limit == 0 {
		req.Limit = defaultPollLimit
	}

	var (
		result service.PollBatchResult
		err    error
	)
	switch req.Mode {
	case PollModeWindow:
		hours := req.WindowHours
		if hours == 0 {
			hours = defaultWindowHours
		}
		since := time.Now().Add(-time.Duration(hours) * time.Hour)
		result, err = h.poller.PollSince(c.UserContext(), since, req.Limit)
	default:
		result, err = h.poller.PollPending(c.UserContext(), req.Limit)
	}
	if err != nil {
		h.logger.Error("Batch poll failed", zap.String("mode", req.Mode), zap.Error(err))
		return err
	}

	h.logger.Info("Batch poll completed",
		zap.String("mode", req.Mode),
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))

	return contract.Success(c, fiber.StatusOK, "", result)
}

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	var req ListNotificationsRequest
	if responseError := h.XValidator.QueryValidator(&req, constants.MessageErrorFormat, c); responseError.Code != "" {
		return contract.Reject(c, responseError)
	}

	notifications, err := h.notifications.List(c.UserContext(), service.ListNotificationsQuery{
		TransactionID: req.TransactionID,
		Limit:         req.Limit,
	})
	if err != nil {
		return err
	}

	return contract.Success(c, fiber.StatusOK, "", ListNotificationsResponse{
		Notifications: notifications,
		Count:         len(notifications),
	})
}
