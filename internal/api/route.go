package api

import (
	"crypto/subtle"

	"github.com/Behyna/paylink-reconciler/internal/api/v1"
	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

const AdminTokenHeader = "X-Admin-Token"

func SetupRoutes(app *fiber.App, root *Handler, handler *v1.Handler, adminToken string) {
	app.Get("/ping", root.Pong)
	app.Get("/health", root.Health())
	app.Get("/metrics", root.Metrics())

	app.Post("/webhooks/processor", handler.Webhook)
	app.Post("/izipay/webhook", handler.Webhook)

	admin := app.Group("/api/v1")
	if adminToken != "" {
		admin.Use(AdminAuth(adminToken))
	}

	admin.Get("/ping", handler.Pong)
	admin.Get("/transactions", handler.ListTransactions)
	admin.Post("/transactions", handler.CreateTransaction)
	admin.Get("/transactions/:id", handler.GetTransaction)
	admin.Put("/transactions/:id/payment-link", handler.AttachPaymentLink)
	admin.Post("/transactions/:id/poll", handler.PollTransaction)
	admin.Get("/orders/:orderID/transaction", handler.GetOrderTransaction)
	admin.Post("/poll", handler.Poll)
	admin.Get("/notifications", handler.ListNotifications)
}

// AdminAuth requires the X-Admin-Token header to equal token.
func AdminAuth(token string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup: "header:" + AdminTokenHeader,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    constants.ErrCodeUnauthorized,
				"message": constants.GetErrorMessage(constants.ErrCodeUnauthorized),
			})
		},
	})
}
