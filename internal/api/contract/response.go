package contract

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const TrackIDHeader = "X-Track-Id"

type Response struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	TrackID    string `json:"x_track_id"`
	Result     any    `json:"result"`
}

// TrackID returns the caller's X-Track-Id, or a fresh one.
func TrackID(c *fiber.Ctx) string {
	if id := c.Get(TrackIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

func Success(c *fiber.Ctx, status int, message string, result any) error {
	return c.Status(status).JSON(Response{
		Successful: true,
		Code:       "success",
		Message:    message,
		TrackID:    TrackID(c),
		Result:     result,
	})
}

// Reject writes a validator rejection; the status was set by the validator.
func Reject(c *fiber.Ctx, response Response) error {
	response.Successful = false
	response.TrackID = TrackID(c)
	return c.JSON(response)
}
