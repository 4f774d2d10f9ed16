package leaderboard

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"scoreboard/internal/monitoring"
)

var clientMessages = map[error]string{
	ErrInvalidFormat:     "Invalid data format",
	ErrScoreOutOfRange:   "Score out of range",
	ErrIncorrectPassword: "Incorrect password",
}

func RegisterRoutes(r fiber.Router, service *Service) {

	r.Get("/leaderboard", func(c *fiber.Ctx) error {
		return c.JSON(service.Board())
	})

	r.Post("/leaderboard", func(c *fiber.Ctx) error {
		req, err := ParseSubmitRequest(c.Body())
		if err != nil {
			monitoring.Submissions.WithLabelValues("rejected").Inc()
			return reject(c, fiber.StatusBadRequest, err)
		}

		entry, err := req.Entry(time.Now())
		if err != nil {
			monitoring.Submissions.WithLabelValues("rejected").Inc()
			return reject(c, fiber.StatusBadRequest, err)
		}

		board, _ := service.Submit(entry)

		return c.JSON(fiber.Map{
			"ok":    true,
			"board": board,
		})
	})

	r.Post("/leaderboard/reset", func(c *fiber.Ctx) error {
		type Req struct {
			Password string `json:"password"`
		}

		var body Req
		if err := c.BodyParser(&body); err != nil {
			body.Password = ""
		}

		if err := service.Reset(body.Password); err != nil {
			return reject(c, fiber.StatusForbidden, err)
		}

		return c.JSON(fiber.Map{"ok": true})
	})
}

func reject(c *fiber.Ctx, status int, err error) error {
	msg := err.Error()
	for known, m := range clientMessages {
		if errors.Is(err, known) {
			msg = m
			break
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":    false,
		"error": msg,
	})
}
