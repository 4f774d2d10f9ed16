package monitoring

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendString(c.Params("id"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "nope")
	})

	ok := HttpRequests.WithLabelValues("GET", "/items/:id", "200")
	teapot := HttpRequests.WithLabelValues("GET", "/boom", "418")
	beforeOK := testutil.ToFloat64(ok)
	beforeTeapot := testutil.ToFloat64(teapot)

	for _, p := range []string{"/items/1", "/items/2", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok))
	assert.Equal(t, beforeTeapot+1, testutil.ToFloat64(teapot))
}
