package monitoring

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_submissions_total",
			Help: "Score submissions by outcome",
		},
		[]string{"outcome"},
	)

	Resets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_resets_total",
			Help: "Leaderboard reset attempts by result",
		},
		[]string{"result"},
	)

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_store_errors_total",
			Help: "Leaderboard file load/save failures",
		},
		[]string{"op"},
	)
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(HttpRequests)
		prometheus.MustRegister(Submissions)
		prometheus.MustRegister(Resets)
		prometheus.MustRegister(StoreErrors)
	})
}

// Middleware counts requests by route pattern so path parameters don't
// blow up label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		HttpRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
