package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddlewareRecordsMatchedRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())
	app.Get("/pointers/:id", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "missing")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/pointers/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := scrape(t, app)
	assert.Contains(t, body, `interview_coach_http_requests_total{method="GET",path="/pointers/:id",status="404"}`)
}

func TestDomainCounters(t *testing.T) {
	ObserveGateway("stub", time.Now(), nil)
	ObserveGateway("stub", time.Now(), errors.New("boom"))
	ObserveAnalysis(nil)
	ObservePointerChange("created")
	SetPlateauPointers(3)

	app := fiber.New()
	app.Get("/metrics", Handler())
	body := scrape(t, app)

	assert.Contains(t, body, `interview_coach_llm_gateway_calls_total{outcome="error",provider="stub"} 1`)
	assert.Contains(t, body, `interview_coach_feedback_analyses_total{outcome="ok"}`)
	assert.Contains(t, body, `interview_coach_pointer_changes_total{change_type="created"}`)
	assert.Contains(t, body, "interview_coach_plateau_pointers 3")
}
