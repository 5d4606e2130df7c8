package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return Success(c, "done", fiber.Map{"a": 1}) })
	app.Get("/created", func(c *fiber.Ctx) error { return SuccessCreated(c, "made", nil) })
	app.Get("/page", func(c *fiber.Ctx) error {
		return Paginated(c, []int{1, 2}, Pagination{Page: 1, Limit: 2, Total: 3, TotalPages: 2})
	})
	app.Get("/bad", func(c *fiber.Ctx) error { return ValidationFailed(c, []string{"x"}) })

	code, body := decode(t, app, "/ok")
	assert.Equal(t, 200, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])

	code, body = decode(t, app, "/created")
	assert.Equal(t, 201, code)
	assert.Contains(t, body, "data")

	_, body = decode(t, app, "/page")
	p := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), p["totalPages"])
	assert.NotContains(t, body, "message")

	code, body = decode(t, app, "/bad")
	assert.Equal(t, 400, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
}
