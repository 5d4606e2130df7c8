package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gfg-stable-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Email string `json:"email" query:"email" validate:"required,email"`
	Page  int    `json:"page" query:"page" validate:"omitempty,min=1"`
}

// run executes fn inside a request and returns the error it produced.
func run(t *testing.T, req *http.Request, route string, fn func(c *fiber.Ctx) error) error {
	t.Helper()
	var got error
	app := fiber.New()
	app.All(route, func(c *fiber.Ctx) error {
		got = fn(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(req)
	require.NoError(t, err)
	return got
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBody(t *testing.T) {
	var out bindTarget
	err := run(t, jsonRequest(`{"email":"a@b.com","page":2}`), "/", func(c *fiber.Ctx) error { return Body(c, &out) })
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page)

	err = run(t, jsonRequest(`{"email":`), "/", func(c *fiber.Ctx) error { return Body(c, &bindTarget{}) })
	assert.Equal(t, ErrInvalidBody, err)

	err = run(t, jsonRequest(`{"email":"nope"}`), "/", func(c *fiber.Ctx) error { return Body(c, &bindTarget{}) })
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Validation failed", ae.Message)
	details := ae.Details.([]FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].Field)
}

func TestQuery(t *testing.T) {
	var out bindTarget
	err := run(t, httptest.NewRequest(http.MethodGet, "/?email=a@b.com&page=3", nil), "/",
		func(c *fiber.Ctx) error { return Query(c, &out) })
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page)

	err = run(t, httptest.NewRequest(http.MethodGet, "/?email=a@b.com&page=abc", nil), "/",
		func(c *fiber.Ctx) error { return Query(c, &bindTarget{}) })
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Validation failed", ae.Message)
	assert.Equal(t, "invalid", ae.Details.([]FieldError)[0].Type)

	err = run(t, httptest.NewRequest(http.MethodGet, "/?email=a@b.com&page=0", nil), "/",
		func(c *fiber.Ctx) error { return Query(c, &bindTarget{}) })
	assert.Error(t, err)
}

func TestParamID(t *testing.T) {
	cases := []struct {
		path string
		want uint
		ok   bool
	}{
		{"/items/12", 12, true},
		{"/items/0", 0, false},
		{"/items/-3", 0, false},
		{"/items/abc", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var id uint
			err := run(t, httptest.NewRequest(http.MethodGet, tc.path, nil), "/items/:id", func(c *fiber.Ctx) error {
				var err error
				id, err = ParamID(c, "id")
				return err
			})
			if !tc.ok {
				require.Error(t, err)
				assert.Equal(t, "Invalid id", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}
