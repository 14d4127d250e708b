package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		l, o := parseLimitOffset(c, 20)
		return c.SendString(fmt.Sprintf("%d/%d", l, o))
	})

	cases := map[string]string{
		"/":                     "20/0",
		"/?limit=5&offset=10":   "5/10",
		"/?limit=999":           "200/0",
		"/?limit=-1&offset=-3":  "20/0",
		"/?limit=abc&offset=xx": "20/0",
	}
	for target, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, want, string(body), target)
	}
}
