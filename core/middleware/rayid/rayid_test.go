package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("ray_id").(string))
	})

	t.Run("Generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		_, err = uuid.Parse(resp.Header.Get(Header))
		assert.NoError(t, err)
	})

	t.Run("Propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(Header, id)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, id, resp.Header.Get(Header))
	})

	t.Run("GarbageReplaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(Header, "not-a-uuid")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", resp.Header.Get(Header))
	})
}
