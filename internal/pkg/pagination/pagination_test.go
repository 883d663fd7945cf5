package pagination_test

import (
	"net/http/httptest"
	"testing"

	"openshelf/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *pagination.Params {
	t.Helper()

	var params *pagination.Params
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		params = pagination.GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return params
}

func TestGetParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := paramsFor(t, "/items")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, pagination.DefaultLimit, params.Limit)
		assert.Equal(t, 0, params.Offset)
	})

	t.Run("computes offset", func(t *testing.T) {
		params := paramsFor(t, "/items?page=3&limit=10")
		assert.Equal(t, 20, params.Offset)
	})

	t.Run("caps limit and floors page", func(t *testing.T) {
		params := paramsFor(t, "/items?page=-1&limit=9999")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, pagination.MaxLimit, params.Limit)
	})
}

func TestGetMeta(t *testing.T) {
	t.Run("partial last page", func(t *testing.T) {
		meta := pagination.GetMeta(&pagination.Params{Page: 1, Limit: 20}, 45)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		meta := pagination.GetMeta(&pagination.Params{Page: 3, Limit: 20}, 45)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := pagination.GetMeta(&pagination.Params{Page: 1, Limit: 20}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
	})
}
