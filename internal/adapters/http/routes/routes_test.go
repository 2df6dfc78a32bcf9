package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcbp-mortgage/internal/adapters/persistence/repositories"
	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/pkg/metrics"
)

func TestSetup_DropsStaleOfferCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	require.NoError(t, mr.Set(repositories.OfferCatalogKey, `[{"id":9,"bank_name":"Gone Bank"}]`))

	app := fiber.New()
	Setup(app, Deps{
		Redis:   rdb,
		Metrics: metrics.New(),
		Config: &config.Config{
			AppMode: "dev",
			JWT:     config.JWTConfig{Secret: "s", RefreshSecret: "r", AccessTokenMins: 15, RefreshTokenDays: 7},
			Redis:   config.RedisConfig{OfferTTL: time.Minute},
		},
	})

	assert.False(t, mr.Exists(repositories.OfferCatalogKey))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/emi?amount=1000000&roi=8.5&tenure=20", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
