package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

// LowStockKey clave única de la lista de bajo stock.
const LowStockKey = "inventario:bajo-stock"

var _ inventory.LowStockCache = (*LowStockCache)(nil)

// LowStockCache cache-aside de la lista de bajo stock en Redis.
// Los fallos de Redis se registran y se tratan como miss: la base sigue siendo la fuente de verdad.
type LowStockCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewLowStockCache construye la caché; ttl <= 0 usa 30 s.
func NewLowStockCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *LowStockCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LowStockCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *LowStockCache) Get(ctx context.Context) ([]dto.StockPositionResponse, bool) {
	raw, err := c.rdb.Get(ctx, LowStockKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("redis get bajo stock")
		}
		return nil, false
	}
	var list []dto.StockPositionResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn().Err(err).Msg("caché de bajo stock corrupta")
		return nil, false
	}
	return list, true
}

func (c *LowStockCache) Set(ctx context.Context, list []dto.StockPositionResponse) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, LowStockKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis set bajo stock")
	}
}

// Invalidate se llama después de cada commit que cambia cantidades.
func (c *LowStockCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, LowStockKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis del bajo stock")
	}
}
