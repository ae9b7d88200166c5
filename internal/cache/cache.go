package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	"github.com/go-redis/redis/v8"
)

// Cache é um cache-aside fino sobre Redis, usado hoje apenas pelo
// calendário de disponibilidade (resultado grosseiro, TTL curto).
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg *config.Config) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	return &Cache{
		rdb: rdb,
		ttl: cfg.CalendarCacheTTL,
	}
}

// GetJSON carrega e desserializa a chave em dest. Retorna false em
// miss ou erro: cache indisponível nunca derruba a leitura.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

// SetJSON grava a chave com o TTL padrão, em best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key, raw, c.ttl)
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
