// Package cache stores rendered history pages in Redis.
package cache

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/infra"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "historico:v1:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HistoricoCache is a best-effort read-through cache: every failure is logged
// and reported as a miss.
type HistoricoCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	breaker *infra.Breaker
}

func NewHistoricoCache(rdb *redis.Client, ttl time.Duration, breaker *infra.Breaker) *HistoricoCache {
	if breaker == nil {
		breaker = infra.NewBreaker(infra.BreakerConfig{})
	}
	return &HistoricoCache{rdb: rdb, ttl: ttl, breaker: breaker}
}

// Key builds a deterministic key from the filter and page.
func Key(filter dto.HistoricoFilter) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(filter.Page))
	if filter.EAN != "" {
		v.Set("ean", filter.EAN)
	} else if filter.Descricao != "" {
		v.Set("descricao", filter.Descricao)
	}
	if filter.FarmaciaIDs != nil {
		ids := make([]string, len(filter.FarmaciaIDs))
		for i, id := range filter.FarmaciaIDs {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		v.Set("farmacia", strings.Join(ids, ","))
	}
	if filter.DataInicio != nil {
		v.Set("inicio", filter.DataInicio.Format(dto.DataLayout))
	}
	if filter.DataFim != nil {
		v.Set("fim", filter.DataFim.Format(dto.DataLayout))
	}
	return keyPrefix + v.Encode()
}

func (c *HistoricoCache) Get(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoResponse, bool) {
	key := Key(filter)
	var raw []byte
	err := c.breaker.Do(func() error {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("historico cache get failed")
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	var resp dto.HistoricoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("historico cache entry corrupted")
		return nil, false
	}
	return &resp, true
}

func (c *HistoricoCache) Set(ctx context.Context, filter dto.HistoricoFilter, resp *dto.HistoricoResponse) {
	if c.ttl <= 0 {
		return
	}
	key := Key(filter)
	b, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Msg("historico cache encode failed")
		return
	}
	err = c.breaker.Do(func() error {
		return c.rdb.Set(ctx, key, b, c.ttl).Err()
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("historico cache set failed")
	}
}
