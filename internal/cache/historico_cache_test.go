package cache

import (
	"context"
	"testing"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/infra"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*HistoricoCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewHistoricoCache(rdb, ttl, nil), mr
}

func sampleResponse() *dto.HistoricoResponse {
	return &dto.HistoricoResponse{
		Data: []dto.HistoricoGrupo{{
			Descricao:    "Dipirona",
			EAN:          "7890000000011",
			NomeFarmacia: "Drogaria X",
			Precos: []dto.PrecoItem{
				{Preco: "10.50", Data: "2024-01-01"},
			},
		}},
		CurrentPage: 1,
		LastPage:    1,
		PerPage:     dto.PerPage,
		Total:       1,
	}
}

func TestKey_Deterministic(t *testing.T) {
	inicio := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := dto.HistoricoFilter{EAN: "123", FarmaciaIDs: []uint{1, 2}, DataInicio: &inicio, Page: 2}
	b := dto.HistoricoFilter{EAN: "123", FarmaciaIDs: []uint{1, 2}, DataInicio: &inicio, Page: 2}

	assert.Equal(t, Key(a), Key(b))
	assert.Equal(t, "historico:v1:ean=123&farmacia=1%2C2&inicio=2024-01-01&page=2", Key(a))
}

func TestKey_IgnoresDescricaoWhenEANPresent(t *testing.T) {
	withDesc := dto.HistoricoFilter{EAN: "123", Descricao: "abc", Page: 1}
	without := dto.HistoricoFilter{EAN: "123", Page: 1}
	assert.Equal(t, Key(without), Key(withDesc))

	assert.NotEqual(t, Key(dto.HistoricoFilter{Page: 1}), Key(dto.HistoricoFilter{Page: 2}))
}

func TestKey_EmptyFarmaciaListDiffersFromAbsent(t *testing.T) {
	absent := dto.HistoricoFilter{Page: 1}
	empty := dto.HistoricoFilter{FarmaciaIDs: []uint{}, Page: 1}
	assert.NotEqual(t, Key(absent), Key(empty))
}

func TestHistoricoCache_SetThenGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	filter := dto.HistoricoFilter{Descricao: "dipirona", Page: 1}

	_, ok := c.Get(ctx, filter)
	assert.False(t, ok)

	c.Set(ctx, filter, sampleResponse())

	got, ok := c.Get(ctx, filter)
	require.True(t, ok)
	assert.Equal(t, "Dipirona", got.Data[0].Descricao)
	assert.Equal(t, "10.50", got.Data[0].Precos[0].Preco)
	assert.EqualValues(t, 1, got.Total)

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, filter)
	assert.False(t, ok)
}

func TestHistoricoCache_ZeroTTLDisablesWrites(t *testing.T) {
	c, mr := newTestCache(t, 0)

	c.Set(context.Background(), dto.HistoricoFilter{Page: 1}, sampleResponse())

	assert.Empty(t, mr.Keys())
}

func TestHistoricoCache_CorruptedEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	filter := dto.HistoricoFilter{Page: 1}
	require.NoError(t, mr.Set(Key(filter), "{not json"))

	_, ok := c.Get(context.Background(), filter)
	assert.False(t, ok)
}

func TestHistoricoCache_RedisDownOpensBreaker(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	breaker := infra.NewBreaker(infra.BreakerConfig{MaxFailures: 2, OpenDuration: time.Hour})
	c := NewHistoricoCache(rdb, time.Minute, breaker)
	mr.Close()

	for i := 0; i < 2; i++ {
		_, ok := c.Get(context.Background(), dto.HistoricoFilter{Page: 1})
		assert.False(t, ok)
	}
	assert.Equal(t, infra.BreakerOpen, breaker.State())
}
