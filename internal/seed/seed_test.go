package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/model"
	"github.com/NamelessIII/api-webscrap/internal/repository"
	"github.com/NamelessIII/api-webscrap/internal/seed"
	"github.com/NamelessIII/api-webscrap/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InsertsEveryPairForEveryDay(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	stats, err := seed.Run(context.Background(), db, seed.Options{Dias: 3, Ate: ate, Semente: 42})
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Produtos)
	assert.Equal(t, 4, stats.Farmacias)
	assert.Equal(t, 6*4*3, stats.Precos)

	var count int64
	require.NoError(t, db.Model(&model.Preco{}).Count(&count).Error)
	assert.EqualValues(t, stats.Precos, count)

	inicio := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	rows, total, err := repository.NewHistoricoRepository(db).Listar(context.Background(),
		dto.HistoricoFilter{EAN: "7896422506250", DataInicio: &inicio, DataFim: &ate}, 1, dto.PerPage)
	require.NoError(t, err)
	assert.EqualValues(t, 4*3, total)
	for _, r := range rows {
		assert.True(t, r.Preco.GreaterThanOrEqual(decimal.NewFromInt(2)), r.Preco.String())
		assert.True(t, r.Preco.LessThanOrEqual(decimal.NewFromInt(60)), r.Preco.String())
		assert.False(t, r.Data.Before(inicio))
		assert.False(t, r.Data.After(ate))
	}
}

func TestRun_RefusesNonEmptyDatabase(t *testing.T) {
	db := testutil.OpenSQLite(t)
	testutil.NewSeeder(t, db).Produto("existente", "1")

	_, err := seed.Run(context.Background(), db, seed.Options{Dias: 1})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Farmacia{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRun_RejectsNonPositiveDias(t *testing.T) {
	db := testutil.OpenSQLite(t)
	_, err := seed.Run(context.Background(), db, seed.Options{Dias: 0})
	assert.Error(t, err)
}

func TestRun_SameSeedSamePrices(t *testing.T) {
	ate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	precos := func() []string {
		db := testutil.OpenSQLite(t)
		_, err := seed.Run(context.Background(), db, seed.Options{Dias: 2, Ate: ate, Semente: 7})
		require.NoError(t, err)
		var out []model.Preco
		require.NoError(t, db.Order("preco_id").Find(&out).Error)
		s := make([]string, len(out))
		for i, p := range out {
			s[i] = p.Preco.String()
		}
		return s
	}
	assert.Equal(t, precos(), precos())
}
