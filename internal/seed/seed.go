// Package seed fills an empty database with demo catalogue and price data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Options control how much data Run generates.
type Options struct {
	Dias    int       // days of history per product/pharmacy pair
	Ate     time.Time // last day of history
	Semente int64     // rand seed; equal seeds give equal data
}

// Stats reports what Run inserted.
type Stats struct {
	Produtos  int
	Farmacias int
	Precos    int
}

var produtos = []model.Produto{
	{Descricao: "Dipirona Monoidratada 500mg 10 comprimidos", EAN: "7896422506250"},
	{Descricao: "Paracetamol 750mg 20 comprimidos", EAN: "7896714211275"},
	{Descricao: "Ibuprofeno 400mg 10 capsulas", EAN: "7896004717463"},
	{Descricao: "Loratadina 10mg 12 comprimidos", EAN: "7896181900962"},
	{Descricao: "Omeprazol 20mg 28 capsulas", EAN: "7896261007574"},
	{Descricao: "Soro Fisiologico 0,9% 500ml", EAN: "7898166040118"},
}

var farmacias = []model.Farmacia{
	{NomeFarmacia: "Drogasil"},
	{NomeFarmacia: "Drogaria Sao Paulo"},
	{NomeFarmacia: "Pague Menos"},
	{NomeFarmacia: "Panvel"},
}

const batchSize = 500

// Run inserts the demo catalogue and Dias days of prices for every
// product/pharmacy pair, all inside one transaction. It refuses to run when
// produtos already holds rows.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Stats, error) {
	if opts.Dias < 1 {
		return Stats{}, fmt.Errorf("seed: dias must be positive, got %d", opts.Dias)
	}
	if opts.Ate.IsZero() {
		opts.Ate = time.Now().UTC()
	}
	rng := rand.New(rand.NewSource(opts.Semente))

	var stats Stats
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existentes int64
		if err := tx.Model(&model.Produto{}).Count(&existentes).Error; err != nil {
			return err
		}
		if existentes > 0 {
			return fmt.Errorf("seed: produtos already has %d rows", existentes)
		}

		prods := append([]model.Produto(nil), produtos...)
		if err := tx.Create(&prods).Error; err != nil {
			return fmt.Errorf("seed produtos: %w", err)
		}
		farms := append([]model.Farmacia(nil), farmacias...)
		if err := tx.Create(&farms).Error; err != nil {
			return fmt.Errorf("seed farmacias: %w", err)
		}

		precos := make([]model.Preco, 0, len(prods)*len(farms)*opts.Dias)
		inicio := opts.Ate.AddDate(0, 0, -(opts.Dias - 1))
		for d := 0; d < opts.Dias; d++ {
			dia := model.NewData(inicio.AddDate(0, 0, d))
			for _, p := range prods {
				for _, f := range farms {
					precos = append(precos, model.Preco{
						ProdutoID:  p.ProdutoID,
						FarmaciaID: f.FarmaciaID,
						Preco:      precoAleatorio(rng),
						Data:       dia,
					})
				}
			}
		}
		if err := tx.CreateInBatches(&precos, batchSize).Error; err != nil {
			return fmt.Errorf("seed precos: %w", err)
		}

		stats = Stats{Produtos: len(prods), Farmacias: len(farms), Precos: len(precos)}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	log.Info().
		Int("produtos", stats.Produtos).
		Int("farmacias", stats.Farmacias).
		Int("precos", stats.Precos).
		Msg("seed complete")
	return stats, nil
}

// precoAleatorio returns a price between 2.00 and 60.00 with two decimals.
func precoAleatorio(rng *rand.Rand) decimal.Decimal {
	cents := 200 + rng.Int63n(5801)
	return decimal.New(cents, -2)
}
