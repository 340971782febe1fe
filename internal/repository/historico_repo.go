package repository

import (
	"context"
	"fmt"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/model"

	"gorm.io/gorm"
)

// HistoricoRepository defines the read contract over precos ⋈ produtos ⋈ farmacias.
// Services depend on this interface, not on the concrete GORM implementation.
type HistoricoRepository interface {
	// Listar returns one page of flat history rows plus the row count of the
	// whole filtered query.
	Listar(ctx context.Context, filter dto.HistoricoFilter, page, perPage int) ([]model.HistoricoLinha, int64, error)
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository {
	return &historicoRepo{db: db}
}

var colunasHistorico = []string{
	"produtos.descricao",
	"produtos.ean",
	"farmacias.nome_farmacia",
	"precos.preco",
	"precos.data",
}

func (r *historicoRepo) Listar(
	ctx context.Context,
	filter dto.HistoricoFilter,
	page, perPage int,
) ([]model.HistoricoLinha, int64, error) {
	if page < 1 {
		page = 1
	}

	// New session so Count and the page query don't share statement state.
	q := baseHistorico(r.db.WithContext(ctx)).
		Scopes(EscoposHistorico(filter)...).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count historico: %w", err)
	}

	rows := make([]model.HistoricoLinha, 0, perPage)
	offset := (page - 1) * perPage
	if err := q.
		Select(colunasHistorico).
		Order("precos.preco_id ASC").
		Limit(perPage).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list historico: %w", err)
	}

	return rows, total, nil
}

func baseHistorico(db *gorm.DB) *gorm.DB {
	return db.Table("precos").
		Joins("JOIN produtos ON precos.produto_id = produtos.produto_id").
		Joins("JOIN farmacias ON precos.farmacia_id = farmacias.farmacia_id")
}
