package model

import "github.com/shopspring/decimal"

// Preco is one observation of a product's price at a pharmacy on a given day.
// Rows are append-only; this service never writes them outside seeding.
// Reads go through the precos ⋈ produtos ⋈ farmacias join, never through
// GORM associations.
type Preco struct {
	PrecoID    uint            `gorm:"column:preco_id;primaryKey"`
	ProdutoID  uint            `gorm:"column:produto_id;not null;index"`
	FarmaciaID uint            `gorm:"column:farmacia_id;not null;index"`
	Preco      decimal.Decimal `gorm:"column:preco;type:decimal(10,2);not null"`
	Data       Data            `gorm:"column:data;type:date;not null;index"`
}

func (Preco) TableName() string { return "precos" }

// HistoricoLinha is the flat projection of precos ⋈ produtos ⋈ farmacias.
type HistoricoLinha struct {
	Descricao    string          `gorm:"column:descricao"`
	EAN          string          `gorm:"column:ean"`
	NomeFarmacia string          `gorm:"column:nome_farmacia"`
	Preco        decimal.Decimal `gorm:"column:preco"`
	Data         Data            `gorm:"column:data"`
}
