package model

// Produto is a catalogue entry scraped from the pharmacy sites.
type Produto struct {
	ProdutoID uint   `gorm:"column:produto_id;primaryKey"`
	Descricao string `gorm:"column:descricao;not null"`
	EAN       string `gorm:"column:ean;size:15;index"`
}

func (Produto) TableName() string { return "produtos" }
