package model

type Farmacia struct {
	FarmaciaID   uint   `gorm:"column:farmacia_id;primaryKey"`
	NomeFarmacia string `gorm:"column:nome_farmacia;not null"`
}

func (Farmacia) TableName() string { return "farmacias" }
