// Package testutil holds helpers shared by package tests. It must only be
// imported from _test.go files.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens a GORM connection to a fresh SQLite file in t.TempDir()
// with the produtos/farmacias/precos tables created.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.Produto{}, &model.Farmacia{}, &model.Preco{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// Seeder inserts catalogue rows and returns their generated IDs.
type Seeder struct {
	t  *testing.T
	db *gorm.DB
}

func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db}
}

func (s *Seeder) Produto(descricao, ean string) uint {
	s.t.Helper()
	p := model.Produto{Descricao: descricao, EAN: ean}
	if err := s.db.Create(&p).Error; err != nil {
		s.t.Fatalf("seed produto: %v", err)
	}
	return p.ProdutoID
}

func (s *Seeder) Farmacia(nome string) uint {
	s.t.Helper()
	f := model.Farmacia{NomeFarmacia: nome}
	if err := s.db.Create(&f).Error; err != nil {
		s.t.Fatalf("seed farmacia: %v", err)
	}
	return f.FarmaciaID
}

// Preco inserts one observation; data is YYYY-MM-DD.
func (s *Seeder) Preco(produtoID, farmaciaID uint, preco string, data string) uint {
	s.t.Helper()
	d, err := time.Parse("2006-01-02", data)
	if err != nil {
		s.t.Fatalf("seed preco: %v", err)
	}
	p := model.Preco{
		ProdutoID:  produtoID,
		FarmaciaID: farmaciaID,
		Preco:      decimal.RequireFromString(preco),
		Data:       model.NewData(d),
	}
	if err := s.db.Create(&p).Error; err != nil {
		s.t.Fatalf("seed preco: %v", err)
	}
	return p.PrecoID
}
