package repository

import (
	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/model"

	"gorm.io/gorm"
)

// Scope is a GORM scope that narrows the history query.
type Scope = func(*gorm.DB) *gorm.DB

// filtroHistorico yields the scope for one predicate, or nil when the filter
// does not constrain it.
type filtroHistorico func(dto.HistoricoFilter) Scope

// Applied in order; every returned scope is ANDed into the query.
var filtrosHistorico = []filtroHistorico{
	porProduto,
	porFarmacias,
	porPeriodo,
}

// EscoposHistorico returns the scopes active for filter.
func EscoposHistorico(filter dto.HistoricoFilter) []Scope {
	scopes := make([]Scope, 0, len(filtrosHistorico))
	for _, f := range filtrosHistorico {
		if s := f(filter); s != nil {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// porProduto matches the EAN exactly; the description substring is only used
// when no EAN was given.
func porProduto(f dto.HistoricoFilter) Scope {
	switch {
	case f.EAN != "":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("produtos.ean = ?", f.EAN)
		}
	case f.Descricao != "":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("produtos.descricao LIKE ?", "%"+f.Descricao+"%")
		}
	}
	return nil
}

// porFarmacias restricts to the listed pharmacies. An empty, non-nil list
// renders as IN (NULL) and matches no row.
func porFarmacias(f dto.HistoricoFilter) Scope {
	if f.FarmaciaIDs == nil {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("precos.farmacia_id IN ?", f.FarmaciaIDs)
	}
}

// porPeriodo bounds precos.data; both ends are inclusive.
func porPeriodo(f dto.HistoricoFilter) Scope {
	switch {
	case f.DataInicio != nil && f.DataFim != nil:
		inicio, fim := model.NewData(*f.DataInicio), model.NewData(*f.DataFim)
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("precos.data BETWEEN ? AND ?", inicio, fim)
		}
	case f.DataInicio != nil:
		inicio := model.NewData(*f.DataInicio)
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("precos.data >= ?", inicio)
		}
	case f.DataFim != nil:
		fim := model.NewData(*f.DataFim)
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("precos.data <= ?", fim)
		}
	}
	return nil
}
