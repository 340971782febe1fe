package service

import (
	"context"
	"errors"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/model"
	"github.com/NamelessIII/api-webscrap/internal/repository"
)

// ErrSemResultados means the requested page of a well-formed query is empty.
var ErrSemResultados = errors.New("nenhum resultado encontrado")

// HistoricoCache stores rendered pages. Implementations must treat every
// failure as a miss.
type HistoricoCache interface {
	Get(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoResponse, bool)
	Set(ctx context.Context, filter dto.HistoricoFilter, resp *dto.HistoricoResponse)
}

// HistoricoService defines the price-history query contract.
type HistoricoService interface {
	Consultar(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoResponse, error)
}

type historicoService struct {
	repo  repository.HistoricoRepository
	cache HistoricoCache
}

// NewHistoricoService builds the service; cache may be nil.
func NewHistoricoService(repo repository.HistoricoRepository, cache HistoricoCache) HistoricoService {
	return &historicoService{repo: repo, cache: cache}
}

func (s *historicoService) Consultar(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if s.cache != nil {
		if resp, ok := s.cache.Get(ctx, filter); ok {
			return resp, nil
		}
	}

	rows, total, err := s.repo.Listar(ctx, filter, filter.Page, dto.PerPage)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSemResultados
	}

	resp := &dto.HistoricoResponse{
		Data:        AgruparHistorico(rows),
		CurrentPage: filter.Page,
		LastPage:    lastPage(total, dto.PerPage),
		PerPage:     dto.PerPage,
		Total:       total,
	}

	if s.cache != nil {
		s.cache.Set(ctx, filter, resp)
	}
	return resp, nil
}

type chaveGrupo struct {
	descricao, ean, farmacia string
}

// AgruparHistorico folds flat rows into one group per (descricao, EAN,
// farmacia). Groups keep first-appearance order and prices keep row order.
func AgruparHistorico(rows []model.HistoricoLinha) []dto.HistoricoGrupo {
	grupos := make([]dto.HistoricoGrupo, 0)
	indice := make(map[chaveGrupo]int)

	for _, r := range rows {
		k := chaveGrupo{descricao: r.Descricao, ean: r.EAN, farmacia: r.NomeFarmacia}
		i, ok := indice[k]
		if !ok {
			i = len(grupos)
			indice[k] = i
			grupos = append(grupos, dto.HistoricoGrupo{
				Descricao:    r.Descricao,
				EAN:          r.EAN,
				NomeFarmacia: r.NomeFarmacia,
				Precos:       []dto.PrecoItem{},
			})
		}
		grupos[i].Precos = append(grupos[i].Precos, dto.PrecoItem{
			Preco: dto.FormatPreco(r.Preco),
			Data:  r.Data.Format(dto.DataLayout),
		})
	}
	return grupos
}

func lastPage(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
