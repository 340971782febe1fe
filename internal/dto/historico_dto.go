package dto

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PerPage is the fixed page size of the history endpoint.
const PerPage = 100

// PrecoEscala is the scale of precos.preco, decimal(10,2).
const PrecoEscala = 2

// DataLayout is the wire format of every date in requests and responses.
const DataLayout = "2006-01-02"

var dataLayouts = []string{
	DataLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var ErrFarmaciaInvalida = errors.New("farmacia: id invalido")

// ─── Request DTOs ────────────────────────────────────────────────────────────

// HistoricoQuery is the raw query string of GET /api/historico.
// Every field is optional; empty strings count as absent.
type HistoricoQuery struct {
	EAN        string `form:"ean"         validate:"omitempty,max=15"`
	Descricao  string `form:"descricao"   validate:"omitempty,max=255"`
	Farmacia   string `form:"farmacia"    validate:"omitempty,farmacias"`
	DataInicio string `form:"data-inicio" validate:"omitempty,data"`
	DataFim    string `form:"data-fim"    validate:"omitempty,data"`
	Page       string `form:"page"        validate:"omitempty,pagina"`
}

// HistoricoFilter is the validated, preprocessed form of HistoricoQuery.
type HistoricoFilter struct {
	EAN         string
	Descricao   string
	FarmaciaIDs []uint // nil: no filter; empty: matches nothing
	DataInicio  *time.Time
	DataFim     *time.Time
	Page        int
}

// Filter converts an already validated query into a HistoricoFilter.
// Errors only surface when validation was skipped.
func (q HistoricoQuery) Filter() (HistoricoFilter, error) {
	f := HistoricoFilter{
		EAN:       q.EAN,
		Descricao: strings.ReplaceAll(q.Descricao, "+", " "),
		Page:      1,
	}

	ids, err := ParseFarmaciaIDs(q.Farmacia)
	if err != nil {
		return f, err
	}
	f.FarmaciaIDs = ids

	if q.DataInicio != "" {
		d, err := ParseData(q.DataInicio)
		if err != nil {
			return f, err
		}
		f.DataInicio = &d
	}
	if q.DataFim != "" {
		d, err := ParseData(q.DataFim)
		if err != nil {
			return f, err
		}
		f.DataFim = &d
	}

	if q.Page != "" {
		p, err := ParsePage(q.Page)
		if err != nil {
			return f, err
		}
		f.Page = p
	}
	return f, nil
}

// ParseData accepts a calendar date (optionally with a time part, which is
// dropped) and returns midnight UTC of that day.
func ParseData(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dataLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseFarmaciaIDs decodes legacy "+" separators and splits the value on
// spaces. Empty tokens are skipped; any other token must be an unsigned integer.
// An empty s yields nil (no filter); a value made only of separators yields an
// empty, non-nil list, which matches no pharmacy.
func ParseFarmaciaIDs(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}
	tokens := strings.Split(strings.ReplaceAll(s, "+", " "), " ")
	ids := make([]uint, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		id, err := strconv.ParseUint(tok, 10, 0)
		if err != nil {
			return nil, ErrFarmaciaInvalida
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// ParsePage parses a 1-based page number.
func ParsePage(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if p < 1 {
		return 0, errors.New("page: must be >= 1")
	}
	return p, nil
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PrecoItem is one observation. Preco keeps the column scale ("7.50").
type PrecoItem struct {
	Preco string `json:"preco"`
	Data  string `json:"data"`
}

// FormatPreco renders a price with the two decimals of precos.preco.
func FormatPreco(d decimal.Decimal) string {
	return d.StringFixed(PrecoEscala)
}

// HistoricoGrupo collects the prices of one product at one pharmacy
// within a single page of results.
type HistoricoGrupo struct {
	Descricao    string      `json:"descricao"`
	EAN          string      `json:"EAN"`
	NomeFarmacia string      `json:"nome_farmacia"`
	Precos       []PrecoItem `json:"precos"`
}

// HistoricoResponse is returned by GET /api/historico.
type HistoricoResponse struct {
	Data        []HistoricoGrupo `json:"data"`
	CurrentPage int              `json:"current_page"`
	LastPage    int              `json:"last_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
}
