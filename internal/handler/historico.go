package handler

import (
	"errors"
	"net/http"

	"github.com/NamelessIII/api-webscrap/internal/apierror"
	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoricoHandler serves the price-history search.
type HistoricoHandler struct {
	svc service.HistoricoService
}

func NewHistoricoHandler(svc service.HistoricoService) *HistoricoHandler {
	return &HistoricoHandler{svc: svc}
}

// Consultar godoc
// @Summary      Histórico de preços por produto e farmácia
// @Description  Filtra o histórico por EAN ou descrição, farmácias e período; 100 linhas por página, agrupadas por produto+farmácia.
// @Tags         historico
// @Produce      json
// @Param        ean          query    string  false "EAN exato (máx. 15 caracteres); tem precedência sobre descricao"
// @Param        descricao    query    string  false "Trecho da descrição (máx. 255 caracteres)"
// @Param        farmacia     query    string  false "IDs de farmácia separados por espaço ou +"
// @Param        data-inicio  query    string  false "Data inicial (YYYY-MM-DD), inclusiva"
// @Param        data-fim     query    string  false "Data final (YYYY-MM-DD), inclusiva"
// @Param        page         query    int     false "Página (default 1)"
// @Success      200  {object} dto.HistoricoResponse
// @Failure      400  {object} apierror.ValidationError
// @Failure      404  {object} apierror.APIError
// @Router       /api/historico [get]
func (h *HistoricoHandler) Consultar(c *gin.Context) {
	var q dto.HistoricoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation(map[string][]string{"query": {err.Error()}}))
		return
	}

	fields, err := validationFields(q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if fields != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return
	}

	filter, err := q.Filter()
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.svc.Consultar(c.Request.Context(), filter)
	if errors.Is(err, service.ErrSemResultados) {
		c.JSON(http.StatusNotFound, apierror.New(apierror.MsgNenhumResultado))
		return
	}
	if err != nil {
		// rendered as 500 by middleware.ErrorHandler
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
