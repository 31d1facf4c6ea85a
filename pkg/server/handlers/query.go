package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thaumlab/aspecter"
	"github.com/thaumlab/aspecter/pkg/search"
	"github.com/thaumlab/aspecter/pkg/server/dto"
	"github.com/thaumlab/aspecter/pkg/types"
)

// QueryHandler serves the read side of the API: path recommendation,
// cracking and graph listings.
type QueryHandler struct {
	client aspecter.Aspecter
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(client aspecter.Aspecter) *QueryHandler {
	return &QueryHandler{client: client}
}

// Connect handles POST /api/v1/connect
func (h *QueryHandler) Connect(c *gin.Context) {
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	opts := &search.Options{
		MaxPaths:      req.MaxPaths,
		MaxPathLength: req.MaxPathLength,
	}
	ranked, err := h.client.RecommendWithOptions(c.Request.Context(), req.Begin, req.End, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	paths := make([]dto.PathResult, 0, len(ranked))
	for _, r := range ranked {
		paths = append(paths, dto.PathResult{
			Aspects:     r.Path.Aspects,
			Key:         r.Path.Key(),
			Weights:     r.Weights,
			FinalWeight: r.FinalWeight,
			Length:      r.Path.Len(),
		})
	}

	c.JSON(http.StatusOK, dto.ConnectResponse{
		Begin: req.Begin,
		End:   req.End,
		Paths: paths,
	})
}

// Crack handles POST /api/v1/crack
func (h *QueryHandler) Crack(c *gin.Context) {
	var req dto.CrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	primaries, err := h.client.Crack(req.Quantities)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Result{Success: true, Data: primaries})
}

// CrackAspect handles GET /api/v1/aspects/:name/crack
func (h *QueryHandler) CrackAspect(c *gin.Context) {
	name := c.Param("name")

	primaries, err := h.client.Crack(map[string]float64{name: 1})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Result{Success: true, Data: primaries})
}

// ListAspects handles GET /api/v1/aspects
func (h *QueryHandler) ListAspects(c *gin.Context) {
	aspects, err := h.client.Aspects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: aspects})
}

// ListRecipes handles GET /api/v1/recipes
func (h *QueryHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.client.Recipes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: recipes})
}

// ListMods handles GET /api/v1/mods
func (h *QueryHandler) ListMods(c *gin.Context) {
	mods, err := h.client.Mods()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: mods})
}

// ListPrimaries handles GET /api/v1/primaries
func (h *QueryHandler) ListPrimaries(c *gin.Context) {
	primaries, err := h.client.Primaries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: primaries})
}

// ListHoldings handles GET /api/v1/holdings
func (h *QueryHandler) ListHoldings(c *gin.Context) {
	holdings, err := h.client.Holdings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: holdings})
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrUnknownAspect):
		status = http.StatusNotFound
	case errors.Is(err, aspecter.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, aspecter.ErrReadOnlyStore):
		status = http.StatusForbidden
	}
	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	})
}
