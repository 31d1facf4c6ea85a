package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thaumlab/aspecter"
	"github.com/thaumlab/aspecter/pkg/server/dto"
)

// ManageHandler serves the write side of the API: holdings and reloads.
type ManageHandler struct {
	client aspecter.Aspecter
}

// NewManageHandler creates a new manage handler
func NewManageHandler(client aspecter.Aspecter) *ManageHandler {
	return &ManageHandler{client: client}
}

// SetHolding handles PUT /api/v1/holdings/:name
func (h *ManageHandler) SetHolding(c *gin.Context) {
	name := c.Param("name")

	var req dto.HoldingRequest
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

	if err := h.client.SetHolding(c.Request.Context(), name, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Result{
		Success: true,
		Data:    gin.H{"name": name, "quantity": *req.Quantity},
	})
}

// Reload handles POST /api/v1/reload
func (h *ManageHandler) Reload(c *gin.Context) {
	if err := h.client.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true})
}
