package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/services"
	"github.com/pskth/attendance-management-system/internal/middleware"
)

// ImportController handles bulk data import.
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController.
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// ImportTable imports a batch of rows into one table
// @Summary Bulk-import rows into a table
// @Description Rows reference parents by natural key. Each row is written independently; the response lists one diagnostic per failed row and the batch never aborts.
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param table path string true "Target table name"
// @Param request body dto.ImportRequest true "Decoded rows"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult} "Batch accounting"
// @Failure 400 {object} dto.ErrorResponse "Unknown table"
// @Router /import/{table} [post]
func (c *ImportController) ImportTable(ctx *gin.Context) {
	table := ctx.Param("table")
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid import payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	result, err := c.importService.ImportTable(ctx, table, req.Rows)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// GetImportOrder documents the parent-before-child table order
// @Summary Get the required import order
// @Tags import
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ImportOrderResponse} "Tables in import order"
// @Router /import/order [get]
func (c *ImportController) GetImportOrder(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ImportOrderResponse{Tables: c.importService.OrderedTables()},
		Timestamp: time.Now(),
	})
}
