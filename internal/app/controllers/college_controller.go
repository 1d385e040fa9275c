package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/schema"
	"github.com/pskth/attendance-management-system/internal/app/services"
	"github.com/pskth/attendance-management-system/internal/middleware"
)

// CollegeController handles college operations, deletion included.
type CollegeController struct {
	collegeService  *services.CollegeService
	deletionService *services.DeletionService
}

// NewCollegeController creates a new CollegeController.
func NewCollegeController(collegeService *services.CollegeService, deletionService *services.DeletionService) *CollegeController {
	return &CollegeController{collegeService: collegeService, deletionService: deletionService}
}

// CreateCollege creates a college
// @Summary Create a new college
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.College true "College information"
// @Success 201 {object} dto.APIResponse{data=models.College} "College created"
// @Failure 409 {object} dto.ErrorResponse "College code already exists"
// @Router /colleges [post]
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var college models.College
	if err := ctx.ShouldBindJSON(&college); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid college data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := c.collegeService.Create(ctx, &college); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: college, Timestamp: time.Now()})
}

// GetColleges lists all colleges
// @Summary List colleges
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.College} "Colleges"
// @Router /colleges [get]
func (c *CollegeController) GetColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: colleges, Timestamp: time.Now()})
}

// GetCollegeByID fetches one college
// @Summary Get college by ID
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Success 200 {object} dto.APIResponse{data=models.College} "College"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id} [get]
func (c *CollegeController) GetCollegeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	college, err := c.collegeService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: college, Timestamp: time.Now()})
}

// DeleteCollege deletes a college
// @Summary Delete a college
// @Description Safe by default: refuses with dependent counts when anything still references the college. force=true cascades.
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Param force query bool false "Cascade through all dependents"
// @Success 200 {object} dto.APIResponse{data=dto.ForceDeleteResult} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Blocked by dependents"
// @Router /colleges/{id} [delete]
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	deleteEntity(ctx, c.deletionService, schema.EntityCollege)
}

// deleteEntity runs the safe/forced deletion flow shared by every aggregate
// root controller.
func deleteEntity(ctx *gin.Context, deletionService *services.DeletionService, entity schema.EntityType) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if forceRequested(ctx) {
		result, err := deletionService.ForceDelete(ctx, entity, id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
		return
	}
	if err := deletionService.Delete(ctx, entity, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Deleted"},
		Timestamp: time.Now(),
	})
}
