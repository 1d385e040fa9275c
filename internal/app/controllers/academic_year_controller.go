package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/services"
	"github.com/pskth/attendance-management-system/internal/middleware"
)

// AcademicYearController handles academic year operations.
type AcademicYearController struct {
	yearService *services.AcademicYearService
}

// NewAcademicYearController creates a new AcademicYearController.
func NewAcademicYearController(yearService *services.AcademicYearService) *AcademicYearController {
	return &AcademicYearController{yearService: yearService}
}

// CreateAcademicYear creates an academic year
// @Summary Create a new academic year
// @Description Creates the year inactive; activation is a separate call.
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AcademicYear true "Academic year information"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 409 {object} dto.ErrorResponse "Year name already exists in this college"
// @Router /academic-years [post]
func (c *AcademicYearController) CreateAcademicYear(ctx *gin.Context) {
	var year models.AcademicYear
	if err := ctx.ShouldBindJSON(&year); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := c.yearService.Create(ctx, &year); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: year, Timestamp: time.Now()})
}

// GetAcademicYears lists the academic years of a college
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param collegeId query int true "College ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear} "Academic years"
// @Router /academic-years [get]
func (c *AcademicYearController) GetAcademicYears(ctx *gin.Context) {
	collegeID, ok := parseQueryID(ctx, "collegeId")
	if !ok {
		return
	}
	years, err := c.yearService.GetAll(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: years, Timestamp: time.Now()})
}

// ActivateAcademicYear makes one year the college's active year
// @Summary Activate an academic year
// @Description Deactivates the college's other years in the same transaction.
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param collegeId query int true "College ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Activated"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/activate [put]
func (c *AcademicYearController) ActivateAcademicYear(ctx *gin.Context) {
	yearID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	collegeID, ok := parseQueryID(ctx, "collegeId")
	if !ok {
		return
	}
	if err := c.yearService.SetActive(ctx, collegeID, yearID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academic year activated"},
		Timestamp: time.Now(),
	})
}

// GetActiveAcademicYear fetches the college's active year
// @Summary Get the active academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param collegeId query int true "College ID"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Active academic year"
// @Failure 404 {object} dto.ErrorResponse "No active year"
// @Router /academic-years/active [get]
func (c *AcademicYearController) GetActiveAcademicYear(ctx *gin.Context) {
	collegeID, ok := parseQueryID(ctx, "collegeId")
	if !ok {
		return
	}
	year, err := c.yearService.GetActive(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: year, Timestamp: time.Now()})
}
