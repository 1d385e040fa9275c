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

// DepartmentController handles department and section operations.
type DepartmentController struct {
	departmentService *services.DepartmentService
	deletionService   *services.DeletionService
}

// NewDepartmentController creates a new DepartmentController.
func NewDepartmentController(departmentService *services.DepartmentService, deletionService *services.DeletionService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService, deletionService: deletionService}
}

// CreateDepartment creates a department
// @Summary Create a new department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Department true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created"
// @Failure 409 {object} dto.ErrorResponse "Department code already exists in this college"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var department models.Department
	if err := ctx.ShouldBindJSON(&department); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := c.departmentService.Create(ctx, &department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: department, Timestamp: time.Now()})
}

// GetDepartments lists the departments of a college
// @Summary List departments
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param collegeId query int true "College ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments"
// @Router /departments [get]
func (c *DepartmentController) GetDepartments(ctx *gin.Context) {
	collegeID, ok := parseQueryID(ctx, "collegeId")
	if !ok {
		return
	}
	departments, err := c.departmentService.GetAll(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: departments, Timestamp: time.Now()})
}

// DeleteDepartment deletes a department
// @Summary Delete a department
// @Description Safe by default; force=true cascades through sections, courses, teachers and students.
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param force query bool false "Cascade through all dependents"
// @Success 200 {object} dto.APIResponse{data=dto.ForceDeleteResult} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Blocked by dependents"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	deleteEntity(ctx, c.deletionService, schema.EntityDepartment)
}

// CreateSection creates a section in a department
// @Summary Create a new section
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body models.Section true "Section information"
// @Success 201 {object} dto.APIResponse{data=models.Section} "Section created"
// @Failure 409 {object} dto.ErrorResponse "Section name already exists in this department"
// @Router /departments/{id}/sections [post]
func (c *DepartmentController) CreateSection(ctx *gin.Context) {
	departmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var section models.Section
	if err := ctx.ShouldBindJSON(&section); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	section.DepartmentID = departmentID
	if err := c.departmentService.CreateSection(ctx, &section); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: section, Timestamp: time.Now()})
}

// GetSections lists the sections of a department
// @Summary List sections
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Section} "Sections"
// @Router /departments/{id}/sections [get]
func (c *DepartmentController) GetSections(ctx *gin.Context) {
	departmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	sections, err := c.departmentService.GetSections(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: sections, Timestamp: time.Now()})
}
