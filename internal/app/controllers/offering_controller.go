package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/services"
	"github.com/pskth/attendance-management-system/internal/middleware"
)

// OfferingController handles course offering and enrollment operations.
type OfferingController struct {
	offeringService   *services.OfferingService
	enrollmentService *services.EnrollmentService
}

// NewOfferingController creates a new OfferingController.
func NewOfferingController(offeringService *services.OfferingService, enrollmentService *services.EnrollmentService) *OfferingController {
	return &OfferingController{offeringService: offeringService, enrollmentService: enrollmentService}
}

// EnsureOffering creates or updates an offering
// @Summary Create or update a course offering
// @Description Idempotent on the tuple (course, academic year, semester, section): an existing offering is updated in place, and only the explicitly supplied teacher/section fields change.
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnsureOfferingRequest true "Offering tuple and optional assignments"
// @Success 200 {object} dto.APIResponse{data=models.CourseOffering} "Existing offering updated"
// @Success 201 {object} dto.APIResponse{data=models.CourseOffering} "Offering created"
// @Router /offerings [post]
func (c *OfferingController) EnsureOffering(ctx *gin.Context) {
	var req dto.EnsureOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	offering, created, err := c.offeringService.EnsureOffering(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.APIResponse{Data: offering, Timestamp: time.Now()})
}

// GetOffering fetches one offering
// @Summary Get offering by ID
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseOffering} "Offering"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offering, err := c.offeringService.GetOffering(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: offering, Timestamp: time.Now()})
}

// GetOfferings lists the offerings of an academic year
// @Summary List offerings
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseOffering} "Offerings"
// @Router /offerings [get]
func (c *OfferingController) GetOfferings(ctx *gin.Context) {
	academicYearID, ok := parseQueryID(ctx, "academicYearId")
	if !ok {
		return
	}
	offerings, err := c.offeringService.ListOfferings(ctx, academicYearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: offerings, Timestamp: time.Now()})
}

// EnrollStudents enrolls a batch of students into an offering
// @Summary Batch-enroll students
// @Description Processes every student independently; already-enrolled students are reported, not failed, and one bad student never blocks the rest.
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param request body dto.EnrollBatchRequest true "Student IDs"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollBatchResult} "Per-student outcomes"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id}/enrollments [post]
func (c *OfferingController) EnrollStudents(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	result, err := c.enrollmentService.EnrollBatch(ctx, offeringID, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// CheckEligibility dry-runs the enrollment rules for one student
// @Summary Check enrollment eligibility
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Eligible"
// @Failure 400 {object} dto.ErrorResponse "Not eligible"
// @Router /offerings/{id}/eligibility/{studentId} [get]
func (c *OfferingController) CheckEligibility(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	if err := c.enrollmentService.CheckEligibility(ctx, studentID, offeringID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student is eligible for this offering"},
		Timestamp: time.Now(),
	})
}

// RecordRetake increments the attempt number of an enrollment
// @Summary Record a retake
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentEnrollment} "Updated enrollment"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /offerings/{id}/enrollments/{studentId}/retake [post]
func (c *OfferingController) RecordRetake(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	enrollment, err := c.enrollmentService.RecordRetake(ctx, studentID, offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollment, Timestamp: time.Now()})
}
