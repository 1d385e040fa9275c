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

// CourseController handles course operations.
type CourseController struct {
	courseService   *services.CourseService
	deletionService *services.DeletionService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService, deletionService *services.DeletionService) *CourseController {
	return &CourseController{courseService: courseService, deletionService: deletionService}
}

// CreateCourse creates a course
// @Summary Create a new course
// @Description Creates a course, optionally departmentless, with open-elective department restrictions.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Course true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists in this college"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var course models.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := c.courseService.Create(ctx, &course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// GetCourses lists the courses of a college
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param collegeId query int true "College ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	collegeID, ok := parseQueryID(ctx, "collegeId")
	if !ok {
		return
	}
	courses, err := c.courseService.GetAll(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses, Timestamp: time.Now()})
}

// GetCourseByID fetches one course with its restrictions
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.courseService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Safe by default; force=true cascades through offerings, enrollments, attendance and marks.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param force query bool false "Cascade through all dependents"
// @Success 200 {object} dto.APIResponse{data=dto.ForceDeleteResult} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Blocked by dependents"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	deleteEntity(ctx, c.deletionService, schema.EntityCourse)
}
