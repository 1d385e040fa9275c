package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pskth/attendance-management-system/internal/app/controllers"
	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/middleware"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	College      *controllers.CollegeController
	Department   *controllers.DepartmentController
	Course       *controllers.CourseController
	AcademicYear *controllers.AcademicYearController
	Offering     *controllers.OfferingController
	Import       *controllers.ImportController
	User         *controllers.UserController
}

// Setup mounts all API routes under /api/v1. Everything except login
// requires a valid token; mutations additionally require the admin role.
func Setup(engine *gin.Engine, ctrl Controllers, authMW *middleware.AuthMiddleware) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	v1 := engine.Group("/api/v1")

	v1.POST("/auth/login", ctrl.Auth.Login)

	authed := v1.Group("")
	authed.Use(authMW.JWTAuth())

	admin := authed.Group("")
	admin.Use(authMW.RequireRoles(models.RoleAdmin))

	authed.GET("/colleges", ctrl.College.GetColleges)
	authed.GET("/colleges/:id", ctrl.College.GetCollegeByID)
	admin.POST("/colleges", ctrl.College.CreateCollege)
	admin.DELETE("/colleges/:id", ctrl.College.DeleteCollege)

	authed.GET("/departments", ctrl.Department.GetDepartments)
	authed.GET("/departments/:id/sections", ctrl.Department.GetSections)
	admin.POST("/departments", ctrl.Department.CreateDepartment)
	admin.POST("/departments/:id/sections", ctrl.Department.CreateSection)
	admin.DELETE("/departments/:id", ctrl.Department.DeleteDepartment)

	authed.GET("/courses", ctrl.Course.GetCourses)
	authed.GET("/courses/:id", ctrl.Course.GetCourseByID)
	admin.POST("/courses", ctrl.Course.CreateCourse)
	admin.DELETE("/courses/:id", ctrl.Course.DeleteCourse)

	authed.GET("/academic-years", ctrl.AcademicYear.GetAcademicYears)
	authed.GET("/academic-years/active", ctrl.AcademicYear.GetActiveAcademicYear)
	admin.POST("/academic-years", ctrl.AcademicYear.CreateAcademicYear)
	admin.PUT("/academic-years/:id/activate", ctrl.AcademicYear.ActivateAcademicYear)

	authed.GET("/offerings", ctrl.Offering.GetOfferings)
	authed.GET("/offerings/:id", ctrl.Offering.GetOffering)
	authed.GET("/offerings/:id/eligibility/:studentId", ctrl.Offering.CheckEligibility)
	admin.POST("/offerings", ctrl.Offering.EnsureOffering)
	admin.POST("/offerings/:id/enrollments", ctrl.Offering.EnrollStudents)
	admin.POST("/offerings/:id/enrollments/:studentId/retake", ctrl.Offering.RecordRetake)

	admin.GET("/import/order", ctrl.Import.GetImportOrder)
	admin.POST("/import/:table", ctrl.Import.ImportTable)

	authed.GET("/users/:id", ctrl.User.GetUserByID)
	admin.POST("/users", ctrl.User.CreateUser)
	admin.DELETE("/users/:id", ctrl.User.DeleteUser)
}
