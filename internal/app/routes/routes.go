package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/omkar/campuslms/internal/app/controllers"
	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	importController *controllers.ImportController,
	peopleController *controllers.PeopleController,
	classController *controllers.ClassController,
	announcementController *controllers.AnnouncementController,
	materialController *controllers.MaterialController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", healthController.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", peopleController.Profile)

		authenticated.GET("/teachers", peopleController.ListTeachers)
		authenticated.GET("/teachers/:id", peopleController.GetTeacher)
		authenticated.GET("/students", peopleController.ListStudents)
		authenticated.GET("/students/:id", peopleController.GetStudent)
		authenticated.GET("/departments", peopleController.Departments)
		authenticated.GET("/faculties", peopleController.Faculties)
		authenticated.GET("/subjects", peopleController.Subjects)

		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.ListClasses)
			classes.GET("/:id", classController.GetClass)
			classes.GET("/:id/announcements", announcementController.ListForClass)
			classes.GET("/:id/materials", materialController.ListForClass)

			classesAdmin := classes.Group("")
			classesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				classesAdmin.POST("/:id/teachers", classController.AssignTeacher)
			}
		}

		// Teacher-authored content
		teacherContent := authenticated.Group("")
		teacherContent.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
		{
			teacherContent.POST("/announcements", announcementController.Create)
			teacherContent.PUT("/announcements/:id", announcementController.Update)
			teacherContent.DELETE("/announcements/:id", announcementController.Delete)

			teacherContent.POST("/materials", materialController.Create)
			teacherContent.PUT("/materials/:id", materialController.Update)
			teacherContent.DELETE("/materials/:id", materialController.Delete)
		}

		// Bulk import, admin only
		importGroup := authenticated.Group("/import")
		importGroup.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			importGroup.POST("/teachers", importController.ImportTeachers)
			importGroup.POST("/students", importController.ImportStudents)
		}
	}
}
