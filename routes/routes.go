package routes

import (
	"activity-portal-api/controllers"
	"activity-portal-api/middleware"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full HTTP surface. Identity is carried in
// request bodies; the bearer token set by Login is an optional supplement
// parsed by middleware.Identify.
func SetupRoutes(router *gin.Engine, worker *services.ValidationWorker) {
	router.Use(middleware.Identify())

	router.POST("/login", controllers.Login)
	router.Static("/uploads", controllers.UploadDir())

	api := router.Group("/api")
	{
		api.GET("/test", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Server is working"})
		})

		api.POST("/upload", controllers.UploadFile)
		api.POST("/check-file", controllers.CheckFile)

		// Submissions
		api.GET("/submissions", controllers.GetSubmissions)
		api.GET("/submissions/user/:userId", controllers.GetUserSubmissions)
		api.GET("/submission/:id", controllers.GetSubmission)
		api.POST("/submission/sap", controllers.CreateSubmission(models.FormTypeSAP))
		api.POST("/submission/asf", controllers.CreateSubmission(models.FormTypeASF))

		// Comments
		api.POST("/submission/:id/comment", controllers.AddComment)
		api.DELETE("/submission/:id/comment", controllers.DeleteComment)

		// Lifecycle
		api.PATCH("/submission/:id/status", controllers.AmendSubmission)
		api.PUT("/submissions/:id/status", controllers.UpdateSubmissionStatus)
		api.PUT("/submissions/:id/department-review", controllers.UpdateDepartmentReview)
		api.POST("/validate-submission/:id", controllers.TriggerValidation(worker))

		// Users
		api.GET("/users", controllers.GetUsers)
		api.GET("/users/:id", controllers.GetUser)
		api.POST("/users", controllers.CreateUser)
		api.PUT("/users/:id", controllers.UpdateUser)
		api.DELETE("/users/:id", controllers.DeleteUser)
		api.GET("/user/:userId/affiliates", controllers.GetUserAffiliates)

		// Affiliates
		api.GET("/affiliates", controllers.GetAffiliates)
		api.GET("/affiliates/:id", controllers.GetAffiliate)
		api.POST("/affiliates", controllers.CreateAffiliate)
		api.PUT("/affiliates/:id", controllers.UpdateAffiliate)
		api.DELETE("/affiliates/:id", controllers.DeleteAffiliate)

		// Audit trail
		api.GET("/activity-logs", controllers.GetActivityLogs)
	}
}
