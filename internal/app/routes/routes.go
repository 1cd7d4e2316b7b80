package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/controllers"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	studentController *controllers.StudentController,
	transactionController *controllers.TransactionController,
	feeConfigController *controllers.FeeConfigController,
	uploadController *controllers.UploadController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		departments := authenticated.Group("/departments")
		{
			departments.GET("", departmentController.GetAllDepartments)
			departments.GET("/:code", departmentController.GetDepartmentByCode)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			students.GET("/:htn", studentController.GetStudent)
			students.PUT("/:htn", studentController.UpdateStudent)
			students.GET("/:htn/summary", studentController.GetSummary)
			students.POST("/:htn/transactions", studentController.AddTransaction)
			students.POST("/:htn/remarks", studentController.AddRemark)
			students.DELETE("/:htn/remarks/:id", studentController.DeleteRemark)

			// Deleting a student cascades through lockers and payments.
			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				studentsAdmin.DELETE("/:htn", studentController.DeleteStudent)
			}
		}

		transactions := authenticated.Group("/transactions")
		{
			transactions.GET("", transactionController.ListTransactions)
			transactions.POST("/approve", transactionController.ApproveTransactions)
			transactions.POST("/reject", transactionController.RejectTransactions)
		}

		feeConfig := authenticated.Group("/fee-config")
		{
			feeConfig.GET("", feeConfigController.GetConfig)
			feeConfig.GET("/batches/:batch", feeConfigController.GetBatchConfig)

			// Config rewrites are admin-only.
			feeConfigAdmin := feeConfig.Group("")
			feeConfigAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				feeConfigAdmin.PUT("", feeConfigController.UpdateConfig)
				feeConfigAdmin.PUT("/batches/:batch", feeConfigController.UpdateBatchConfig)
				feeConfigAdmin.DELETE("/batches/:batch", feeConfigController.DeleteBatchConfig)
			}
		}

		uploads := authenticated.Group("/uploads")
		{
			uploads.POST("/preview", uploadController.Preview)
			uploads.POST("/import", uploadController.Import)
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("/collection", reportController.CollectionReport)
			reports.GET("/defaulters", reportController.Defaulters)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
