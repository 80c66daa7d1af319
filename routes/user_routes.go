package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/blog-api/controllers"
	"github.com/snap-point/blog-api/middleware"
)

func SetupUserRoutes(users *gin.RouterGroup, userController *controllers.UserController) {
	users.GET("", userController.GetAll)
	users.GET("/:id", userController.GetByID)
	users.GET("/:id/stats", userController.GetStats)

	users.POST("", middleware.ValidateCreateUser(), userController.Create)
	users.PUT("/:id", userController.Update)
	users.DELETE("/:id", userController.Delete)
}
