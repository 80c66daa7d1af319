package routes

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/snap-point/blog-api/controllers"
	"github.com/snap-point/blog-api/middleware"
	"github.com/snap-point/blog-api/repositories"
	"github.com/snap-point/blog-api/usecases"
)

// NewRouter wires the use case and controller layers on top of userRepo.
func NewRouter(userRepo repositories.UserRepository) *gin.Engine {
	userUseCase := usecases.NewUserUseCase(userRepo)
	userController := controllers.NewUserController(userUseCase)

	return SetupRouter(userController)
}

func SetupRouter(userController *controllers.UserController) *gin.Engine {
	r := gin.New()

	// Request id first so both the access log and recovery can see it
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithWriter(os.Stdout))
	r.Use(middleware.Recovery())
	r.Use(cors.Default())

	SetupUserRoutes(r.Group("/users"), userController)

	r.NoRoute(middleware.NotFound)

	return r
}
