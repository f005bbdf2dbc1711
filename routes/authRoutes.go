package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/controllers"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/register", controllers.Signup)
	server.POST("/login", controllers.Login)
}
