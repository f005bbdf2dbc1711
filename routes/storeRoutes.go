package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/controllers"
)

func StoreRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetStorefront)
	server.GET("/success", controllers.CheckoutSuccess)
	server.GET("/cancel", controllers.CheckoutCancel)
}
