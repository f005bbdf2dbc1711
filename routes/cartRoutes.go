package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/controllers"
	"github.com/nirg122/eCommerce-Website-with-stripe/middlewares"
)

func CartRoutes(server *gin.Engine) {
	server.POST("/add-to-cart/:productId", middlewares.RequireAuth(), controllers.AddToCart)
	server.POST("/delete-from-cart/:lineId", middlewares.RequireAuth(), controllers.DeleteFromCart)
	server.POST("/update-qty-from-cart", middlewares.RequireAuth(), controllers.UpdateCartQuantities)
	server.GET("/cart", middlewares.RequireAuth(), controllers.GetCart)
	server.GET("/create-checkout-session", middlewares.RequireAuth(), controllers.CreateCheckoutSession)
}
