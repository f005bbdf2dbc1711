package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/controllers"
	"github.com/nirg122/eCommerce-Website-with-stripe/middlewares"
)

func CatalogRoutes(server *gin.Engine) {
	server.GET("/fetch_new_products_from_stripe", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.FetchNewProductsFromStripe)
}
