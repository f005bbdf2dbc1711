package initializers

import (
	"log"

	"github.com/nirg122/eCommerce-Website-with-stripe/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartLine{})
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database synced successfully.")
}
