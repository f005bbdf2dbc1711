package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB wires GORM onto a sqlmock connection. Default transactions
// are skipped so expectations only see the statements the code under
// test issues itself (explicit transactions still begin and commit).
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func cartRows(cartID, userID uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id"}).AddRow(cartID, userID)
}

func lineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"})
}

func productRows(id uint, name string, price float64, stripeProductID, stripePriceID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "price", "stripe_product_id", "stripe_price_id"}).
		AddRow(id, name, price, stripeProductID, stripePriceID)
}
