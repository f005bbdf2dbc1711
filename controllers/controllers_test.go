package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/initializers"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useTestDB swaps the package-level DB handle for a sqlmock-backed one
// for the duration of the test.
func useTestDB(t *testing.T) sqlmock.Sqlmock {
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

	previous := initializers.DB
	initializers.DB = db
	t.Cleanup(func() { initializers.DB = previous })
	return mock
}

func asUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("userID", userID)
		ctx.Next()
	}
}

func TestSignupCreatesUserAndCartAtomically(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	mock := useTestDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `carts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", Signup)

	body := `{"name":"Nir","email":"nir@example.com","password":"supersecret"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "token") {
		t.Fatalf("expected a token in the response, got: %s", recorder.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	mock := useTestDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "nir@example.com"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", Signup)

	body := `{"name":"Nir","email":"nir@example.com","password":"supersecret"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddToCartReportsItemAdded(t *testing.T) {
	mock := useTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `carts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 42))
	mock.ExpectQuery("SELECT (.+) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(7, "Mug", 2.5))
	mock.ExpectQuery("SELECT (.+) FROM `cart_lines`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `cart_lines`").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/add-to-cart/:productId", asUser(42), AddToCart)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/add-to-cart/7", strings.NewReader(`{"quantity":2}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "Item added to cart") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	mock := useTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/add-to-cart/:productId", asUser(42), AddToCart)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/add-to-cart/7", strings.NewReader(`{"quantity":0}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no database access, got: %v", err)
	}
}

func TestGetCartEmptyReturnsNotice(t *testing.T) {
	mock := useTestDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `carts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 42))
	mock.ExpectQuery("SELECT (.+) FROM `cart_lines`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart", asUser(42), GetCart)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/cart", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "No products in cart") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestUpdateCartQuantitiesParsesFormFields(t *testing.T) {
	mock := useTestDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `carts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 42))
	// item_3 changes from 2 to 4
	mock.ExpectQuery("SELECT (.+) FROM `cart_lines`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).AddRow(3, 1, 5, 2))
	mock.ExpectExec("UPDATE `cart_lines`").WillReturnResult(sqlmock.NewResult(0, 1))
	// item_9 is gone
	mock.ExpectQuery("SELECT (.+) FROM `cart_lines`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/update-qty-from-cart", asUser(42), UpdateCartQuantities)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/update-qty-from-cart", strings.NewReader("item_3=4&item_9=2&unrelated=x"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Cart has been updated") {
		t.Fatalf("unexpected body: %s", body)
	}
	if !strings.Contains(body, `"not_found"`) || !strings.Contains(body, `"updated"`) {
		t.Fatalf("expected per-item statuses in body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
