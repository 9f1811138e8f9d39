package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. It expects a MySQL
// instance on localhost:3306 with a database named 'tiffinbox_test' and
// skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/tiffinbox_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_items", "orders", "carts", "products", "sellers", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createSellersTable := `
	CREATE TABLE IF NOT EXISTS sellers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		displayName VARCHAR(150) NOT NULL,
		restaurantName VARCHAR(150),
		speciality VARCHAR(150),
		address VARCHAR(255),
		phone VARCHAR(30),
		profileImageRef VARCHAR(255),
		latitude DOUBLE,
		longitude DOUBLE,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_active (isActive)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		sellerId INT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		addedCost DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		description TEXT,
		imageRefs JSON,
		categories JSON,
		category VARCHAR(100),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_seller (sellerId)
	)`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		email VARCHAR(150) NOT NULL,
		phone VARCHAR(30),
		addresses JSON,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT UNSIGNED NOT NULL,
		sellerId INT UNSIGNED NOT NULL,
		totalPrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		deliveryAddress VARCHAR(255) NOT NULL,
		gpsLatitude DOUBLE,
		gpsLongitude DOUBLE,
		paymentStatus VARCHAR(20) NOT NULL DEFAULT 'pending',
		deliveryStatus VARCHAR(20) NOT NULL DEFAULT 'PROCESSING',
		gatewayOrderId VARCHAR(100) NOT NULL,
		gatewayPaymentId VARCHAR(100),
		idempotencyKey VARCHAR(100) UNIQUE,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_gateway_order (gatewayOrderId),
		INDEX idx_seller (sellerId),
		INDEX idx_user (userId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		productId INT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		imageRef VARCHAR(255),
		FOREIGN KEY (orderId) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	createCartsTable := `
	CREATE TABLE IF NOT EXISTS carts (
		userId INT UNSIGNED NOT NULL PRIMARY KEY,
		lines JSON NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"sellers", createSellersTable},
		{"products", createProductsTable},
		{"users", createUsersTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
		{"carts", createCartsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
