package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrate creates every table if it does not exist. Statements run in
// dependency order so foreign keys resolve.
func AutoMigrate(retries int, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			user_type VARCHAR(20) NOT NULL,
			phone_number VARCHAR(20) NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			token_balance DECIMAL(12,2) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS addresses (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			district VARCHAR(100) NOT NULL,
			region VARCHAR(100) NOT NULL,
			commune VARCHAR(100) NOT NULL,
			street VARCHAR(255) NOT NULL,
			gps_coordinates VARCHAR(100),
			is_primary BOOLEAN NOT NULL DEFAULT FALSE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			parent_id INT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE SET NULL
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			category_id INT,
			manufacturer_id INT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL,
			FOREIGN KEY (manufacturer_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS product_formats (
			id INT AUTO_INCREMENT PRIMARY KEY,
			product_id INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			sku VARCHAR(100) NOT NULL UNIQUE,
			barcode VARCHAR(100),
			unit_of_measure VARCHAR(50) NOT NULL,
			quantity_per_unit DECIMAL(12,3) NOT NULL DEFAULT 1,
			base_price DECIMAL(12,2) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS retail_points (
			id INT AUTO_INCREMENT PRIMARY KEY,
			owner_id INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			retail_point_type VARCHAR(50) NOT NULL,
			address_id INT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id),
			FOREIGN KEY (address_id) REFERENCES addresses(id)
		);`,
		`CREATE TABLE IF NOT EXISTS inventories (
			id INT AUTO_INCREMENT PRIMARY KEY,
			product_format_id INT NOT NULL,
			retail_point_id INT NOT NULL,
			current_stock DECIMAL(12,3) NOT NULL DEFAULT 0,
			alert_threshold DECIMAL(12,3) NOT NULL DEFAULT 0,
			price_override DECIMAL(12,2),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_inventory (product_format_id, retail_point_id),
			FOREIGN KEY (product_format_id) REFERENCES product_formats(id),
			FOREIGN KEY (retail_point_id) REFERENCES retail_points(id)
		);`,
		`CREATE TABLE IF NOT EXISTS stock_movements (
			id INT AUTO_INCREMENT PRIMARY KEY,
			inventory_id INT NOT NULL,
			movement_type VARCHAR(3) NOT NULL,
			quantity DECIMAL(12,3) NOT NULL,
			dest_inventory_id INT,
			reference VARCHAR(255),
			notes TEXT,
			created_by INT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (inventory_id) REFERENCES inventories(id),
			FOREIGN KEY (dest_inventory_id) REFERENCES inventories(id),
			FOREIGN KEY (created_by) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS carts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			cart_id INT NOT NULL,
			inventory_id INT NOT NULL,
			quantity DECIMAL(12,3) NOT NULL,
			added_at DATETIME NOT NULL,
			UNIQUE KEY uq_cart_item (cart_id, inventory_id),
			FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
			FOREIGN KEY (inventory_id) REFERENCES inventories(id)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			retail_point_id INT,
			order_number VARCHAR(20) NOT NULL UNIQUE,
			status VARCHAR(20) NOT NULL,
			total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (retail_point_id) REFERENCES retail_points(id)
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			inventory_id INT NOT NULL,
			quantity DECIMAL(12,3) NOT NULL,
			unit_price DECIMAL(12,2) NOT NULL,
			total_price DECIMAL(12,2) NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
			FOREIGN KEY (inventory_id) REFERENCES inventories(id) ON DELETE RESTRICT
		);`,
		`CREATE TABLE IF NOT EXISTS token_transactions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			transaction_type VARCHAR(20) NOT NULL,
			amount DECIMAL(12,2) NOT NULL,
			reference VARCHAR(255),
			created_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			notification_type VARCHAR(30) NOT NULL,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			related_object_id INT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS disputes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			created_by_id INT NOT NULL,
			assigned_to INT,
			order_id INT,
			dispute_type VARCHAR(20) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			status VARCHAR(20) NOT NULL,
			resolution TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (created_by_id) REFERENCES users(id),
			FOREIGN KEY (assigned_to) REFERENCES users(id),
			FOREIGN KEY (order_id) REFERENCES orders(id)
		);`,
		`CREATE TABLE IF NOT EXISTS dispute_messages (
			id INT AUTO_INCREMENT PRIMARY KEY,
			dispute_id INT NOT NULL,
			sender_id INT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (dispute_id) REFERENCES disputes(id) ON DELETE CASCADE,
			FOREIGN KEY (sender_id) REFERENCES users(id)
		);`,
	}

	for _, query := range queries {
		if err := execWithRetry(db, query, retries); err != nil {
			return err
		}
	}
	return nil
}

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(1 * time.Second)
		_, err = db.Exec(query)
	}
	return err
}
