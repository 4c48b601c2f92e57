package database

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates every table the application needs.  Safe to call on
// each startup — all statements use IF NOT EXISTS.  The unique key on
// booked_tickets (lottery_id, draw_date, ticket_number) is what stops two
// concurrent buyers from being issued the same number; settlement relies on
// the resulting duplicate-key error.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(15) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('CUSTOMER','ADMIN') NOT NULL DEFAULT 'CUSTOMER',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS lotteries (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		lottery_type ENUM('weekly','monthly','special','bumper') NOT NULL DEFAULT 'weekly',
		draw_date DATETIME NOT NULL,
		ticket_price INT UNSIGNED NOT NULL,
		first_prize BIGINT UNSIGNED NOT NULL,
		second_prize BIGINT UNSIGNED NULL,
		third_prize BIGINT UNSIGNED NULL,
		total_tickets INT UNSIGNED NOT NULL DEFAULT 1000,
		status ENUM('upcoming','active','completed','cancelled') NOT NULL DEFAULT 'upcoming',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_lotteries_status (status),
		KEY idx_lotteries_draw_date (draw_date)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		lottery_id BIGINT UNSIGNED NOT NULL,
		ticket_numbers JSON NOT NULL,
		draw_dates JSON NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_cart_items_user (user_id),
		CONSTRAINT fk_cart_items_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_cart_items_lottery FOREIGN KEY (lottery_id) REFERENCES lotteries(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		lottery_id BIGINT UNSIGNED NOT NULL,
		lottery_name VARCHAR(100) NOT NULL,
		ticket_price INT UNSIGNED NOT NULL,
		draw_time DATETIME NOT NULL,
		transaction_id VARCHAR(40) NOT NULL,
		status ENUM('confirmed') NOT NULL DEFAULT 'confirmed',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_orders_transaction (transaction_id),
		KEY idx_orders_user (user_id),
		CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_orders_lottery FOREIGN KEY (lottery_id) REFERENCES lotteries(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS booked_tickets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		order_id BIGINT UNSIGNED NOT NULL,
		lottery_id BIGINT UNSIGNED NOT NULL,
		ticket_number VARCHAR(32) NOT NULL,
		draw_date DATE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_booked_tickets_number (lottery_id, draw_date, ticket_number),
		KEY idx_booked_tickets_user (user_id),
		KEY idx_booked_tickets_date (draw_date),
		CONSTRAINT fk_booked_tickets_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_booked_tickets_order FOREIGN KEY (order_id) REFERENCES orders(id),
		CONSTRAINT fk_booked_tickets_lottery FOREIGN KEY (lottery_id) REFERENCES lotteries(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS lottery_results (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		lottery_id BIGINT UNSIGNED NOT NULL,
		first_prize_number VARCHAR(32) NOT NULL,
		second_prize_number VARCHAR(32) NULL,
		third_prize_number VARCHAR(32) NULL,
		declared_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_lottery_results_lottery (lottery_id),
		CONSTRAINT fk_lottery_results_lottery FOREIGN KEY (lottery_id) REFERENCES lotteries(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS withdrawals (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		ticket_number VARCHAR(32) NOT NULL,
		draw_date DATE NOT NULL,
		amount BIGINT UNSIGNED NOT NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		bank_name VARCHAR(100) NOT NULL,
		branch VARCHAR(100) NOT NULL,
		account_number VARCHAR(18) NOT NULL,
		ifsc_code CHAR(11) NOT NULL,
		pan_number CHAR(10) NOT NULL,
		aadhar_number CHAR(12) NOT NULL,
		status ENUM('pending','approved','rejected') NOT NULL DEFAULT 'pending',
		processed_by BIGINT UNSIGNED NULL,
		processed_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_withdrawals_user (user_id),
		KEY idx_withdrawals_status (status),
		CONSTRAINT fk_withdrawals_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
}
