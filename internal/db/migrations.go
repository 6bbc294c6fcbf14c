package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'quote_status') THEN
			CREATE TYPE quote_status AS ENUM ('DRAFT', 'PENDING', 'APPROVED', 'REJECTED', 'COMPLETED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		phone VARCHAR(32),
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS service_categories (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(120) NOT NULL,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_service_categories_name ON service_categories (name);`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		category_id UUID NOT NULL REFERENCES service_categories(id),
		name VARCHAR(160) NOT NULL,
		description TEXT,
		base_price NUMERIC(10,2) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		estimated_duration DOUBLE PRECISION NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_services_category_id ON services (category_id);`,
	`CREATE TABLE IF NOT EXISTS addon_services (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(160) NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS addon_service_categories (
		addon_id UUID NOT NULL REFERENCES addon_services(id) ON DELETE CASCADE,
		category_id UUID NOT NULL REFERENCES service_categories(id),
		PRIMARY KEY (addon_id, category_id)
	);`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id),
		status quote_status NOT NULL DEFAULT 'PENDING',
		total_amount NUMERIC(10,2) NOT NULL,
		work_start_date DATE NOT NULL,
		estimated_end_date DATE NOT NULL,
		address TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_user_id ON quotes (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes (status);`,
	`CREATE TABLE IF NOT EXISTS quote_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		service_id UUID NOT NULL REFERENCES services(id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(10,2) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quote_items_quote_service ON quote_items (quote_id, service_id);`,
	`CREATE TABLE IF NOT EXISTS quote_addons (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		addon_id UUID NOT NULL REFERENCES addon_services(id),
		price NUMERIC(10,2) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quote_addons_quote_addon ON quote_addons (quote_id, addon_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
