package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'project_status') THEN
			CREATE TYPE project_status AS ENUM ('draft', 'active', 'completed');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'po_status') THEN
			CREATE TYPE po_status AS ENUM ('pending', 'paid');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'invoice_type') THEN
			CREATE TYPE invoice_type AS ENUM ('TAX_INVOICE', 'BUSINESS_INCOME', 'OTHER_INCOME', 'TAX_EXEMPT');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_type') THEN
			CREATE TYPE payment_type AS ENUM ('ADVANCE', 'BALANCE');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_number VARCHAR(16) NOT NULL,
		manager VARCHAR(128) NOT NULL,
		announcement_number VARCHAR(64),
		max_bid_amount BIGINT NOT NULL CHECK (max_bid_amount > 0),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status project_status NOT NULL DEFAULT 'draft',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date > start_date)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_number ON projects (project_number);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status);`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		expected_bid_amount BIGINT NOT NULL,
		vat_excluded BIGINT NOT NULL,
		agency_fee BIGINT NOT NULL,
		company_margin BIGINT NOT NULL,
		internal_labor BIGINT NOT NULL,
		internal_labor_rate NUMERIC(8,4) NOT NULL,
		available_budget BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_budgets_project_id ON budgets (project_id);`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		po_number VARCHAR(32) NOT NULL,
		amount BIGINT NOT NULL CHECK (amount > 0),
		invoice_type invoice_type NOT NULL,
		supply_amount BIGINT NOT NULL,
		tax_amount BIGINT NOT NULL DEFAULT 0,
		deduction_amount BIGINT NOT NULL DEFAULT 0,
		payment_type payment_type NOT NULL,
		status po_status NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_purchase_orders_number ON purchase_orders (po_number);`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_project_id ON purchase_orders (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_status ON purchase_orders (status);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
