package infra

import (
	"fmt"

	"salestrack/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (sequences, sequence realignment on existing DBs).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Sale items keep their own name/price snapshot, so products may be
		// hard-deleted while referenced by historical sales.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Expense{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// express. Each statement uses IF NOT EXISTS / existence-guard semantics so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Invoice numbers are drawn from a dedicated sequence inside the sale
		// transaction, never computed from MAX(invoice_number).
		{"create invoice sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_invoice_seq START 1`},

		// Realign the sequence with pre-existing data (e.g. a DB restored from
		// backup): bump it past the highest invoice number already issued.
		{"align invoice sequence with existing sales", `
DO $$
DECLARE max_inv BIGINT;
BEGIN
  SELECT COALESCE(MAX(SUBSTRING(invoice_number FROM 5)::BIGINT), 0)
    INTO max_inv
    FROM sales
   WHERE invoice_number ~ '^INV-[0-9]+$';
  IF max_inv > 0 THEN
    PERFORM setval('sales_invoice_seq', max_inv);
  END IF;
END $$`},

		// Composite index for the date-ranged sale listings and aggregations.
		{"create sale_date index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sales_sale_date') THEN
    CREATE INDEX idx_sales_sale_date ON sales (sale_date);
  END IF;
END $$`},
		{"create expense_date index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_expenses_expense_date') THEN
    CREATE INDEX idx_expenses_expense_date ON expenses (expense_date);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
