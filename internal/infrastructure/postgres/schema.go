package postgres

import (
	"context"
	"fmt"
)

// salesSummarySchema una fila por empresa y día; change_percentage NULL = sin base.
const salesSummarySchema = `
CREATE TABLE IF NOT EXISTS sales_summary (
    company_id        UUID          NOT NULL,
    date              DATE          NOT NULL,
    total_value       NUMERIC(18,2) NOT NULL CHECK (total_value >= 0),
    change_percentage NUMERIC(9,4),
    PRIMARY KEY (company_id, date)
)`

// EnsureSchema crea la tabla sales_summary si no existe (idempotente).
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, salesSummarySchema); err != nil {
		return fmt.Errorf("postgres: crear sales_summary: %w", err)
	}
	return nil
}
