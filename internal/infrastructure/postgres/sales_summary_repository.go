package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

var _ repository.SalesSeriesRepository = (*SalesSeriesRepo)(nil)

// DBTX lo que el repositorio usa de la conexión; lo cumplen *pgxpool.Pool y pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SalesSeriesRepo serie diaria de ventas por empresa (tabla sales_summary).
type SalesSeriesRepo struct {
	db DBTX
}

// NewSalesSeriesRepository construye el adaptador.
func NewSalesSeriesRepository(db DBTX) *SalesSeriesRepo {
	return &SalesSeriesRepo{db: db}
}

// GetDailySeries devuelve los días en [start, end] ordenados por fecha.
// Las fechas DATE llegan a medianoche UTC; no se normaliza zona horaria.
func (r *SalesSeriesRepo) GetDailySeries(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]salessummary.DailyRecord, error) {
	const query = `
	SELECT date, total_value, change_percentage
	FROM sales_summary
	WHERE company_id = $1
	  AND date BETWEEN $2 AND $3
	ORDER BY date`

	rows, err := r.db.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("salesseries.GetDailySeries: %w", err)
	}
	defer rows.Close()

	records := make([]salessummary.DailyRecord, 0)
	for rows.Next() {
		var (
			rec    salessummary.DailyRecord
			change decimal.NullDecimal
		)
		if err := rows.Scan(&rec.Date, &rec.TotalValue, &change); err != nil {
			return nil, fmt.Errorf("salesseries.GetDailySeries scan: %w", err)
		}
		rec.ChangePercentage = change
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("salesseries.GetDailySeries rows: %w", err)
	}
	return records, nil
}

// UpsertDay inserta el día o reemplaza sus valores si ya existe.
func (r *SalesSeriesRepo) UpsertDay(ctx context.Context, companyID string, rec salessummary.DailyRecord) error {
	const query = `
	INSERT INTO sales_summary (company_id, date, total_value, change_percentage)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (company_id, date)
	DO UPDATE SET total_value = EXCLUDED.total_value,
	              change_percentage = EXCLUDED.change_percentage`

	if _, err := r.db.Exec(ctx, query, companyID, rec.Date, rec.TotalValue, rec.ChangePercentage); err != nil {
		return fmt.Errorf("salesseries.UpsertDay %s: %w", salessummary.DayKey(rec.Date), err)
	}
	return nil
}
